// Package schema loads record schemas and value documents and renders
// decoded records.
//
// Schema documents may be written in TOML, YAML or JSON with comments:
//
//	name: meter
//	fields:
//	  - {name: id, type: integer, min: 0, max: 99999}
//	  - {name: name, type: visible-string, max_length: 32}
//	  - name: readings
//	    type: sequence-of
//	    max_count: 16
//	    elem: {type: unsigned}
//
// Load and Parse validate the document and return a sequence.Schema ready
// for Encode and Decode. Values documents are plain mappings shaped by
// BuildRecord. Render writes a decoded record as YAML, JSON or CBOR, and
// JSONSchema describes the document format for editors.
package schema
