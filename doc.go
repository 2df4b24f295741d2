// Package axdr is a codec for A-XDR (Adapted External Data Representation)
// payloads, the compact binary encoding used by DLMS/COSEM style metering
// protocols.
//
// A-XDR carries no tags or type information on the wire. Reader and writer
// agree on the field layout in advance, so every payload is decoded against
// a schema.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	axdr/             Root package with one-shot Marshal and Unmarshal helpers
//	├── codec/        Cursor and primitive codecs (integers, strings, varints)
//	├── sequence/     Positional, tagged and schema-driven sequences
//	├── schema/       Schema and value documents (TOML, YAML, JSON), rendering
//	├── errors/       Structured error types for debugging
//	└── cmd/axdr/     Command line encoder, decoder and inspector
//
// # Wire Format
//
//   - integer, unsigned: 4 bytes big-endian
//   - boolean: one byte, 0xFF or 0x00
//   - octet, bit and visible strings: 4-byte length then content
//   - var-* strings: varint length then content
//   - generalized-time: 14 ASCII digits YYYYMMDDHHMMSS in UTC
//   - null: zero bytes
//   - sequence-of: 4-byte element count then the elements
//
// # Quick Start
//
// Describe the record and encode a value:
//
//	s, err := schema.Load("meter.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := axdr.Marshal(s, sequence.Record{
//	    "id":     12345,
//	    "active": true,
//	    "name":   "Test Name",
//	})
//
//	rec, err := axdr.Unmarshal(s, data)
//
// Hand-written codecs can skip the schema and drive codec.Cursor directly,
// or compose fields with sequence.Encode and sequence.Decode.
//
// # Thread Safety
//
// A Cursor belongs to one goroutine. Schemas are read-only after Validate
// and may be shared.
package axdr
