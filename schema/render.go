package schema

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/sequence"
)

// cborMode encodes with Core Deterministic Encoding (RFC 8949 §4.2), so the
// same record always renders to the same bytes.
var cborMode cbor.EncMode

func init() {
	var err error
	cborMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("schema: CBOR encoder initialization failed: " + err.Error())
	}
}

// Render writes a decoded record in the given output format. YAML and JSON
// keep schema field order; CBOR uses deterministic key order.
func Render(s *sequence.Schema, rec sequence.Record, format Format) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("render: nil schema")
	}
	switch format {
	case FormatYAML:
		node := yamlFields(s.Fields, rec)
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("render yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := jsonFields(&buf, s.Fields, rec); err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		var out bytes.Buffer
		if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		out.WriteByte('\n')
		return out.Bytes(), nil
	case FormatCBOR:
		data, err := cborMode.Marshal(plainFields(s.Fields, rec, true))
		if err != nil {
			return nil, fmt.Errorf("render cbor: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("cannot render %s", format)
	}
}

// FormatValue renders a single decoded value as display text.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case codec.BitString:
		return x.String()
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// plainValue converts codec types into values every output format can carry.
// keepBytes leaves octet strings as []byte for formats with a native byte type.
func plainValue(d *sequence.Descriptor, v any, keepBytes bool) any {
	switch x := v.(type) {
	case sequence.Record:
		return plainFields(d.Fields, x, keepBytes)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plainValue(d.Elem, e, keepBytes)
		}
		return out
	case []byte:
		if keepBytes {
			return x
		}
		return FormatValue(x)
	case codec.BitString, time.Time:
		return FormatValue(x)
	default:
		return v
	}
}

func plainFields(fields []sequence.Descriptor, rec sequence.Record, keepBytes bool) map[string]any {
	out := make(map[string]any, len(fields))
	for i := range fields {
		d := &fields[i]
		if v, ok := rec[d.Name]; ok {
			out[d.Name] = plainValue(d, v, keepBytes)
		}
	}
	return out
}

func yamlFields(fields []sequence.Descriptor, rec sequence.Record) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i := range fields {
		d := &fields[i]
		v, ok := rec[d.Name]
		if !ok {
			continue
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: d.Name}
		node.Content = append(node.Content, key, yamlValue(d, v))
	}
	return node
}

func yamlValue(d *sequence.Descriptor, v any) *yaml.Node {
	switch x := v.(type) {
	case sequence.Record:
		return yamlFields(d.Fields, x)
	case []any:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range x {
			seq.Content = append(seq.Content, yamlValue(d.Elem, e))
		}
		return seq
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(x)}
	case int, int32, uint32:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(x)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: FormatValue(x)}
	}
}

func jsonFields(buf *bytes.Buffer, fields []sequence.Descriptor, rec sequence.Record) error {
	buf.WriteByte('{')
	first := true
	for i := range fields {
		d := &fields[i]
		v, ok := rec[d.Name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(d.Name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := jsonValue(buf, d, v); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func jsonValue(buf *bytes.Buffer, d *sequence.Descriptor, v any) error {
	switch x := v.(type) {
	case sequence.Record:
		return jsonFields(buf, d.Fields, x)
	case []any:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := jsonValue(buf, d.Elem, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		data, err := json.Marshal(plainValue(d, v, false))
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	}
}
