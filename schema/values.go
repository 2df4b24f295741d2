package schema

import (
	"fmt"
	"os"
	"sort"

	"github.com/wippyai/axdr/errors"
	"github.com/wippyai/axdr/sequence"
)

// ParseValues reads a values document: a mapping from field name to value.
func ParseValues(data []byte, format Format) (map[string]any, error) {
	var values map[string]any
	if err := unmarshal(data, format, &values); err != nil {
		return nil, errors.Load(fmt.Sprintf("parse %s values", format), err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

// LoadValues reads a values document from path.
func LoadValues(path string) (map[string]any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, errors.Load("values format", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read values", err)
	}
	values, err := ParseValues(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// BuildRecord shapes loosely typed values into a sequence.Record for s.
// Nested mappings become Records and keys the schema does not declare are
// rejected. Scalar coercion is left to sequence.Schema.Encode.
func BuildRecord(s *sequence.Schema, values map[string]any) (sequence.Record, error) {
	if s == nil {
		return nil, errors.NilReference(errors.PhaseLoad, nil, "schema")
	}
	return buildFields(s.Fields, values, nil)
}

func buildFields(fields []sequence.Descriptor, values map[string]any, path []string) (sequence.Record, error) {
	known := make(map[string]struct{}, len(fields))
	rec := make(sequence.Record, len(values))
	for i := range fields {
		d := &fields[i]
		known[d.Name] = struct{}{}
		v, ok := values[d.Name]
		if !ok {
			continue
		}
		built, err := buildValue(d, v, childPath(path, d.Name))
		if err != nil {
			return nil, err
		}
		rec[d.Name] = built
	}

	var unknown []string
	for k := range values {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidValue).
			Path(path...).
			Value(unknown).
			Detail("unknown fields %v", unknown).
			Build()
	}
	return rec, nil
}

func buildValue(d *sequence.Descriptor, v any, path []string) (any, error) {
	switch d.Kind {
	case sequence.KindSequence:
		m, ok := sequence.CoerceRecord(v)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseLoad, path, fmt.Sprintf("%T", v), d.Kind.String())
		}
		return buildFields(d.Fields, m, path)
	case sequence.KindSequenceOf:
		list, ok := sequence.CoerceList(v)
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseLoad, path, fmt.Sprintf("%T", v), d.Kind.String())
		}
		out := make([]any, len(list))
		for i, elem := range list {
			built, err := buildValue(d.Elem, elem, childPath(path, fmt.Sprintf("[%d]", i)))
			if err != nil {
				return nil, err
			}
			out[i] = built
		}
		return out, nil
	default:
		return v, nil
	}
}

func childPath(path []string, name string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, name)
}
