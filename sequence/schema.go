package sequence

import (
	"fmt"
	"math"

	"github.com/wippyai/axdr/errors"
)

// Range bounds an integer or unsigned field. A nil Range means the full
// range of the kind.
type Range struct {
	Min int64
	Max int64
}

// Descriptor describes one named, typed field.
//
//	Kind                  uses
//	integer, unsigned     Range
//	enum                  Count
//	strings and bits      MaxLength (0 means no bound beyond the wire limit)
//	sequence              Fields
//	sequence-of           Elem, MaxCount
type Descriptor struct {
	Elem      *Descriptor
	Range     *Range
	Name      string
	Fields    []Descriptor
	Count     int
	MaxLength int
	MaxCount  uint32
	Kind      Kind
}

// Schema is an ordered list of field descriptors traversed by one generic
// encoder and decoder. A validated Schema is immutable and may be shared.
type Schema struct {
	Name   string
	Fields []Descriptor
}

// Validate checks every descriptor for a known kind, unique non-empty
// names and parameters that match the kind.
func (s *Schema) Validate() error {
	if s == nil {
		return errors.NilReference(errors.PhaseSchema, nil, "schema")
	}
	return validateFields(s.Fields, nil)
}

func validateFields(fields []Descriptor, path []string) error {
	seen := make(map[string]struct{}, len(fields))
	for i := range fields {
		d := &fields[i]
		if d.Name == "" {
			return schemaError(appendPath(path, fmt.Sprintf("[%d]", i)), "field name is empty")
		}
		if _, dup := seen[d.Name]; dup {
			return schemaError(appendPath(path, d.Name), "duplicate field name")
		}
		seen[d.Name] = struct{}{}
		if err := d.validate(appendPath(path, d.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Descriptor) validate(path []string) error {
	if !d.Kind.Valid() {
		return errors.InvalidType(errors.PhaseSchema, path, d.Kind)
	}
	if d.Range != nil {
		if err := d.validateRange(path); err != nil {
			return err
		}
	}
	if d.MaxLength != 0 && !d.Kind.HasMaxLength() {
		return schemaError(path, "max length does not apply to %s", d.Kind)
	}
	if d.MaxLength < 0 {
		return schemaError(path, "max length %d is negative", d.MaxLength)
	}
	if d.Kind != KindEnum && d.Count != 0 {
		return schemaError(path, "count does not apply to %s", d.Kind)
	}
	if d.Kind != KindSequence && len(d.Fields) > 0 {
		return schemaError(path, "fields do not apply to %s", d.Kind)
	}
	if d.Kind != KindSequenceOf && (d.Elem != nil || d.MaxCount != 0) {
		return schemaError(path, "element and max count do not apply to %s", d.Kind)
	}

	switch d.Kind {
	case KindEnum:
		if d.Count <= 0 {
			return schemaError(path, "enum needs a positive count, got %d", d.Count)
		}
	case KindSequence:
		return validateFields(d.Fields, path)
	case KindSequenceOf:
		if d.Elem == nil {
			return schemaError(path, "sequence-of needs an element descriptor")
		}
		if d.MaxCount == 0 {
			return schemaError(path, "sequence-of needs a positive max count")
		}
		return d.Elem.validate(appendPath(path, "[]"))
	}
	return nil
}

func (d *Descriptor) validateRange(path []string) error {
	r := d.Range
	if r.Min > r.Max {
		return schemaError(path, "range [%d, %d] is empty", r.Min, r.Max)
	}
	switch d.Kind {
	case KindInteger:
		if r.Min < math.MinInt32 || r.Max > math.MaxInt32 {
			return schemaError(path, "range [%d, %d] exceeds int32", r.Min, r.Max)
		}
	case KindUnsigned:
		if r.Min != 0 || r.Max > math.MaxUint32 {
			return schemaError(path, "unsigned range must be [0, max] with max <= %d", uint32(math.MaxUint32))
		}
	default:
		return schemaError(path, "range does not apply to %s", d.Kind)
	}
	return nil
}

func (d *Descriptor) int32Range() (int32, int32) {
	if d.Range == nil {
		return math.MinInt32, math.MaxInt32
	}
	return int32(d.Range.Min), int32(d.Range.Max)
}

func (d *Descriptor) uint32Max() uint32 {
	if d.Range == nil {
		return math.MaxUint32
	}
	return uint32(d.Range.Max)
}

func (d *Descriptor) maxLength() int {
	if d.MaxLength == 0 {
		return unbounded
	}
	return d.MaxLength
}

func schemaError(path []string, format string, args ...any) error {
	return errors.New(errors.PhaseSchema, errors.KindInvalidValue).
		Path(path...).
		Detail(format, args...).
		Build()
}

func appendPath(path []string, name string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, name)
}
