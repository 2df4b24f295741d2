package schema

import (
	stderrors "errors"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wippyai/axdr/errors"
	"github.com/wippyai/axdr/sequence"
)

// Document is the on-disk form of a record schema.
//
//	name = "meter"
//
//	[[fields]]
//	name = "id"
//	type = "integer"
//	min = 0
//	max = 99999
type Document struct {
	Name   string  `toml:"name" yaml:"name" json:"name,omitempty"`
	Fields []Field `toml:"fields" yaml:"fields" json:"fields" validate:"required,min=1,dive"`
}

// Field describes one field in a Document. Type is a sequence kind name.
type Field struct {
	Min       *int64  `toml:"min" yaml:"min" json:"min,omitempty"`
	Max       *int64  `toml:"max" yaml:"max" json:"max,omitempty"`
	Elem      *Field  `toml:"elem" yaml:"elem" json:"elem,omitempty" validate:"required_if=Type sequence-of"`
	Name      string  `toml:"name" yaml:"name" json:"name,omitempty" validate:"required"`
	Type      string  `toml:"type" yaml:"type" json:"type" validate:"required,axdrkind"`
	Fields    []Field `toml:"fields" yaml:"fields" json:"fields,omitempty" validate:"dive"`
	Count     int     `toml:"count" yaml:"count" json:"count,omitempty" validate:"gte=0"`
	MaxLength int     `toml:"max_length" yaml:"max_length" json:"max_length,omitempty" validate:"gte=0"`
	MaxCount  uint32  `toml:"max_count" yaml:"max_count" json:"max_count,omitempty" validate:"required_if=Type sequence-of"`
}

// elemName is given to sequence-of element descriptors that have no name.
const elemName = "item"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func documentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("axdrkind", func(fl validator.FieldLevel) bool {
			_, ok := sequence.ParseKind(fl.Field().String())
			return ok
		})
	})
	return validate
}

// Parse reads a schema document in the given format, validates it and
// compiles it into a sequence.Schema.
func Parse(data []byte, format Format) (*sequence.Schema, error) {
	var doc Document
	if err := unmarshal(data, format, &doc); err != nil {
		return nil, errors.Load(fmt.Sprintf("parse %s schema", format), err)
	}
	return doc.Compile()
}

// Load reads a schema document from path, inferring the format from its extension.
func Load(path string) (*sequence.Schema, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, errors.Load("schema format", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read schema", err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	Logger().Debug("schema loaded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("fields", len(s.Fields)))
	return s, nil
}

// Compile validates the document and converts it into a validated
// sequence.Schema.
func (d *Document) Compile() (*sequence.Schema, error) {
	nameElems(d.Fields)
	if err := documentValidator().Struct(d); err != nil {
		return nil, validationError(err)
	}
	fields, err := compileFields(d.Fields)
	if err != nil {
		return nil, err
	}
	s := &sequence.Schema{Name: d.Name, Fields: fields}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func nameElems(fields []Field) {
	for i := range fields {
		nameElem(&fields[i])
	}
}

func nameElem(f *Field) {
	if f.Elem != nil {
		if f.Elem.Name == "" {
			f.Elem.Name = elemName
		}
		nameElem(f.Elem)
	}
	nameElems(f.Fields)
}

func compileFields(fields []Field) ([]sequence.Descriptor, error) {
	out := make([]sequence.Descriptor, len(fields))
	for i := range fields {
		d, err := fields[i].compile()
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func (f *Field) compile() (sequence.Descriptor, error) {
	kind, ok := sequence.ParseKind(f.Type)
	if !ok {
		return sequence.Descriptor{}, errors.InvalidType(errors.PhaseSchema, []string{f.Name}, f.Type)
	}
	d := sequence.Descriptor{
		Name:      f.Name,
		Kind:      kind,
		Count:     f.Count,
		MaxLength: f.MaxLength,
		MaxCount:  f.MaxCount,
	}
	if f.Min != nil || f.Max != nil {
		d.Range = rangeFor(kind, f.Min, f.Max)
	}
	if len(f.Fields) > 0 {
		fields, err := compileFields(f.Fields)
		if err != nil {
			return sequence.Descriptor{}, err
		}
		d.Fields = fields
	}
	if f.Elem != nil {
		elem, err := f.Elem.compile()
		if err != nil {
			return sequence.Descriptor{}, err
		}
		d.Elem = &elem
	}
	return d, nil
}

// rangeFor fills an omitted bound with the limit of the kind.
func rangeFor(kind sequence.Kind, min, max *int64) *sequence.Range {
	r := &sequence.Range{Min: math.MinInt32, Max: math.MaxInt32}
	if kind == sequence.KindUnsigned {
		r.Min, r.Max = 0, math.MaxUint32
	}
	if min != nil {
		r.Min = *min
	}
	if max != nil {
		r.Max = *max
	}
	return r
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.PhaseSchema, errors.KindInvalidValue, err, "validate schema document")
	}
	fe := verrs[0]
	return errors.New(errors.PhaseSchema, errors.KindInvalidValue).
		Path(fe.Namespace()).
		Value(fe.Value()).
		Detail("failed %q check", fe.Tag()).
		Cause(err).
		Build()
}
