package sequence

import (
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/errors"
)

// Record holds field values keyed by name. Field order comes from the schema.
//
// Decoded values use these Go types:
//
//	integer, varint              int32
//	unsigned, var-unsigned       uint32
//	boolean                      bool
//	enum                         int
//	bit-string, var-bit-string   codec.BitString
//	octet-string, var-octet-...  []byte
//	visible-string, var-vis...   string
//	generalized-time             time.Time
//	null                         nil
//	sequence                     Record
//	sequence-of                  []any
type Record map[string]any

// Span locates one primitive field in an encoded buffer.
type Span struct {
	Value any
	Path  string
	Start int
	End   int
	Kind  Kind
}

// Encode writes rec in schema order. A missing field is a FieldMissing
// error unless its kind is null. Failures carry the field path.
func (s *Schema) Encode(c *codec.Cursor, rec Record) error {
	if s == nil {
		return errors.NilReference(errors.PhaseEncode, nil, "schema")
	}
	if c == nil {
		return errors.NilReference(errors.PhaseEncode, nil, "cursor")
	}
	if rec == nil {
		return errors.NilReference(errors.PhaseEncode, nil, "record")
	}
	return encodeFields(c, s.Fields, rec)
}

// Decode reads a record in schema order.
func (s *Schema) Decode(c *codec.Cursor) (Record, error) {
	return s.decode(c, nil)
}

// DecodeSpans decodes a record and also reports the byte range of every
// primitive field, in wire order.
func (s *Schema) DecodeSpans(c *codec.Cursor) (Record, []Span, error) {
	var spans []Span
	rec, err := s.decode(c, &spans)
	return rec, spans, err
}

func (s *Schema) decode(c *codec.Cursor, spans *[]Span) (Record, error) {
	if s == nil {
		return nil, errors.NilReference(errors.PhaseDecode, nil, "schema")
	}
	if c == nil {
		return nil, errors.NilReference(errors.PhaseDecode, nil, "cursor")
	}
	d := decoder{c: c, spans: spans}
	rec, err := d.fields(s.Fields, "")
	if err != nil {
		return nil, err
	}
	Logger().Debug("record decoded",
		zap.String("schema", s.Name),
		zap.Int("fields", len(rec)),
		zap.Int("bytes", c.Position()))
	return rec, nil
}

func encodeFields(c *codec.Cursor, fields []Descriptor, rec Record) error {
	for i := range fields {
		d := &fields[i]
		v, ok := rec[d.Name]
		if !ok && d.Kind != KindNull {
			return errors.FieldMissing(errors.PhaseEncode, nil, d.Name)
		}
		if err := encodeValue(c, d, v); err != nil {
			logFieldFailure("encode", d.Name, i, c, err)
			return withPrefix(err, d.Name)
		}
	}
	return nil
}

func encodeValue(c *codec.Cursor, d *Descriptor, v any) error {
	const phase = errors.PhaseEncode
	mismatch := func() error {
		return errors.TypeMismatch(phase, nil, fmt.Sprintf("%T", v), d.Kind.String())
	}

	switch d.Kind {
	case KindInteger:
		n, ok := CoerceInt32(v)
		if !ok {
			return mismatch()
		}
		lo, hi := d.int32Range()
		return c.EncodeInteger(n, lo, hi)
	case KindUnsigned:
		n, ok := CoerceUint32(v)
		if !ok {
			return mismatch()
		}
		return c.EncodeUnsigned(n, d.uint32Max())
	case KindBoolean:
		b, ok := CoerceBool(v)
		if !ok {
			return mismatch()
		}
		return c.EncodeBoolean(b)
	case KindEnum:
		n, ok := CoerceInt(v)
		if !ok {
			return mismatch()
		}
		return c.EncodeEnum(n, d.Count)
	case KindBitString, KindVarBitString:
		b, ok := CoerceBitString(v)
		if !ok {
			return mismatch()
		}
		if uint64(b.Len) > uint64(d.maxLength()) {
			return c.LengthConstraint(errors.PhaseEncode, d.Kind.String(), uint64(b.Len), d.maxLength())
		}
		if d.Kind == KindBitString {
			return c.EncodeBitString(b)
		}
		return c.EncodeVarBitString(b)
	case KindOctetString, KindVarOctetString:
		b, ok := CoerceBytes(v)
		if !ok {
			return mismatch()
		}
		if len(b) > d.maxLength() {
			return c.LengthConstraint(errors.PhaseEncode, d.Kind.String(), uint64(len(b)), d.maxLength())
		}
		if d.Kind == KindOctetString {
			return c.EncodeOctetString(b)
		}
		return c.EncodeVarOctetString(b)
	case KindVisibleString:
		s, ok := CoerceString(v)
		if !ok {
			return mismatch()
		}
		return c.EncodeVisibleString(s, d.maxLength())
	case KindVarVisibleString:
		s, ok := CoerceString(v)
		if !ok {
			return mismatch()
		}
		return c.EncodeVarVisibleString(s, d.maxLength())
	case KindGeneralizedTime:
		t, ok := CoerceTime(v)
		if !ok {
			return mismatch()
		}
		return c.EncodeGeneralizedTime(t)
	case KindNull:
		return c.EncodeNull()
	case KindVarint:
		n, ok := CoerceInt32(v)
		if !ok {
			return mismatch()
		}
		return c.EncodeVarint(n)
	case KindVarUnsigned:
		n, ok := CoerceUint32(v)
		if !ok {
			return mismatch()
		}
		return c.EncodeVarUint(n)
	case KindSequence:
		rec, ok := CoerceRecord(v)
		if !ok {
			return mismatch()
		}
		return encodeFields(c, d.Fields, rec)
	case KindSequenceOf:
		list, ok := CoerceList(v)
		if !ok {
			return mismatch()
		}
		if err := c.EncodeCount(len(list), d.MaxCount); err != nil {
			return err
		}
		for i, elem := range list {
			if err := encodeValue(c, d.Elem, elem); err != nil {
				return withPrefix(err, fmt.Sprintf("[%d]", i))
			}
		}
		return nil
	default:
		return errors.InvalidType(phase, nil, d.Kind)
	}
}

type decoder struct {
	c     *codec.Cursor
	spans *[]Span
}

func (d decoder) fields(fields []Descriptor, prefix string) (Record, error) {
	rec := make(Record, len(fields))
	for i := range fields {
		desc := &fields[i]
		v, err := d.value(desc, joinPath(prefix, desc.Name))
		if err != nil {
			logFieldFailure("decode", desc.Name, i, d.c, err)
			return nil, withPrefix(err, desc.Name)
		}
		rec[desc.Name] = v
	}
	return rec, nil
}

func (d decoder) value(desc *Descriptor, path string) (any, error) {
	start := d.c.Position()
	v, err := d.read(desc, path)
	if err != nil {
		return nil, err
	}
	if d.spans != nil && desc.Kind.IsPrimitive() {
		*d.spans = append(*d.spans, Span{
			Path:  path,
			Kind:  desc.Kind,
			Start: start,
			End:   d.c.Position(),
			Value: v,
		})
	}
	return v, nil
}

func (d decoder) read(desc *Descriptor, path string) (any, error) {
	c := d.c
	switch desc.Kind {
	case KindInteger:
		lo, hi := desc.int32Range()
		return c.DecodeInteger(lo, hi)
	case KindUnsigned:
		return c.DecodeUnsigned(desc.uint32Max())
	case KindBoolean:
		return c.DecodeBoolean()
	case KindEnum:
		return c.DecodeEnum(desc.Count)
	case KindBitString:
		b, err := c.DecodeBitString()
		if err != nil {
			return nil, err
		}
		if uint64(b.Len) > uint64(desc.maxLength()) {
			return nil, c.LengthConstraint(errors.PhaseDecode, desc.Kind.String(), uint64(b.Len), desc.maxLength())
		}
		return b, nil
	case KindOctetString:
		b, err := c.DecodeOctetString()
		if err != nil {
			return nil, err
		}
		if len(b) > desc.maxLength() {
			return nil, c.LengthConstraint(errors.PhaseDecode, desc.Kind.String(), uint64(len(b)), desc.maxLength())
		}
		return b, nil
	case KindVisibleString:
		return c.DecodeVisibleString(desc.maxLength())
	case KindGeneralizedTime:
		return c.DecodeGeneralizedTime()
	case KindNull:
		return nil, c.DecodeNull()
	case KindVarint:
		return c.DecodeVarint()
	case KindVarUnsigned:
		return c.DecodeVarUint()
	case KindVarOctetString:
		return c.DecodeVarOctetString(desc.maxLength())
	case KindVarVisibleString:
		return c.DecodeVarVisibleString(desc.maxLength())
	case KindVarBitString:
		return c.DecodeVarBitString(desc.maxLength())
	case KindSequence:
		return d.fields(desc.Fields, path)
	case KindSequenceOf:
		n, err := c.DecodeCount(desc.MaxCount)
		if err != nil {
			return nil, err
		}
		// n comes off the wire; only reserve what the buffer could hold.
		list := make([]any, 0, min(n, c.Remaining()))
		for i := 0; i < n; i++ {
			idx := fmt.Sprintf("[%d]", i)
			v, err := d.value(desc.Elem, path+idx)
			if err != nil {
				return nil, withPrefix(err, idx)
			}
			list = append(list, v)
		}
		return list, nil
	default:
		return nil, errors.InvalidType(errors.PhaseDecode, nil, desc.Kind)
	}
}

// withPrefix prepends name to the path of a structured error. Other errors
// are returned unchanged.
func withPrefix(err error, name string) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.WithPrefix(name)
	}
	return err
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
