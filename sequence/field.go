package sequence

import (
	"time"

	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/errors"
)

// FieldCodec encodes and decodes one field of a positional sequence.
// Implementations hold a reference to the caller's storage for the field.
type FieldCodec interface {
	EncodeField(c *codec.Cursor) error
	DecodeField(c *codec.Cursor) error
}

// Field pairs a name, used only in errors and logs, with its codec.
type Field struct {
	Codec FieldCodec
	Name  string
}

// Integer returns a codec for a signed integer field constrained to [min, max].
func Integer(v *int32, min, max int32) FieldCodec {
	return &integerField{v: v, min: min, max: max}
}

type integerField struct {
	v        *int32
	min, max int32
}

func (f *integerField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindInteger)
	}
	return c.EncodeInteger(*f.v, f.min, f.max)
}

func (f *integerField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindInteger)
	}
	v, err := c.DecodeInteger(f.min, f.max)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Unsigned returns a codec for an unsigned integer field constrained to [0, max].
func Unsigned(v *uint32, max uint32) FieldCodec {
	return &unsignedField{v: v, max: max}
}

type unsignedField struct {
	v   *uint32
	max uint32
}

func (f *unsignedField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindUnsigned)
	}
	return c.EncodeUnsigned(*f.v, f.max)
}

func (f *unsignedField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindUnsigned)
	}
	v, err := c.DecodeUnsigned(f.max)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Boolean returns a codec for a boolean field.
func Boolean(v *bool) FieldCodec {
	return &booleanField{v: v}
}

type booleanField struct {
	v *bool
}

func (f *booleanField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindBoolean)
	}
	return c.EncodeBoolean(*f.v)
}

func (f *booleanField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindBoolean)
	}
	v, err := c.DecodeBoolean()
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Enum returns a codec for an enumerated field with count possible values.
func Enum(v *int, count int) FieldCodec {
	return &enumField{v: v, count: count}
}

type enumField struct {
	v     *int
	count int
}

func (f *enumField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindEnum)
	}
	return c.EncodeEnum(*f.v, f.count)
}

func (f *enumField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindEnum)
	}
	v, err := c.DecodeEnum(f.count)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Bits returns a codec for a fixed-framed bit string field.
func Bits(v *codec.BitString) FieldCodec {
	return &bitsField{v: v}
}

type bitsField struct {
	v *codec.BitString
}

func (f *bitsField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindBitString)
	}
	return c.EncodeBitString(*f.v)
}

func (f *bitsField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindBitString)
	}
	v, err := c.DecodeBitString()
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Octets returns a codec for a fixed-framed octet string field.
func Octets(v *[]byte) FieldCodec {
	return &octetsField{v: v}
}

type octetsField struct {
	v *[]byte
}

func (f *octetsField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindOctetString)
	}
	return c.EncodeOctetString(*f.v)
}

func (f *octetsField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindOctetString)
	}
	v, err := c.DecodeOctetString()
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Text returns a codec for a visible string field of at most maxLen bytes.
func Text(v *string, maxLen int) FieldCodec {
	return &textField{v: v, maxLen: maxLen}
}

type textField struct {
	v      *string
	maxLen int
}

func (f *textField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindVisibleString)
	}
	return c.EncodeVisibleString(*f.v, f.maxLen)
}

func (f *textField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindVisibleString)
	}
	v, err := c.DecodeVisibleString(f.maxLen)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Time returns a codec for a generalized time field.
func Time(v *time.Time) FieldCodec {
	return &timeField{v: v}
}

type timeField struct {
	v *time.Time
}

func (f *timeField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindGeneralizedTime)
	}
	return c.EncodeGeneralizedTime(*f.v)
}

func (f *timeField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindGeneralizedTime)
	}
	v, err := c.DecodeGeneralizedTime()
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Null returns a codec for a field that occupies no bytes.
func Null() FieldCodec {
	return nullField{}
}

type nullField struct{}

func (nullField) EncodeField(c *codec.Cursor) error { return c.EncodeNull() }
func (nullField) DecodeField(c *codec.Cursor) error { return c.DecodeNull() }

// Varint returns a codec for a signed integer carried as a varint.
func Varint(v *int32) FieldCodec {
	return &varintField{v: v}
}

type varintField struct {
	v *int32
}

func (f *varintField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindVarint)
	}
	return c.EncodeVarint(*f.v)
}

func (f *varintField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindVarint)
	}
	v, err := c.DecodeVarint()
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// VarUnsigned returns a codec for an unsigned integer carried as a varint.
func VarUnsigned(v *uint32) FieldCodec {
	return &varUnsignedField{v: v}
}

type varUnsignedField struct {
	v *uint32
}

func (f *varUnsignedField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindVarUnsigned)
	}
	return c.EncodeVarUint(*f.v)
}

func (f *varUnsignedField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindVarUnsigned)
	}
	v, err := c.DecodeVarUint()
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// VarOctets returns a codec for a varint-framed octet string of at most maxLen bytes.
func VarOctets(v *[]byte, maxLen int) FieldCodec {
	return &varOctetsField{v: v, maxLen: maxLen}
}

type varOctetsField struct {
	v      *[]byte
	maxLen int
}

func (f *varOctetsField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindVarOctetString)
	}
	if f.maxLen < 0 || len(*f.v) > f.maxLen {
		return c.LengthConstraint(errors.PhaseEncode, KindVarOctetString.String(), uint64(len(*f.v)), f.maxLen)
	}
	return c.EncodeVarOctetString(*f.v)
}

func (f *varOctetsField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindVarOctetString)
	}
	v, err := c.DecodeVarOctetString(f.maxLen)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// VarText returns a codec for a varint-framed visible string of at most maxLen bytes.
func VarText(v *string, maxLen int) FieldCodec {
	return &varTextField{v: v, maxLen: maxLen}
}

type varTextField struct {
	v      *string
	maxLen int
}

func (f *varTextField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindVarVisibleString)
	}
	return c.EncodeVarVisibleString(*f.v, f.maxLen)
}

func (f *varTextField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindVarVisibleString)
	}
	v, err := c.DecodeVarVisibleString(f.maxLen)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// VarBits returns a codec for a varint-framed bit string of at most maxBits bits.
func VarBits(v *codec.BitString, maxBits int) FieldCodec {
	return &varBitsField{v: v, maxBits: maxBits}
}

type varBitsField struct {
	v       *codec.BitString
	maxBits int
}

func (f *varBitsField) EncodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseEncode, KindVarBitString)
	}
	if f.maxBits < 0 || uint64(f.v.Len) > uint64(f.maxBits) {
		return c.LengthConstraint(errors.PhaseEncode, KindVarBitString.String(), uint64(f.v.Len), f.maxBits)
	}
	return c.EncodeVarBitString(*f.v)
}

func (f *varBitsField) DecodeField(c *codec.Cursor) error {
	if f.v == nil {
		return nilField(errors.PhaseDecode, KindVarBitString)
	}
	v, err := c.DecodeVarBitString(f.maxBits)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

// Nested returns a codec that encodes fields as an inner sequence.
func Nested(fields []Field) FieldCodec {
	return nestedField(fields)
}

type nestedField []Field

func (f nestedField) EncodeField(c *codec.Cursor) error { return Encode(c, f) }
func (f nestedField) DecodeField(c *codec.Cursor) error { return Decode(c, f) }

// Func adapts a pair of caller functions into a FieldCodec.
func Func(encode, decode func(*codec.Cursor) error) FieldCodec {
	return funcField{encode: encode, decode: decode}
}

type funcField struct {
	encode func(*codec.Cursor) error
	decode func(*codec.Cursor) error
}

func (f funcField) EncodeField(c *codec.Cursor) error {
	if f.encode == nil {
		return errors.NilReference(errors.PhaseEncode, nil, "encode function")
	}
	return f.encode(c)
}

func (f funcField) DecodeField(c *codec.Cursor) error {
	if f.decode == nil {
		return errors.NilReference(errors.PhaseDecode, nil, "decode function")
	}
	return f.decode(c)
}

func nilField(phase errors.Phase, kind Kind) error {
	return errors.NilReference(phase, nil, kind.String()+" reference")
}
