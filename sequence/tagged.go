package sequence

import (
	"fmt"
	"math"
	"time"

	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/errors"
)

// unbounded is the length limit the standard dispatchers apply.
const unbounded = math.MaxInt

// Param is one field of a tagged sequence: a reference to the caller's
// storage plus the kind that selects its primitive.
type Param struct {
	Value any
	Kind  Kind
}

// Dispatcher encodes or decodes a single value according to its kind.
// It returns an InvalidType error for kinds it does not handle.
type Dispatcher func(c *codec.Cursor, value any, kind Kind) error

// EncodeTagged writes params in order through dispatch. The first failure
// stops the traversal and is returned unchanged.
func EncodeTagged(c *codec.Cursor, params []Param, dispatch Dispatcher) error {
	return runTagged(errors.PhaseEncode, "encode", c, params, dispatch)
}

// DecodeTagged reads params in order through dispatch.
func DecodeTagged(c *codec.Cursor, params []Param, dispatch Dispatcher) error {
	return runTagged(errors.PhaseDecode, "decode", c, params, dispatch)
}

func runTagged(phase errors.Phase, op string, c *codec.Cursor, params []Param, dispatch Dispatcher) error {
	if c == nil {
		return errors.NilReference(phase, nil, "cursor")
	}
	if dispatch == nil {
		return errors.NilReference(phase, nil, "dispatcher")
	}
	for i, p := range params {
		name := fmt.Sprintf("[%d]", i)
		var err error
		if p.Value == nil {
			err = errors.NilReference(phase, []string{name}, "field reference")
		} else {
			err = dispatch(c, p.Value, p.Kind)
		}
		if err != nil {
			logFieldFailure(op, name, i, c, err)
			return err
		}
	}
	return nil
}

// StandardEncoder is a Dispatcher that encodes pointer values with the full
// range each kind allows. Integer takes *int32, Unsigned *uint32, Boolean
// *bool, Enum *int, bit strings *codec.BitString, octet strings *[]byte,
// visible strings *string, GeneralizedTime *time.Time, Varint *int32 and
// VarUnsigned *uint32. Null accepts any non-nil value.
func StandardEncoder(c *codec.Cursor, value any, kind Kind) error {
	const phase = errors.PhaseEncode
	switch kind {
	case KindInteger:
		v, err := ref[int32](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeInteger(*v, math.MinInt32, math.MaxInt32)
	case KindUnsigned:
		v, err := ref[uint32](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeUnsigned(*v, math.MaxUint32)
	case KindBoolean:
		v, err := ref[bool](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeBoolean(*v)
	case KindEnum:
		v, err := ref[int](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeEnum(*v, math.MaxInt32)
	case KindBitString:
		v, err := ref[codec.BitString](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeBitString(*v)
	case KindOctetString:
		v, err := ref[[]byte](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeOctetString(*v)
	case KindVisibleString:
		v, err := ref[string](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeVisibleString(*v, unbounded)
	case KindGeneralizedTime:
		v, err := ref[time.Time](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeGeneralizedTime(*v)
	case KindNull:
		return c.EncodeNull()
	case KindVarint:
		v, err := ref[int32](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeVarint(*v)
	case KindVarUnsigned:
		v, err := ref[uint32](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeVarUint(*v)
	case KindVarOctetString:
		v, err := ref[[]byte](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeVarOctetString(*v)
	case KindVarVisibleString:
		v, err := ref[string](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeVarVisibleString(*v, unbounded)
	case KindVarBitString:
		v, err := ref[codec.BitString](phase, value, kind)
		if err != nil {
			return err
		}
		return c.EncodeVarBitString(*v)
	default:
		return errors.InvalidType(phase, nil, kind)
	}
}

// StandardDecoder is the decoding counterpart of StandardEncoder. It stores
// each decoded value through the pointer it is given.
func StandardDecoder(c *codec.Cursor, value any, kind Kind) error {
	const phase = errors.PhaseDecode
	switch kind {
	case KindInteger:
		return decodeInto(phase, c, value, kind, func(c *codec.Cursor) (int32, error) {
			return c.DecodeInteger(math.MinInt32, math.MaxInt32)
		})
	case KindUnsigned:
		return decodeInto(phase, c, value, kind, func(c *codec.Cursor) (uint32, error) {
			return c.DecodeUnsigned(math.MaxUint32)
		})
	case KindBoolean:
		return decodeInto(phase, c, value, kind, (*codec.Cursor).DecodeBoolean)
	case KindEnum:
		return decodeInto(phase, c, value, kind, func(c *codec.Cursor) (int, error) {
			return c.DecodeEnum(math.MaxInt32)
		})
	case KindBitString:
		return decodeInto(phase, c, value, kind, (*codec.Cursor).DecodeBitString)
	case KindOctetString:
		return decodeInto(phase, c, value, kind, (*codec.Cursor).DecodeOctetString)
	case KindVisibleString:
		return decodeInto(phase, c, value, kind, func(c *codec.Cursor) (string, error) {
			return c.DecodeVisibleString(unbounded)
		})
	case KindGeneralizedTime:
		return decodeInto(phase, c, value, kind, (*codec.Cursor).DecodeGeneralizedTime)
	case KindNull:
		return c.DecodeNull()
	case KindVarint:
		return decodeInto(phase, c, value, kind, (*codec.Cursor).DecodeVarint)
	case KindVarUnsigned:
		return decodeInto(phase, c, value, kind, (*codec.Cursor).DecodeVarUint)
	case KindVarOctetString:
		return decodeInto(phase, c, value, kind, func(c *codec.Cursor) ([]byte, error) {
			return c.DecodeVarOctetString(unbounded)
		})
	case KindVarVisibleString:
		return decodeInto(phase, c, value, kind, func(c *codec.Cursor) (string, error) {
			return c.DecodeVarVisibleString(unbounded)
		})
	case KindVarBitString:
		return decodeInto(phase, c, value, kind, func(c *codec.Cursor) (codec.BitString, error) {
			return c.DecodeVarBitString(unbounded)
		})
	default:
		return errors.InvalidType(phase, nil, kind)
	}
}

// ref asserts value is a non-nil *T.
func ref[T any](phase errors.Phase, value any, kind Kind) (*T, error) {
	p, ok := value.(*T)
	if !ok {
		return nil, errors.TypeMismatch(phase, nil, fmt.Sprintf("%T", value), kind.String())
	}
	if p == nil {
		return nil, nilField(phase, kind)
	}
	return p, nil
}

func decodeInto[T any](phase errors.Phase, c *codec.Cursor, value any, kind Kind, read func(*codec.Cursor) (T, error)) error {
	p, err := ref[T](phase, value, kind)
	if err != nil {
		return err
	}
	v, err := read(c)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
