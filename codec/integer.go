package codec

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/axdr/errors"
)

// EncodeInteger writes v as 4 big-endian bytes after checking min <= v <= max.
func (c *Cursor) EncodeInteger(v, min, max int32) error {
	if v < min || v > max {
		return c.constraint(errors.PhaseEncode, typeInteger, v, "value %d outside [%d, %d]", v, min, max)
	}
	w, err := c.window(errors.PhaseEncode, typeInteger, 4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(w, uint32(v))
	c.pos += 4
	return nil
}

// DecodeInteger reads a 4-byte signed integer and checks it against [min, max].
// An out-of-range value is not consumed.
func (c *Cursor) DecodeInteger(min, max int32) (int32, error) {
	w, err := c.window(errors.PhaseDecode, typeInteger, 4)
	if err != nil {
		return 0, err
	}
	v := int32(binary.BigEndian.Uint32(w))
	if v < min || v > max {
		return 0, c.constraint(errors.PhaseDecode, typeInteger, v, "value %d outside [%d, %d]", v, min, max)
	}
	c.pos += 4
	return v, nil
}

// EncodeUnsigned writes v as 4 big-endian bytes after checking v <= max.
func (c *Cursor) EncodeUnsigned(v, max uint32) error {
	if v > max {
		return c.constraint(errors.PhaseEncode, typeUnsigned, v, "value %d exceeds %d", v, max)
	}
	w, err := c.window(errors.PhaseEncode, typeUnsigned, 4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(w, v)
	c.pos += 4
	return nil
}

// DecodeUnsigned reads a 4-byte unsigned integer and checks it against max.
func (c *Cursor) DecodeUnsigned(max uint32) (uint32, error) {
	w, err := c.window(errors.PhaseDecode, typeUnsigned, 4)
	if err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(w)
	if v > max {
		return 0, c.constraint(errors.PhaseDecode, typeUnsigned, v, "value %d exceeds %d", v, max)
	}
	c.pos += 4
	return v, nil
}

// EncodeEnum writes an enumerated value as an integer in [0, count-1].
func (c *Cursor) EncodeEnum(v, count int) error {
	hi, ok := enumMax(count)
	if !ok || v < 0 || v > hi {
		return c.constraint(errors.PhaseEncode, typeEnum, v, "value %d outside [0, %d)", v, count)
	}
	return c.EncodeInteger(int32(v), 0, int32(hi))
}

// DecodeEnum reads an enumerated value and checks it against [0, count-1].
func (c *Cursor) DecodeEnum(count int) (int, error) {
	hi, ok := enumMax(count)
	if !ok {
		return 0, c.constraint(errors.PhaseDecode, typeEnum, count, "enum with %d values admits nothing", count)
	}
	v, err := c.DecodeInteger(0, int32(hi))
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// enumMax returns the largest valid enum value for count, clamped to the
// int32 range the wire form can carry.
func enumMax(count int) (int, bool) {
	if count <= 0 {
		return 0, false
	}
	hi := count - 1
	if hi > math.MaxInt32 {
		hi = math.MaxInt32
	}
	return hi, true
}
