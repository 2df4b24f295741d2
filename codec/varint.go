package codec

import (
	"github.com/wippyai/axdr/errors"
)

// MaxVarintLen is the maximum number of base-128 groups in a 32-bit varint.
const MaxVarintLen = 5

// lastGroupMax is the largest byte allowed in the fifth group: no
// continuation bit and no bits beyond the 32nd.
const lastGroupMax = 0x0f

// VarintLen returns the number of bytes EncodeVarUint uses for v.
func VarintLen(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// AppendVarint appends the varint encoding of v to dst.
func AppendVarint(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// EncodeVarUint writes v as base-128 groups, least significant first, with
// the high bit of each byte set while more groups follow.
func (c *Cursor) EncodeVarUint(v uint32) error {
	w, err := c.window(errors.PhaseEncode, typeVarint, uint64(VarintLen(v)))
	if err != nil {
		return err
	}
	c.pos += len(AppendVarint(w[:0], v))
	return nil
}

// DecodeVarUint reads a varint of at most five groups.
func (c *Cursor) DecodeVarUint() (uint32, error) {
	v, n, err := c.peekVarint(typeVarint)
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}

// EncodeVarint writes the two's-complement bit pattern of v as a varint.
// Negative values therefore always take five bytes.
func (c *Cursor) EncodeVarint(v int32) error {
	return c.EncodeVarUint(uint32(v))
}

// DecodeVarint reads a varint and reinterprets it as a signed value.
func (c *Cursor) DecodeVarint() (int32, error) {
	v, err := c.DecodeVarUint()
	return int32(v), err
}

// peekVarint decodes a varint at the current position without advancing
// and returns it with its encoded length. A stream still continuing in the
// fifth group, or carrying bits past 32 in it, is an invalid value.
func (c *Cursor) peekVarint(typ string) (uint32, int, error) {
	var result uint32
	var shift uint
	for i := 0; i < MaxVarintLen; i++ {
		if c.pos+i >= len(c.buf) {
			return 0, 0, c.fail(errors.New(errors.PhaseDecode, errors.KindOverflow).
				Type(typ).
				Value(i + 1).
				Detail("varint truncated after %d bytes", i).
				Build())
		}
		b := c.buf[c.pos+i]
		if i == MaxVarintLen-1 && b > lastGroupMax {
			return 0, 0, c.invalid(errors.PhaseDecode, typ, "varint exceeds 32 bits (group %d = %#02x)", i+1, b)
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, c.invalid(errors.PhaseDecode, typ, "varint longer than %d bytes", MaxVarintLen)
}
