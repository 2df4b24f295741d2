package codec

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/wippyai/axdr/errors"
)

const lengthPrefixSize = 4

// BitString is a bit count plus its packed bytes, most significant bit first.
// Only the first ByteLen() bytes of Bytes are significant.
type BitString struct {
	Bytes []byte
	Len   uint32
}

// ByteLen returns ceil(Len/8), the number of bytes the bits occupy on the wire.
func (b BitString) ByteLen() int {
	return int((uint64(b.Len) + 7) / 8)
}

// Bit reports whether bit i is set. Bit 0 is the high bit of the first byte.
func (b BitString) Bit(i int) bool {
	if i < 0 || uint64(i) >= uint64(b.Len) || i/8 >= len(b.Bytes) {
		return false
	}
	return b.Bytes[i/8]&(0x80>>(i%8)) != 0
}

// String renders the bits as a string of '0' and '1' characters.
func (b BitString) String() string {
	var sb strings.Builder
	sb.Grow(int(b.Len))
	for i := 0; i < int(b.Len); i++ {
		if b.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseBitString builds a BitString from a string of '0' and '1' characters.
// Spaces and underscores are ignored as separators.
func ParseBitString(s string) (BitString, error) {
	var bits BitString
	for _, ch := range s {
		switch ch {
		case ' ', '_':
			continue
		case '0', '1':
		default:
			return BitString{}, errors.New(errors.PhaseEncode, errors.KindInvalidValue).
				Type(typeBitString).
				Detail("invalid bit %q", ch).
				Build()
		}
		if bits.Len%8 == 0 {
			bits.Bytes = append(bits.Bytes, 0)
		}
		if ch == '1' {
			bits.Bytes[bits.Len/8] |= 0x80 >> (bits.Len % 8)
		}
		bits.Len++
	}
	return bits, nil
}

// EncodeOctetString writes a 4-byte length prefix followed by data.
func (c *Cursor) EncodeOctetString(data []byte) error {
	return c.encodeFixedBlob(typeOctetString, uint64(len(data)), data)
}

// DecodeOctetString reads a 4-byte length prefix and that many bytes.
// The returned slice is a copy and does not alias the buffer.
func (c *Cursor) DecodeOctetString() ([]byte, error) {
	n, err := c.peekFixedLength(typeOctetString)
	if err != nil {
		return nil, err
	}
	payload, err := c.windowAt(errors.PhaseDecode, typeOctetString, lengthPrefixSize, uint64(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, payload)
	c.pos += lengthPrefixSize + int(n)
	return out, nil
}

// EncodeBitString writes the bit count as a 4-byte prefix followed by the
// packed bytes.
func (c *Cursor) EncodeBitString(bits BitString) error {
	byteLen := bits.ByteLen()
	if len(bits.Bytes) < byteLen {
		return c.invalid(errors.PhaseEncode, typeBitString, "%d bits need %d bytes, have %d", bits.Len, byteLen, len(bits.Bytes))
	}
	return c.encodeFixedBlob(typeBitString, uint64(bits.Len), bits.Bytes[:byteLen])
}

// DecodeBitString reads a bit count and ceil(count/8) packed bytes.
func (c *Cursor) DecodeBitString() (BitString, error) {
	n, err := c.peekFixedLength(typeBitString)
	if err != nil {
		return BitString{}, err
	}
	bits := BitString{Len: n}
	byteLen := bits.ByteLen()
	payload, err := c.windowAt(errors.PhaseDecode, typeBitString, lengthPrefixSize, uint64(byteLen))
	if err != nil {
		return BitString{}, err
	}
	bits.Bytes = make([]byte, byteLen)
	copy(bits.Bytes, payload)
	c.pos += lengthPrefixSize + byteLen
	return bits, nil
}

// encodeFixedBlob writes length as a 4-byte prefix followed by payload.
// Prefix and payload are checked against the remaining space together so
// nothing is written when either does not fit.
func (c *Cursor) encodeFixedBlob(typ string, length uint64, payload []byte) error {
	if length > math.MaxUint32 {
		return c.constraint(errors.PhaseEncode, typ, length, "length %d exceeds %d", length, uint32(math.MaxUint32))
	}
	w, err := c.window(errors.PhaseEncode, typ, lengthPrefixSize+uint64(len(payload)))
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(w, uint32(length))
	copy(w[lengthPrefixSize:], payload)
	c.pos += len(w)
	return nil
}

// peekFixedLength reads a 4-byte length prefix without advancing.
func (c *Cursor) peekFixedLength(typ string) (uint32, error) {
	w, err := c.window(errors.PhaseDecode, typ, lengthPrefixSize)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(w), nil
}
