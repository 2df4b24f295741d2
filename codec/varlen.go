package codec

import (
	"math"

	"github.com/wippyai/axdr/errors"
)

// EncodeVarOctetString writes data with a varint length prefix.
func (c *Cursor) EncodeVarOctetString(data []byte) error {
	return c.encodeVarBlob(typeVarOctetString, uint64(len(data)), data)
}

// DecodeVarOctetString reads a varint-framed octet string of at most maxLen bytes.
func (c *Cursor) DecodeVarOctetString(maxLen int) ([]byte, error) {
	payload, n, err := c.peekVarBlob(typeVarOctetString, maxLen, byteCount)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	c.pos += n
	return out, nil
}

// EncodeVarVisibleString writes s with a varint length prefix after checking
// its byte length against maxLen.
func (c *Cursor) EncodeVarVisibleString(s string, maxLen int) error {
	if exceeds(uint64(len(s)), maxLen) {
		return c.constraint(errors.PhaseEncode, typeVarVisibleString, len(s), "length %d exceeds %d", len(s), maxLen)
	}
	return c.encodeVarBlob(typeVarVisibleString, uint64(len(s)), []byte(s))
}

// DecodeVarVisibleString reads a varint-framed string of at most maxLen bytes.
func (c *Cursor) DecodeVarVisibleString(maxLen int) (string, error) {
	payload, n, err := c.peekVarBlob(typeVarVisibleString, maxLen, byteCount)
	if err != nil {
		return "", err
	}
	s := string(payload)
	c.pos += n
	return s, nil
}

// EncodeVarBitString writes the bit count as a varint followed by the packed bytes.
func (c *Cursor) EncodeVarBitString(bits BitString) error {
	byteLen := bits.ByteLen()
	if len(bits.Bytes) < byteLen {
		return c.invalid(errors.PhaseEncode, typeVarBitString, "%d bits need %d bytes, have %d", bits.Len, byteLen, len(bits.Bytes))
	}
	return c.encodeVarBlob(typeVarBitString, uint64(bits.Len), bits.Bytes[:byteLen])
}

// DecodeVarBitString reads a varint-framed bit string of at most maxBits bits.
func (c *Cursor) DecodeVarBitString(maxBits int) (BitString, error) {
	var bitLen uint32
	payload, n, err := c.peekVarBlob(typeVarBitString, maxBits, func(declared uint32) uint64 {
		bitLen = declared
		return (uint64(declared) + 7) / 8
	})
	if err != nil {
		return BitString{}, err
	}
	bits := BitString{Len: bitLen, Bytes: make([]byte, len(payload))}
	copy(bits.Bytes, payload)
	c.pos += n
	return bits, nil
}

func byteCount(declared uint32) uint64 {
	return uint64(declared)
}

func (c *Cursor) encodeVarBlob(typ string, length uint64, payload []byte) error {
	if length > math.MaxUint32 {
		return c.constraint(errors.PhaseEncode, typ, length, "length %d exceeds %d", length, uint32(math.MaxUint32))
	}
	prefix := VarintLen(uint32(length))
	w, err := c.window(errors.PhaseEncode, typ, uint64(prefix)+uint64(len(payload)))
	if err != nil {
		return err
	}
	AppendVarint(w[:0], uint32(length))
	copy(w[prefix:], payload)
	c.pos += len(w)
	return nil
}

// peekVarBlob reads a varint length, checks it against maxLen, and returns
// the payload window plus the total encoded size without advancing.
// payloadSize maps the declared length to a payload byte count.
func (c *Cursor) peekVarBlob(typ string, maxLen int, payloadSize func(uint32) uint64) ([]byte, int, error) {
	declared, prefix, err := c.peekVarint(typ)
	if err != nil {
		return nil, 0, err
	}
	if exceeds(uint64(declared), maxLen) {
		return nil, 0, c.constraint(errors.PhaseDecode, typ, declared, "length %d exceeds %d", declared, maxLen)
	}
	size := payloadSize(declared)
	payload, err := c.windowAt(errors.PhaseDecode, typ, prefix, size)
	if err != nil {
		return nil, 0, err
	}
	return payload, prefix + int(size), nil
}
