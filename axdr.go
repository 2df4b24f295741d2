package axdr

import (
	stderrors "errors"

	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/errors"
	"github.com/wippyai/axdr/sequence"
)

const (
	initialBufferSize = 256

	// MaxMarshalSize bounds the buffer Marshal grows to.
	MaxMarshalSize = 16 << 20
)

// Marshal encodes rec against s into a new byte slice. The scratch buffer
// doubles on overflow up to MaxMarshalSize.
func Marshal(s *sequence.Schema, rec sequence.Record) ([]byte, error) {
	return MarshalLimit(s, rec, MaxMarshalSize)
}

// MarshalLimit is Marshal with the buffer capped at limit bytes. A record
// whose encoding needs more than limit fails with an overflow error.
func MarshalLimit(s *sequence.Schema, rec sequence.Record, limit int) ([]byte, error) {
	size := min(initialBufferSize, limit)
	for {
		buf := make([]byte, size)
		n, err := MarshalTo(buf, s, rec)
		if err == nil {
			return buf[:n], nil
		}
		if !stderrors.Is(err, codec.ErrOverflow) || size >= limit {
			return nil, err
		}
		size = min(size*2, limit)
	}
}

// MarshalTo encodes rec into buf and returns the number of bytes written.
// On failure buf holds a partial encoding and must be discarded.
func MarshalTo(buf []byte, s *sequence.Schema, rec sequence.Record) (int, error) {
	c := codec.AcquireCursor(buf)
	defer c.Release()
	if err := s.Encode(c, rec); err != nil {
		return 0, err
	}
	return c.Position(), nil
}

// Unmarshal decodes a single record from data. Bytes left after the record
// are an error.
func Unmarshal(s *sequence.Schema, data []byte) (sequence.Record, error) {
	c := codec.AcquireCursor(data)
	defer c.Release()
	rec, err := s.Decode(c)
	if err != nil {
		return nil, err
	}
	if rest := c.Remaining(); rest > 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidValue).
			Position(c.Position()).
			Value(rest).
			Detail("%d trailing bytes after record", rest).
			Build()
	}
	return rec, nil
}
