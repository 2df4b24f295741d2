package sequence

import (
	"strconv"

	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/errors"
)

// SequenceOf is a counted homogeneous array. Elements is caller-owned
// storage sized for at least MaxCount elements; only the first Count are
// live. Count never exceeds MaxCount.
type SequenceOf[T any] struct {
	Elements []T
	Count    int
	MaxCount uint32
}

// Live returns the elements currently in use.
func (s *SequenceOf[T]) Live() []T {
	return s.Elements[:s.Count]
}

// ElementCodec encodes or decodes one element in place.
type ElementCodec[T any] func(c *codec.Cursor, elem *T) error

// EncodeSequenceOf writes the count followed by each live element.
func EncodeSequenceOf[T any](c *codec.Cursor, s *SequenceOf[T], encode ElementCodec[T]) error {
	const phase = errors.PhaseEncode
	if err := checkSequenceOf(phase, c, s, encode); err != nil {
		return err
	}
	if s.Count > len(s.Elements) {
		return errors.New(phase, errors.KindInvalidValue).
			Type(KindSequenceOf.String()).
			Detail("count %d exceeds storage of %d elements", s.Count, len(s.Elements)).
			Build()
	}
	if err := c.EncodeCount(s.Count, s.MaxCount); err != nil {
		return err
	}
	for i := 0; i < s.Count; i++ {
		if err := encode(c, &s.Elements[i]); err != nil {
			logFieldFailure("encode", strconv.Itoa(i), i, c, err)
			return err
		}
	}
	return nil
}

// DecodeSequenceOf reads the count, rejects it when above MaxCount, then
// decodes each element into the existing storage. Count is assigned only
// once the decoded count is accepted; the storage is never reallocated.
func DecodeSequenceOf[T any](c *codec.Cursor, s *SequenceOf[T], decode ElementCodec[T]) error {
	const phase = errors.PhaseDecode
	if err := checkSequenceOf(phase, c, s, decode); err != nil {
		return err
	}
	if uint64(len(s.Elements)) < uint64(s.MaxCount) {
		return errors.New(phase, errors.KindInvalidValue).
			Type(KindSequenceOf.String()).
			Detail("storage holds %d elements, max count is %d", len(s.Elements), s.MaxCount).
			Build()
	}
	n, err := c.DecodeCount(s.MaxCount)
	if err != nil {
		return err
	}
	s.Count = n
	for i := 0; i < n; i++ {
		if err := decode(c, &s.Elements[i]); err != nil {
			logFieldFailure("decode", strconv.Itoa(i), i, c, err)
			return err
		}
	}
	return nil
}

func checkSequenceOf[T any](phase errors.Phase, c *codec.Cursor, s *SequenceOf[T], fn ElementCodec[T]) error {
	switch {
	case c == nil:
		return errors.NilReference(phase, nil, "cursor")
	case s == nil:
		return errors.NilReference(phase, nil, "sequence-of")
	case fn == nil:
		return errors.NilReference(phase, nil, "element codec")
	}
	return nil
}
