package codec

import (
	"encoding/binary"

	"github.com/wippyai/axdr/errors"
)

const typeSequenceOf = "sequence-of"

// EncodeCount writes a sequence-of element count as an unsigned integer
// constrained by maxCount.
func (c *Cursor) EncodeCount(count int, maxCount uint32) error {
	if count < 0 || uint64(count) > uint64(maxCount) {
		return c.constraint(errors.PhaseEncode, typeSequenceOf, count, "count %d exceeds max %d", count, maxCount)
	}
	return c.EncodeUnsigned(uint32(count), maxCount)
}

// DecodeCount reads a sequence-of element count. The count is read over the
// full unsigned range and then checked against maxCount separately, so an
// oversized count is reported as a sequence-of constraint and is not consumed.
func (c *Cursor) DecodeCount(maxCount uint32) (int, error) {
	w, err := c.window(errors.PhaseDecode, typeSequenceOf, 4)
	if err != nil {
		return 0, err
	}
	n := binary.BigEndian.Uint32(w)
	if n > maxCount {
		return 0, c.constraint(errors.PhaseDecode, typeSequenceOf, n, "count %d exceeds max %d", n, maxCount)
	}
	c.pos += 4
	return int(n), nil
}
