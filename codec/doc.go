// Package codec implements the A-XDR primitive encodings on top of a
// position-tracking cursor over a caller-owned byte slice.
//
// A-XDR is not self-describing: both ends agree on field order, types and
// framing out of band. The cursor only knows how to write and read the
// individual values:
//
//	Type               Wire form
//	─────────────────────────────────────────────────────────────
//	integer/unsigned   4 bytes big-endian (two's complement if signed)
//	enum               integer constrained to [0, count-1]
//	boolean            1 byte, 0xFF true / 0x00 false
//	octet string       4-byte length + bytes
//	bit string         4-byte bit count + ceil(bits/8) bytes
//	visible string     octet string, length checked against max
//	generalized time   visible string "YYYYMMDDHHMMSS" (UTC)
//	null               nothing
//	varint             1-5 base-128 groups, low group first
//	var* strings       varint length + payload
//
// # Failure Model
//
// Every operation validates constraints and remaining space before it
// touches the buffer. A failed call returns a *errors.Error, records it as
// the cursor's last error and leaves the position where it was, so no
// partially written or partially consumed value is ever committed.
//
// Use errors.Is with ErrOverflow, ErrConstraint, ErrInvalidValue or
// ErrInvalidType to classify failures.
//
// # Usage
//
//	buf := make([]byte, 64)
//	c := codec.NewCursor(buf)
//	if err := c.EncodeInteger(12345, math.MinInt32, math.MaxInt32); err != nil {
//	    return err
//	}
//	if err := c.EncodeVisibleString("Test Name", 32); err != nil {
//	    return err
//	}
//
//	c.Reset()
//	id, _ := c.DecodeInteger(math.MinInt32, math.MaxInt32)
//	name, _ := c.DecodeVisibleString(32)
//
// A Cursor is not safe for concurrent use.
package codec
