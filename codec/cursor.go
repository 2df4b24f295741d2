package codec

import (
	"fmt"
	"math"

	"github.com/wippyai/axdr/errors"
)

// Type names reported in errors.
const (
	typeInteger          = "integer"
	typeUnsigned         = "unsigned"
	typeBoolean          = "boolean"
	typeEnum             = "enum"
	typeBitString        = "bit-string"
	typeOctetString      = "octet-string"
	typeVisibleString    = "visible-string"
	typeGeneralizedTime  = "generalized-time"
	typeVarint           = "varint"
	typeVarOctetString   = "var-octet-string"
	typeVarVisibleString = "var-visible-string"
	typeVarBitString     = "var-bit-string"
)

// Cursor tracks a read/write position inside a borrowed byte slice.
// The slice must outlive the cursor and must not be modified by anyone
// else while codec calls are in progress.
type Cursor struct {
	err error
	buf []byte
	pos int
}

// NewCursor binds a cursor to buf, positioned at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Position returns the current byte offset.
func (c *Cursor) Position() int {
	return c.pos
}

// Len returns the capacity of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of bytes between the position and the end of the buffer.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Bytes returns the bytes before the current position, i.e. everything
// written so far in an encode pass. The result aliases the buffer.
func (c *Cursor) Bytes() []byte {
	return c.buf[:c.pos]
}

// Err returns the error recorded by the most recent failed operation, or nil.
func (c *Cursor) Err() error {
	return c.err
}

// Reset rewinds the cursor to offset 0 and clears the recorded error, so
// the same buffer can be decoded right after it was encoded.
func (c *Cursor) Reset() {
	c.pos = 0
	c.err = nil
}

// fail records err as the last error and returns it.
func (c *Cursor) fail(err *errors.Error) error {
	err.Position = c.pos
	c.err = err
	return err
}

// window returns the n bytes starting at the current position without
// advancing. It fails with an overflow error when fewer than n remain.
func (c *Cursor) window(phase errors.Phase, typ string, n uint64) ([]byte, error) {
	have := c.Remaining()
	if n > uint64(have) {
		need := math.MaxInt
		if n < uint64(math.MaxInt) {
			need = int(n)
		}
		err := errors.Overflow(phase, nil, need, have)
		err.Type = typ
		return nil, c.fail(err)
	}
	return c.buf[c.pos : c.pos+int(n)], nil
}

// windowAt is window for a region starting skip bytes past the position.
func (c *Cursor) windowAt(phase errors.Phase, typ string, skip int, n uint64) ([]byte, error) {
	w, err := c.window(phase, typ, uint64(skip)+n)
	if err != nil {
		return nil, err
	}
	return w[skip:], nil
}

func (c *Cursor) constraint(phase errors.Phase, typ string, value any, detail string, args ...any) error {
	err := errors.Constraint(phase, nil, value, sprintf(detail, args))
	err.Type = typ
	return c.fail(err)
}

func (c *Cursor) invalid(phase errors.Phase, typ string, detail string, args ...any) error {
	err := errors.InvalidValue(phase, nil, sprintf(detail, args))
	err.Type = typ
	return c.fail(err)
}

// LengthConstraint records a length bound violation checked outside the
// codec, such as a schema max length on a fixed string, at the current
// position.
func (c *Cursor) LengthConstraint(phase errors.Phase, typ string, n uint64, max int) error {
	return c.constraint(phase, typ, n, "length %d exceeds %d", n, max)
}

func sprintf(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// exceeds reports whether n is above a caller-supplied int bound.
// A negative bound admits nothing.
func exceeds(n uint64, limit int) bool {
	return limit < 0 || n > uint64(limit)
}
