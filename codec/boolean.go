package codec

import (
	"github.com/wippyai/axdr/errors"
)

const (
	wireTrue  = 0xFF
	wireFalse = 0x00
)

// EncodeBoolean writes 0xFF for true and 0x00 for false.
func (c *Cursor) EncodeBoolean(v bool) error {
	w, err := c.window(errors.PhaseEncode, typeBoolean, 1)
	if err != nil {
		return err
	}
	if v {
		w[0] = wireTrue
	} else {
		w[0] = wireFalse
	}
	c.pos++
	return nil
}

// DecodeBoolean reads one byte; any nonzero value is true.
func (c *Cursor) DecodeBoolean() (bool, error) {
	w, err := c.window(errors.PhaseDecode, typeBoolean, 1)
	if err != nil {
		return false, err
	}
	c.pos++
	return w[0] != wireFalse, nil
}

// EncodeNull writes nothing. It exists so a null field has an encoder like
// every other kind.
func (c *Cursor) EncodeNull() error {
	return nil
}

// DecodeNull reads nothing.
func (c *Cursor) DecodeNull() error {
	return nil
}
