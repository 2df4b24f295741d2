package codec

import (
	"time"

	"github.com/wippyai/axdr/errors"
)

// GeneralizedTimeLayout is the wire layout of a generalized time value.
const GeneralizedTimeLayout = "20060102150405"

// GeneralizedTimeLen is the exact length of a generalized time string.
const GeneralizedTimeLen = len(GeneralizedTimeLayout)

// EncodeVisibleString writes s as an octet string. The byte length of s is
// checked against maxLen before anything is framed.
func (c *Cursor) EncodeVisibleString(s string, maxLen int) error {
	return c.encodeText(typeVisibleString, s, maxLen)
}

// DecodeVisibleString reads a length-prefixed string of at most maxLen bytes.
func (c *Cursor) DecodeVisibleString(maxLen int) (string, error) {
	s, n, err := c.peekText(typeVisibleString, maxLen)
	if err != nil {
		return "", err
	}
	c.pos += n
	return s, nil
}

// EncodeGeneralizedTime writes t, converted to UTC and truncated to whole
// seconds, as the 14-character visible string YYYYMMDDHHMMSS.
func (c *Cursor) EncodeGeneralizedTime(t time.Time) error {
	return c.encodeText(typeGeneralizedTime, t.UTC().Format(GeneralizedTimeLayout), GeneralizedTimeLen)
}

// DecodeGeneralizedTime reads a YYYYMMDDHHMMSS visible string as a UTC time.
// Content that is not exactly 14 decimal digits is an invalid value and is
// left unconsumed.
func (c *Cursor) DecodeGeneralizedTime() (time.Time, error) {
	s, n, err := c.peekText(typeGeneralizedTime, GeneralizedTimeLen)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := parseGeneralizedTime(s)
	if !ok {
		return time.Time{}, c.invalid(errors.PhaseDecode, typeGeneralizedTime, "%q is not YYYYMMDDHHMMSS", s)
	}
	c.pos += n
	return t, nil
}

func (c *Cursor) encodeText(typ, s string, maxLen int) error {
	if exceeds(uint64(len(s)), maxLen) {
		return c.constraint(errors.PhaseEncode, typ, len(s), "length %d exceeds %d", len(s), maxLen)
	}
	return c.encodeFixedBlob(typ, uint64(len(s)), []byte(s))
}

// peekText reads a length-prefixed string without advancing and returns it
// with the total number of bytes it occupies.
func (c *Cursor) peekText(typ string, maxLen int) (string, int, error) {
	n, err := c.peekFixedLength(typ)
	if err != nil {
		return "", 0, err
	}
	if exceeds(uint64(n), maxLen) {
		return "", 0, c.constraint(errors.PhaseDecode, typ, n, "length %d exceeds %d", n, maxLen)
	}
	payload, err := c.windowAt(errors.PhaseDecode, typ, lengthPrefixSize, uint64(n))
	if err != nil {
		return "", 0, err
	}
	return string(payload), lengthPrefixSize + int(n), nil
}

var generalizedTimeWidths = [6]int{4, 2, 2, 2, 2, 2}

func parseGeneralizedTime(s string) (time.Time, bool) {
	if len(s) != GeneralizedTimeLen {
		return time.Time{}, false
	}
	var parts [6]int
	off := 0
	for i, width := range generalizedTimeWidths {
		n := 0
		for _, ch := range []byte(s[off : off+width]) {
			if ch < '0' || ch > '9' {
				return time.Time{}, false
			}
			n = n*10 + int(ch-'0')
		}
		parts[i] = n
		off += width
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, time.UTC), true
}
