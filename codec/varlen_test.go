package codec_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wippyai/axdr/codec"
)

func TestVarOctetString(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		prefix []byte
	}{
		{"empty", []byte{}, []byte{0x00}},
		{"short", []byte{1, 2, 3}, []byte{0x03}},
		{"two byte prefix", bytes.Repeat([]byte{0xAB}, 200), []byte{0xC8, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := codec.NewCursor(make([]byte, 256))
			if err := c.EncodeVarOctetString(tt.data); err != nil {
				t.Fatalf("encode: %v", err)
			}
			want := append(append([]byte{}, tt.prefix...), tt.data...)
			if !bytes.Equal(c.Bytes(), want) {
				t.Errorf("encode: got %x, want %x", c.Bytes(), want)
			}
			c.Reset()
			got, err := c.DecodeVarOctetString(len(tt.data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("decode: got %x, want %x", got, tt.data)
			}
			if c.Position() != len(want) {
				t.Errorf("Position() = %d, want %d", c.Position(), len(want))
			}
		})
	}
}

func TestVarVisibleString(t *testing.T) {
	const s = "hello可变串"
	c := codec.NewCursor(make([]byte, 64))
	if err := c.EncodeVarVisibleString(s, 31); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if c.Bytes()[0] != byte(len(s)) || c.Position() != 1+len(s) {
		t.Errorf("encode: got %x", c.Bytes())
	}
	c.Reset()
	got, err := c.DecodeVarVisibleString(31)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != s {
		t.Errorf("decode: got %q, want %q", got, s)
	}
}

func TestVarVisibleStringConstraint(t *testing.T) {
	long := strings.Repeat("x", 32)
	buf := make([]byte, 64)
	c := codec.NewCursor(buf)
	if err := c.EncodeVarVisibleString(long, 31); !errors.Is(err, codec.ErrConstraint) {
		t.Fatalf("encode err = %v, want constraint", err)
	}
	if c.Position() != 0 || !bytes.Equal(buf, make([]byte, 64)) {
		t.Errorf("partial write: Position=%d", c.Position())
	}

	if err := c.EncodeVarVisibleString(long, 32); err != nil {
		t.Fatalf("encode: %v", err)
	}
	c.Reset()
	if _, err := c.DecodeVarVisibleString(31); !errors.Is(err, codec.ErrConstraint) {
		t.Fatalf("decode err = %v, want constraint", err)
	}
	if c.Position() != 0 {
		t.Errorf("Position() = %d, want 0", c.Position())
	}
}

func TestVarBitString(t *testing.T) {
	c := codec.NewCursor(make([]byte, 16))
	in := codec.BitString{Bytes: []byte{0xAA, 0x0F}, Len: 12}
	if err := c.EncodeVarBitString(in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := []byte{0x0C, 0xAA, 0x0F}
	if !bytes.Equal(c.Bytes(), want) {
		t.Errorf("encode: got %x, want %x", c.Bytes(), want)
	}

	c.Reset()
	got, err := c.DecodeVarBitString(16)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Len != 12 || !bytes.Equal(got.Bytes, []byte{0xAA, 0x0F}) {
		t.Errorf("decode: got %d bits %x", got.Len, got.Bytes)
	}

	c.Reset()
	if _, err := c.DecodeVarBitString(11); !errors.Is(err, codec.ErrConstraint) {
		t.Errorf("decode err = %v, want constraint", err)
	}
	if c.Position() != 0 {
		t.Errorf("Position() = %d, want 0", c.Position())
	}
}

func TestVarBitStringTooFewBytes(t *testing.T) {
	c := codec.NewCursor(make([]byte, 16))
	err := c.EncodeVarBitString(codec.BitString{Bytes: []byte{0xFF}, Len: 12})
	if !errors.Is(err, codec.ErrInvalidValue) {
		t.Fatalf("err = %v, want invalid value", err)
	}
}

func TestVarLengthOverflow(t *testing.T) {
	t.Run("encode", func(t *testing.T) {
		buf := make([]byte, 3)
		c := codec.NewCursor(buf)
		if err := c.EncodeVarOctetString([]byte{1, 2, 3}); !errors.Is(err, codec.ErrOverflow) {
			t.Fatalf("err = %v, want overflow", err)
		}
		if c.Position() != 0 || !bytes.Equal(buf, []byte{0, 0, 0}) {
			t.Errorf("partial write: Position=%d buf=%x", c.Position(), buf)
		}
	})

	t.Run("decode payload past end", func(t *testing.T) {
		c := codec.NewCursor([]byte{0x05, 1, 2})
		if _, err := c.DecodeVarOctetString(16); !errors.Is(err, codec.ErrOverflow) {
			t.Fatalf("err = %v, want overflow", err)
		}
		if c.Position() != 0 {
			t.Errorf("Position() = %d, want 0", c.Position())
		}
	})

	t.Run("constraint checked before overflow", func(t *testing.T) {
		c := codec.NewCursor([]byte{0x05, 1, 2})
		if _, err := c.DecodeVarOctetString(4); !errors.Is(err, codec.ErrConstraint) {
			t.Fatalf("err = %v, want constraint", err)
		}
	})

	t.Run("malformed prefix", func(t *testing.T) {
		c := codec.NewCursor([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01})
		if _, err := c.DecodeVarOctetString(16); !errors.Is(err, codec.ErrInvalidValue) {
			t.Fatalf("err = %v, want invalid value", err)
		}
	})
}
