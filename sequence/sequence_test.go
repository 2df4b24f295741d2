package sequence_test

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wippyai/axdr/codec"
	axdrerrors "github.com/wippyai/axdr/errors"
	"github.com/wippyai/axdr/sequence"
)

func TestPositionalRoundTrip(t *testing.T) {
	var (
		id      int32 = 12345
		active        = true
		name          = "Test Name"
		status        = 2
		serial        = []byte{0xDE, 0xAD}
		flags         = codec.BitString{Bytes: []byte{0xA0}, Len: 3}
		stamp         = time.Date(2024, 3, 15, 13, 45, 30, 0, time.UTC)
		delta   int32 = -5
		counter uint32 = 300
		label         = "lbl"
	)

	buf := make([]byte, 128)
	c := codec.NewCursor(buf)
	fields := []sequence.Field{
		{Name: "id", Codec: sequence.Integer(&id, math.MinInt32, math.MaxInt32)},
		{Name: "active", Codec: sequence.Boolean(&active)},
		{Name: "name", Codec: sequence.Text(&name, 32)},
		{Name: "status", Codec: sequence.Enum(&status, 4)},
		{Name: "serial", Codec: sequence.Octets(&serial)},
		{Name: "flags", Codec: sequence.Bits(&flags)},
		{Name: "stamp", Codec: sequence.Time(&stamp)},
		{Name: "none", Codec: sequence.Null()},
		{Name: "delta", Codec: sequence.Varint(&delta)},
		{Name: "counter", Codec: sequence.VarUnsigned(&counter)},
		{Name: "label", Codec: sequence.VarText(&label, 8)},
	}
	if err := sequence.Encode(c, fields); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	end := c.Position()

	var (
		gotID      int32
		gotActive  bool
		gotName    string
		gotStatus  int
		gotSerial  []byte
		gotFlags   codec.BitString
		gotStamp   time.Time
		gotDelta   int32
		gotCounter uint32
		gotLabel   string
	)
	c.Reset()
	out := []sequence.Field{
		{Name: "id", Codec: sequence.Integer(&gotID, math.MinInt32, math.MaxInt32)},
		{Name: "active", Codec: sequence.Boolean(&gotActive)},
		{Name: "name", Codec: sequence.Text(&gotName, 32)},
		{Name: "status", Codec: sequence.Enum(&gotStatus, 4)},
		{Name: "serial", Codec: sequence.Octets(&gotSerial)},
		{Name: "flags", Codec: sequence.Bits(&gotFlags)},
		{Name: "stamp", Codec: sequence.Time(&gotStamp)},
		{Name: "none", Codec: sequence.Null()},
		{Name: "delta", Codec: sequence.Varint(&gotDelta)},
		{Name: "counter", Codec: sequence.VarUnsigned(&gotCounter)},
		{Name: "label", Codec: sequence.VarText(&gotLabel, 8)},
	}
	if err := sequence.Decode(c, out); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if gotID != id || gotActive != active || gotName != name || gotStatus != status {
		t.Errorf("scalars = %d %v %q %d", gotID, gotActive, gotName, gotStatus)
	}
	if !bytes.Equal(gotSerial, serial) || gotFlags.String() != "101" || !gotStamp.Equal(stamp) {
		t.Errorf("blobs = %x %s %v", gotSerial, gotFlags, gotStamp)
	}
	if gotDelta != delta || gotCounter != counter || gotLabel != label {
		t.Errorf("varints = %d %d %q", gotDelta, gotCounter, gotLabel)
	}
	if c.Position() != end {
		t.Errorf("decode consumed %d bytes, encode wrote %d", c.Position(), end)
	}
}

func TestPositionalShortCircuit(t *testing.T) {
	var calls [3]int
	stub := func(i int, fail bool) sequence.FieldCodec {
		fn := func(*codec.Cursor) error {
			calls[i]++
			if fail {
				return codec.ErrConstraint
			}
			return nil
		}
		return sequence.Func(fn, fn)
	}

	fields := []sequence.Field{
		{Name: "a", Codec: stub(0, false)},
		{Name: "b", Codec: stub(1, true)},
		{Name: "c", Codec: stub(2, false)},
	}
	c := codec.NewCursor(make([]byte, 8))

	if err := sequence.Encode(c, fields); err != codec.ErrConstraint {
		t.Fatalf("Encode err = %v, want the failing field's error unchanged", err)
	}
	if calls != [3]int{1, 1, 0} {
		t.Errorf("encode calls = %v, want [1 1 0]", calls)
	}

	calls = [3]int{}
	if err := sequence.Decode(c, fields); err != codec.ErrConstraint {
		t.Fatalf("Decode err = %v", err)
	}
	if calls != [3]int{1, 1, 0} {
		t.Errorf("decode calls = %v, want [1 1 0]", calls)
	}
}

func TestPositionalPartialWriteStays(t *testing.T) {
	var a, b int32 = 1, 50
	buf := make([]byte, 16)
	c := codec.NewCursor(buf)
	err := sequence.Encode(c, []sequence.Field{
		{Name: "a", Codec: sequence.Integer(&a, 0, 10)},
		{Name: "b", Codec: sequence.Integer(&b, 0, 10)},
	})
	if !errors.Is(err, codec.ErrConstraint) {
		t.Fatalf("err = %v, want constraint", err)
	}
	if c.Position() != 4 || !bytes.Equal(buf[:4], []byte{0, 0, 0, 1}) {
		t.Errorf("first field should stay written: Position=%d buf=%x", c.Position(), buf[:4])
	}
}

func TestPositionalNilReferences(t *testing.T) {
	var v int32
	tests := []struct {
		name   string
		cursor *codec.Cursor
		fields []sequence.Field
	}{
		{"nil cursor", nil, []sequence.Field{{Name: "v", Codec: sequence.Integer(&v, 0, 1)}}},
		{"nil codec", codec.NewCursor(make([]byte, 4)), []sequence.Field{{Name: "v"}}},
		{"nil storage", codec.NewCursor(make([]byte, 4)), []sequence.Field{{Name: "v", Codec: sequence.Integer(nil, 0, 1)}}},
		{"nil function", codec.NewCursor(make([]byte, 4)), []sequence.Field{{Name: "v", Codec: sequence.Func(nil, nil)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sequence.Encode(tt.cursor, tt.fields); !errors.Is(err, codec.ErrInvalidValue) {
				t.Errorf("Encode err = %v, want invalid value", err)
			}
			if err := sequence.Decode(tt.cursor, tt.fields); !errors.Is(err, codec.ErrInvalidValue) {
				t.Errorf("Decode err = %v, want invalid value", err)
			}
			if tt.cursor != nil && tt.cursor.Position() != 0 {
				t.Errorf("Position() = %d, want 0", tt.cursor.Position())
			}
		})
	}
}

func TestPositionalEmpty(t *testing.T) {
	c := codec.NewCursor(nil)
	if err := sequence.Encode(c, nil); err != nil {
		t.Errorf("Encode(nil fields) = %v", err)
	}
	if err := sequence.Decode(c, []sequence.Field{}); err != nil {
		t.Errorf("Decode(empty fields) = %v", err)
	}
}

func TestNested(t *testing.T) {
	var x, y int32 = 7, -7
	var ok = true
	c := codec.NewCursor(make([]byte, 16))
	inner := []sequence.Field{
		{Name: "x", Codec: sequence.Integer(&x, math.MinInt32, math.MaxInt32)},
		{Name: "y", Codec: sequence.Integer(&y, math.MinInt32, math.MaxInt32)},
	}
	outer := []sequence.Field{
		{Name: "point", Codec: sequence.Nested(inner)},
		{Name: "ok", Codec: sequence.Boolean(&ok)},
	}
	if err := sequence.Encode(c, outer); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0, 0, 0, 7, 0xFF, 0xFF, 0xFF, 0xF9, 0xFF}
	if !bytes.Equal(c.Bytes(), want) {
		t.Errorf("wire = %x, want %x", c.Bytes(), want)
	}
}

func TestVarFieldEncodeBounds(t *testing.T) {
	data := []byte{1, 2, 3}
	bits := codec.BitString{Bytes: []byte{0xFF, 0xF0}, Len: 12}
	c := codec.NewCursor(make([]byte, 16))

	if err := sequence.VarOctets(&data, 2).EncodeField(c); !errors.Is(err, codec.ErrConstraint) {
		t.Errorf("VarOctets err = %v, want constraint", err)
	}
	if err := sequence.VarBits(&bits, 11).EncodeField(c); !errors.Is(err, codec.ErrConstraint) {
		t.Errorf("VarBits err = %v, want constraint", err)
	}
	if c.Position() != 0 {
		t.Errorf("Position() = %d, want 0", c.Position())
	}
	if err := sequence.VarOctets(&data, 3).EncodeField(c); err != nil {
		t.Errorf("VarOctets at bound: %v", err)
	}
	if err := sequence.VarBits(&bits, 12).EncodeField(c); err != nil {
		t.Errorf("VarBits at bound: %v", err)
	}
}

func TestVarFieldLengthErrorIsRecorded(t *testing.T) {
	data := []byte{1, 2, 3}
	c := codec.NewCursor(make([]byte, 16))
	if err := c.EncodeBoolean(true); err != nil {
		t.Fatalf("EncodeBoolean: %v", err)
	}

	err := sequence.VarOctets(&data, 2).EncodeField(c)
	if c.Err() != err {
		t.Errorf("Err() = %v, want %v", c.Err(), err)
	}
	var ae *axdrerrors.Error
	if !errors.As(err, &ae) {
		t.Fatalf("err %T is not structured", err)
	}
	if ae.Phase != axdrerrors.PhaseEncode || ae.Kind != axdrerrors.KindConstraint || ae.Position != 1 {
		t.Errorf("err = %v, want [encode] constraint at offset 1", err)
	}
	if ae.Type != "var-octet-string" {
		t.Errorf("Type = %q", ae.Type)
	}
}
