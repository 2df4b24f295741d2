package sequence_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/wippyai/axdr/codec"
	axdrerrors "github.com/wippyai/axdr/errors"
	"github.com/wippyai/axdr/sequence"
)

func TestTaggedEndToEnd(t *testing.T) {
	var (
		id     int32 = 12345
		active       = true
		name         = "Test Name"
	)
	buf := make([]byte, 64)
	c := codec.NewCursor(buf)

	params := []sequence.Param{
		{Value: &id, Kind: sequence.KindInteger},
		{Value: &active, Kind: sequence.KindBoolean},
		{Value: &name, Kind: sequence.KindVisibleString},
	}
	if err := sequence.EncodeTagged(c, params, sequence.StandardEncoder); err != nil {
		t.Fatalf("EncodeTagged: %v", err)
	}
	want := append([]byte{0x00, 0x00, 0x30, 0x39, 0xFF, 0x00, 0x00, 0x00, 0x09}, "Test Name"...)
	if !bytes.Equal(c.Bytes(), want) {
		t.Errorf("wire = %x, want %x", c.Bytes(), want)
	}

	var (
		gotID     int32
		gotActive bool
		gotName   string
	)
	c.Reset()
	out := []sequence.Param{
		{Value: &gotID, Kind: sequence.KindInteger},
		{Value: &gotActive, Kind: sequence.KindBoolean},
		{Value: &gotName, Kind: sequence.KindVisibleString},
	}
	if err := sequence.DecodeTagged(c, out, sequence.StandardDecoder); err != nil {
		t.Fatalf("DecodeTagged: %v", err)
	}
	if gotID != 12345 || !gotActive || gotName != "Test Name" {
		t.Errorf("decoded (%d, %v, %q)", gotID, gotActive, gotName)
	}
}

func TestTaggedAllKinds(t *testing.T) {
	var (
		i   int32 = -42
		u   uint32 = 42
		b         = false
		e         = 3
		bs        = codec.BitString{Bytes: []byte{0xC0}, Len: 2}
		os        = []byte{9, 8, 7}
		vs        = "visible"
		gt        = time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
		n         = struct{}{}
		vi  int32 = -1
		vu  uint32 = 1 << 20
		vos       = []byte{1}
		vvs       = "v"
		vbs       = codec.BitString{Bytes: []byte{0x80}, Len: 1}
	)
	in := []sequence.Param{
		{Value: &i, Kind: sequence.KindInteger},
		{Value: &u, Kind: sequence.KindUnsigned},
		{Value: &b, Kind: sequence.KindBoolean},
		{Value: &e, Kind: sequence.KindEnum},
		{Value: &bs, Kind: sequence.KindBitString},
		{Value: &os, Kind: sequence.KindOctetString},
		{Value: &vs, Kind: sequence.KindVisibleString},
		{Value: &gt, Kind: sequence.KindGeneralizedTime},
		{Value: &n, Kind: sequence.KindNull},
		{Value: &vi, Kind: sequence.KindVarint},
		{Value: &vu, Kind: sequence.KindVarUnsigned},
		{Value: &vos, Kind: sequence.KindVarOctetString},
		{Value: &vvs, Kind: sequence.KindVarVisibleString},
		{Value: &vbs, Kind: sequence.KindVarBitString},
	}
	c := codec.NewCursor(make([]byte, 256))
	if err := sequence.EncodeTagged(c, in, sequence.StandardEncoder); err != nil {
		t.Fatalf("EncodeTagged: %v", err)
	}
	end := c.Position()

	var (
		gi   int32
		gu   uint32
		gb   = true
		ge   int
		gbs  codec.BitString
		gos  []byte
		gvs  string
		ggt  time.Time
		gn   struct{}
		gvi  int32
		gvu  uint32
		gvos []byte
		gvvs string
		gvbs codec.BitString
	)
	out := []sequence.Param{
		{Value: &gi, Kind: sequence.KindInteger},
		{Value: &gu, Kind: sequence.KindUnsigned},
		{Value: &gb, Kind: sequence.KindBoolean},
		{Value: &ge, Kind: sequence.KindEnum},
		{Value: &gbs, Kind: sequence.KindBitString},
		{Value: &gos, Kind: sequence.KindOctetString},
		{Value: &gvs, Kind: sequence.KindVisibleString},
		{Value: &ggt, Kind: sequence.KindGeneralizedTime},
		{Value: &gn, Kind: sequence.KindNull},
		{Value: &gvi, Kind: sequence.KindVarint},
		{Value: &gvu, Kind: sequence.KindVarUnsigned},
		{Value: &gvos, Kind: sequence.KindVarOctetString},
		{Value: &gvvs, Kind: sequence.KindVarVisibleString},
		{Value: &gvbs, Kind: sequence.KindVarBitString},
	}
	c.Reset()
	if err := sequence.DecodeTagged(c, out, sequence.StandardDecoder); err != nil {
		t.Fatalf("DecodeTagged: %v", err)
	}
	if c.Position() != end {
		t.Errorf("decoded %d bytes, encoded %d", c.Position(), end)
	}
	if gi != i || gu != u || gb != b || ge != e || gvi != vi || gvu != vu {
		t.Errorf("integers = %d %d %v %d %d %d", gi, gu, gb, ge, gvi, gvu)
	}
	if gbs.String() != "11" || gvbs.String() != "1" {
		t.Errorf("bits = %s %s", gbs, gvbs)
	}
	if !bytes.Equal(gos, os) || !bytes.Equal(gvos, vos) || gvs != vs || gvvs != vvs {
		t.Errorf("strings = %x %x %q %q", gos, gvos, gvs, gvvs)
	}
	if !ggt.Equal(gt) {
		t.Errorf("time = %v, want %v", ggt, gt)
	}
}

func TestTaggedUnknownKind(t *testing.T) {
	var v int32
	c := codec.NewCursor(make([]byte, 8))
	params := []sequence.Param{{Value: &v, Kind: sequence.Kind(200)}}

	err := sequence.EncodeTagged(c, params, sequence.StandardEncoder)
	if !errors.Is(err, codec.ErrInvalidType) {
		t.Fatalf("EncodeTagged err = %v, want invalid type", err)
	}
	if err := sequence.DecodeTagged(c, params, sequence.StandardDecoder); !errors.Is(err, codec.ErrInvalidType) {
		t.Fatalf("DecodeTagged err = %v, want invalid type", err)
	}
	if c.Position() != 0 {
		t.Errorf("Position() = %d, want 0", c.Position())
	}

	// Sequence kinds are not primitives and the standard dispatchers reject them.
	params[0].Kind = sequence.KindSequence
	if err := sequence.EncodeTagged(c, params, sequence.StandardEncoder); !errors.Is(err, codec.ErrInvalidType) {
		t.Errorf("sequence kind err = %v, want invalid type", err)
	}
}

func TestTaggedNilReferences(t *testing.T) {
	var v int32
	var nilPtr *int32
	c := codec.NewCursor(make([]byte, 8))

	tests := []struct {
		name     string
		cursor   *codec.Cursor
		params   []sequence.Param
		dispatch sequence.Dispatcher
	}{
		{"nil cursor", nil, []sequence.Param{{Value: &v}}, sequence.StandardEncoder},
		{"nil dispatcher", c, []sequence.Param{{Value: &v}}, nil},
		{"nil value", c, []sequence.Param{{Value: nil, Kind: sequence.KindInteger}}, sequence.StandardEncoder},
		{"typed nil pointer", c, []sequence.Param{{Value: nilPtr, Kind: sequence.KindInteger}}, sequence.StandardEncoder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sequence.EncodeTagged(tt.cursor, tt.params, tt.dispatch)
			if !errors.Is(err, codec.ErrInvalidValue) {
				t.Errorf("err = %v, want invalid value", err)
			}
		})
	}
	if c.Position() != 0 {
		t.Errorf("Position() = %d, want 0", c.Position())
	}
}

func TestTaggedTypeMismatch(t *testing.T) {
	s := "not an int"
	c := codec.NewCursor(make([]byte, 8))
	err := sequence.EncodeTagged(c, []sequence.Param{{Value: &s, Kind: sequence.KindInteger}}, sequence.StandardEncoder)
	var ae *axdrerrors.Error
	if !errors.As(err, &ae) || ae.Kind != axdrerrors.KindTypeMismatch {
		t.Fatalf("err = %v, want type mismatch", err)
	}
}

func TestTaggedShortCircuit(t *testing.T) {
	var calls int
	var a, b, c3 int32
	dispatch := func(c *codec.Cursor, value any, kind sequence.Kind) error {
		calls++
		if calls == 2 {
			return codec.ErrOverflow
		}
		return sequence.StandardEncoder(c, value, kind)
	}
	c := codec.NewCursor(make([]byte, 16))
	params := []sequence.Param{
		{Value: &a, Kind: sequence.KindInteger},
		{Value: &b, Kind: sequence.KindInteger},
		{Value: &c3, Kind: sequence.KindInteger},
	}
	if err := sequence.EncodeTagged(c, params, dispatch); err != codec.ErrOverflow {
		t.Fatalf("err = %v, want the dispatcher's error unchanged", err)
	}
	if calls != 2 {
		t.Errorf("dispatcher called %d times, want 2", calls)
	}
}
