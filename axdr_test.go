package axdr_test

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/axdr"
	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/sequence"
)

func blobSchema() *sequence.Schema {
	return &sequence.Schema{Name: "blob", Fields: []sequence.Descriptor{
		{Name: "id", Kind: sequence.KindInteger},
		{Name: "data", Kind: sequence.KindVarOctetString},
	}}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := blobSchema()
	data, err := axdr.Marshal(s, sequence.Record{"id": 7, "data": []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{0, 0, 0, 7, 3, 1, 2, 3}
	if !bytes.Equal(data, want) {
		t.Errorf("wire = %x, want %x", data, want)
	}

	rec, err := axdr.Unmarshal(s, data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if rec["id"] != int32(7) || !bytes.Equal(rec["data"].([]byte), []byte{1, 2, 3}) {
		t.Errorf("decoded %v", rec)
	}
}

func TestMarshalGrowsBuffer(t *testing.T) {
	s := blobSchema()
	payload := bytes.Repeat([]byte{0xAB}, 5000)
	data, err := axdr.Marshal(s, sequence.Record{"id": 1, "data": payload})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := len(data), 4+codec.VarintLen(5000)+5000; got != want {
		t.Errorf("len = %d, want %d", got, want)
	}
}

func TestMarshalLimit(t *testing.T) {
	s := blobSchema()
	rec := sequence.Record{"id": 1, "data": bytes.Repeat([]byte{0xAB}, 600)}
	size := 4 + codec.VarintLen(600) + 600

	data, err := axdr.MarshalLimit(s, rec, size)
	if err != nil {
		t.Fatalf("MarshalLimit at exact size: %v", err)
	}
	if len(data) != size {
		t.Errorf("len = %d, want %d", len(data), size)
	}

	if _, err := axdr.MarshalLimit(s, rec, size-1); !stderrors.Is(err, codec.ErrOverflow) {
		t.Errorf("err = %v, want overflow", err)
	}

	small, err := axdr.MarshalLimit(s, sequence.Record{"id": 2, "data": []byte{9}}, 8)
	if err != nil || !bytes.Equal(small, []byte{0, 0, 0, 2, 1, 9}) {
		t.Errorf("MarshalLimit under limit = %x, %v", small, err)
	}
}

func TestMarshalToOverflow(t *testing.T) {
	_, err := axdr.MarshalTo(make([]byte, 2), blobSchema(), sequence.Record{"id": 1, "data": []byte{}})
	if !stderrors.Is(err, codec.ErrOverflow) {
		t.Errorf("err = %v, want overflow", err)
	}
}

func TestMarshalKeepsNonOverflowErrors(t *testing.T) {
	_, err := axdr.Marshal(blobSchema(), sequence.Record{"id": "seven", "data": []byte{}})
	if err == nil || stderrors.Is(err, codec.ErrOverflow) {
		t.Errorf("err = %v, want type mismatch", err)
	}
}

func TestUnmarshalTrailingBytes(t *testing.T) {
	_, err := axdr.Unmarshal(blobSchema(), []byte{0, 0, 0, 1, 0, 0xFF})
	if !stderrors.Is(err, codec.ErrInvalidValue) {
		t.Fatalf("err = %v, want invalid value", err)
	}
	if !strings.Contains(err.Error(), "1 trailing bytes") {
		t.Errorf("err = %v", err)
	}
}
