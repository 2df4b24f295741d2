package sequence

import (
	"github.com/wippyai/axdr/codec"
	"github.com/wippyai/axdr/errors"
)

// Encode writes fields in order. The first failing field stops the
// traversal and its error is returned unchanged. Bytes written by earlier
// fields stay in the buffer; the caller discards the region on failure.
func Encode(c *codec.Cursor, fields []Field) error {
	if c == nil {
		return errors.NilReference(errors.PhaseEncode, nil, "cursor")
	}
	for i := range fields {
		f := &fields[i]
		if f.Codec == nil {
			err := errors.NilReference(errors.PhaseEncode, fieldPath(f.Name), "field codec")
			logFieldFailure("encode", f.Name, i, c, err)
			return err
		}
		if err := f.Codec.EncodeField(c); err != nil {
			logFieldFailure("encode", f.Name, i, c, err)
			return err
		}
	}
	return nil
}

// Decode reads fields in order into the storage their codecs reference,
// stopping at the first failure.
func Decode(c *codec.Cursor, fields []Field) error {
	if c == nil {
		return errors.NilReference(errors.PhaseDecode, nil, "cursor")
	}
	for i := range fields {
		f := &fields[i]
		if f.Codec == nil {
			err := errors.NilReference(errors.PhaseDecode, fieldPath(f.Name), "field codec")
			logFieldFailure("decode", f.Name, i, c, err)
			return err
		}
		if err := f.Codec.DecodeField(c); err != nil {
			logFieldFailure("decode", f.Name, i, c, err)
			return err
		}
	}
	return nil
}

func fieldPath(name string) []string {
	if name == "" {
		return nil
	}
	return []string{name}
}
