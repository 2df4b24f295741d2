package sequence

import (
	"encoding/hex"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/wippyai/axdr/codec"
)

// The Coerce helpers convert loosely typed values, as produced by JSON,
// YAML or TOML decoders, into the Go types a schema kind expects.

// CoerceInt64 handles decoded numbers (float64, int64) and the sized integer types.
func CoerceInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < math.MaxInt64 && v == math.Trunc(v) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= math.MinInt64 && f < math.MaxInt64 && f == math.Trunc(f) {
			return int64(f), true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 0, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func CoerceInt32(value any) (int32, bool) {
	n, ok := CoerceInt64(value)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

func CoerceUint32(value any) (uint32, bool) {
	n, ok := CoerceInt64(value)
	if !ok || n < 0 || n > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

func CoerceInt(value any) (int, bool) {
	n, ok := CoerceInt64(value)
	if !ok || n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

func CoerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	}
	return false, false
}

func CoerceString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	}
	return "", false
}

// CoerceBytes accepts a byte slice, a hex string with optional 0x prefix,
// or a list of numbers in [0, 255].
func CoerceBytes(value any) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		s := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(v), "0x"), "0X")
		s = strings.ReplaceAll(s, " ", "")
		b, err := hex.DecodeString(s)
		return b, err == nil
	case []any:
		out := make([]byte, len(v))
		for i, e := range v {
			n, ok := CoerceInt64(e)
			if !ok || n < 0 || n > math.MaxUint8 {
				return nil, false
			}
			out[i] = byte(n)
		}
		return out, true
	}
	return nil, false
}

// CoerceBitString accepts a BitString or a string of '0' and '1' characters.
func CoerceBitString(value any) (codec.BitString, bool) {
	switch v := value.(type) {
	case codec.BitString:
		return v, true
	case *codec.BitString:
		if v != nil {
			return *v, true
		}
	case string:
		b, err := codec.ParseBitString(v)
		return b, err == nil
	}
	return codec.BitString{}, false
}

// CoerceTime accepts a time.Time, a YYYYMMDDHHMMSS string or an RFC 3339 string.
func CoerceTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if t, err := time.ParseInLocation(codec.GeneralizedTimeLayout, s, time.UTC); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoerceRecord accepts a Record or a map keyed by field name.
func CoerceRecord(value any) (Record, bool) {
	switch v := value.(type) {
	case Record:
		return v, true
	case map[string]any:
		return Record(v), true
	case map[any]any:
		out := make(Record, len(v))
		for k, e := range v {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = e
		}
		return out, true
	}
	return nil, false
}

// CoerceList accepts any slice or array and returns its elements.
func CoerceList(value any) ([]any, bool) {
	if v, ok := value.([]any); ok {
		return v, true
	}
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
