package schema_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/axdr/codec"
	axdrerrors "github.com/wippyai/axdr/errors"
	"github.com/wippyai/axdr/schema"
	"github.com/wippyai/axdr/sequence"
)

const meterTOML = `
name = "meter"

[[fields]]
name = "id"
type = "integer"
min = 0
max = 99999

[[fields]]
name = "active"
type = "boolean"

[[fields]]
name = "name"
type = "visible-string"
max_length = 32

[[fields]]
name = "readings"
type = "sequence-of"
max_count = 4

[fields.elem]
type = "unsigned"
max = 1000
`

const meterYAML = `
name: meter
fields:
  - {name: id, type: integer, min: 0, max: 99999}
  - {name: active, type: boolean}
  - {name: name, type: visible-string, max_length: 32}
  - name: readings
    type: sequence-of
    max_count: 4
    elem: {type: unsigned, max: 1000}
`

const meterJSONC = `{
  // same schema with comments
  "name": "meter",
  "fields": [
    {"name": "id", "type": "integer", "min": 0, "max": 99999},
    {"name": "active", "type": "boolean"},
    {"name": "name", "type": "visible_string", "max_length": 32},
    {"name": "readings", "type": "sequence-of", "max_count": 4,
     "elem": {"type": "unsigned", "max": 1000}}, /* trailing comma */
  ],
}`

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format schema.Format
	}{
		{"toml", meterTOML, schema.FormatTOML},
		{"yaml", meterYAML, schema.FormatYAML},
		{"jsonc", meterJSONC, schema.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)

			assert.Equal(t, "meter", s.Name)
			require.Len(t, s.Fields, 4)
			assert.Equal(t, sequence.KindInteger, s.Fields[0].Kind)
			require.NotNil(t, s.Fields[0].Range)
			assert.Equal(t, sequence.Range{Min: 0, Max: 99999}, *s.Fields[0].Range)
			assert.Equal(t, sequence.KindVisibleString, s.Fields[2].Kind)
			assert.Equal(t, 32, s.Fields[2].MaxLength)

			readings := s.Fields[3]
			assert.Equal(t, sequence.KindSequenceOf, readings.Kind)
			assert.Equal(t, uint32(4), readings.MaxCount)
			require.NotNil(t, readings.Elem)
			assert.Equal(t, "item", readings.Elem.Name)
			assert.Equal(t, sequence.Range{Min: 0, Max: 1000}, *readings.Elem.Range)
		})
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no fields", "name: empty\n"},
		{"missing name", "fields: [{type: boolean}]\n"},
		{"unknown type", "fields: [{name: a, type: float}]\n"},
		{"sequence-of without elem", "fields: [{name: a, type: sequence-of, max_count: 2}]\n"},
		{"sequence-of without max_count", "fields: [{name: a, type: sequence-of, elem: {type: boolean}}]\n"},
		{"aliased sequence-of without max_count", "fields: [{name: a, type: sequence_of, elem: {type: boolean}}]\n"},
		{"negative max length", "fields: [{name: a, type: visible-string, max_length: -1}]\n"},
		{"enum without count", "fields: [{name: a, type: enum}]\n"},
		{"duplicate names", "fields: [{name: a, type: boolean}, {name: a, type: boolean}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Parse([]byte(tt.yaml), schema.FormatYAML)
			require.Error(t, err)

			var ae *axdrerrors.Error
			require.True(t, errors.As(err, &ae), "error %v is not structured", err)
			assert.Equal(t, axdrerrors.PhaseSchema, ae.Phase)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := schema.Parse([]byte("fields = ["), schema.FormatTOML)
	require.Error(t, err)

	var ae *axdrerrors.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, axdrerrors.PhaseLoad, ae.Phase)
	assert.NotNil(t, ae.Cause)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meter.toml")
	require.NoError(t, os.WriteFile(path, []byte(meterTOML), 0o600))

	s, err := schema.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "meter", s.Name)

	_, err = schema.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = schema.Load(filepath.Join(dir, "meter.txt"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]schema.Format{
		"a.toml":  schema.FormatTOML,
		"a.yml":   schema.FormatYAML,
		"a.YAML":  schema.FormatYAML,
		"a.json":  schema.FormatJSON,
		"a.jsonc": schema.FormatJSON,
	}
	for path, want := range tests {
		got, err := schema.FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	for _, bad := range []string{"a", "a.xml", "a.cbor"} {
		_, err := schema.FormatFromPath(bad)
		assert.Error(t, err, bad)
	}
}

func TestBuildRecordAndEncode(t *testing.T) {
	s, err := schema.Parse([]byte(meterYAML), schema.FormatYAML)
	require.NoError(t, err)

	values, err := schema.ParseValues([]byte(`
id = 12345
active = true
name = "Test Name"
readings = [1, 2, 3]
`), schema.FormatTOML)
	require.NoError(t, err)

	rec, err := schema.BuildRecord(s, values)
	require.NoError(t, err)

	c := codec.NewCursor(make([]byte, 128))
	require.NoError(t, s.Encode(c, rec))

	c.Reset()
	got, err := s.Decode(c)
	require.NoError(t, err)
	assert.Equal(t, int32(12345), got["id"])
	assert.Equal(t, true, got["active"])
	assert.Equal(t, "Test Name", got["name"])
	assert.Equal(t, []any{uint32(1), uint32(2), uint32(3)}, got["readings"])
}

func TestBuildRecordRejectsUnknownFields(t *testing.T) {
	s, err := schema.Parse([]byte(meterYAML), schema.FormatYAML)
	require.NoError(t, err)

	_, err = schema.BuildRecord(s, map[string]any{"id": 1, "colour": "red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")

	_, err = schema.BuildRecord(s, map[string]any{"readings": "not a list"})
	var ae *axdrerrors.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, axdrerrors.KindTypeMismatch, ae.Kind)
	assert.Equal(t, []string{"readings"}, ae.Path)
}

func TestBuildRecordNested(t *testing.T) {
	s := &sequence.Schema{Fields: []sequence.Descriptor{
		{Name: "points", Kind: sequence.KindSequenceOf, MaxCount: 2, Elem: &sequence.Descriptor{
			Name: "item",
			Kind: sequence.KindSequence,
			Fields: []sequence.Descriptor{
				{Name: "x", Kind: sequence.KindInteger},
			},
		}},
	}}
	values, err := schema.ParseValues([]byte(`{"points": [{"x": 1}, {"x": 2, "y": 3}]}`), schema.FormatJSON)
	require.NoError(t, err)

	_, err = schema.BuildRecord(s, values)
	var ae *axdrerrors.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, []string{"points", "[1]"}, ae.Path)
}
