package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format names a document syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json" // JSON with comments and trailing commas
	FormatCBOR Format = "cbor" // output only
)

// ParseFormat resolves a format name, accepting common aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// FormatFromPath picks an input format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%s: no file extension to infer format from", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if f == FormatCBOR {
		return "", fmt.Errorf("%s: cbor is an output format", path)
	}
	return f, nil
}

// unmarshal decodes a document in the given input format into v.
func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatTOML:
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
		return err
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatJSON:
		return json.Unmarshal(jsonc.ToJSON(data), v)
	default:
		return fmt.Errorf("cannot read %s documents", format)
	}
}
