package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/wippyai/axdr/sequence"
)

// JSONSchema describes the schema Document format as JSON Schema, for
// editor completion and validation of schema files.
func JSONSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}

	s := reflector.Reflect(&Document{})
	s.Version = "https://json-schema.org/draft/2020-12/schema"
	s.Title = "A-XDR record schema"
	s.Description = "Field layout of an A-XDR record"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("generate json schema: %w", err)
	}
	return data, nil
}

// JSONSchemaExtend restricts type to the declared kind names.
func (Field) JSONSchemaExtend(s *jsonschema.Schema) {
	if s.Properties == nil {
		return
	}
	prop, ok := s.Properties.Get("type")
	if !ok {
		return
	}
	for _, k := range sequence.Kinds() {
		prop.Enum = append(prop.Enum, k.String())
	}
}
