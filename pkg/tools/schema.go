package tools

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// schemaFor reflects the JSON Schema of the tool input struct T into the
// object form both model APIs accept.
func schemaFor[T any]() map[string]any {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	var zero T
	s := r.Reflect(&zero)

	properties := map[string]any{}
	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			properties[pair.Key] = propertySchema(pair.Value)
		}
	}

	out := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(s.Required) > 0 {
		out["required"] = append([]string(nil), s.Required...)
	}
	return out
}

func propertySchema(s *jsonschema.Schema) map[string]any {
	b, err := json.Marshal(s)
	if err != nil {
		return map[string]any{}
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return m
}
