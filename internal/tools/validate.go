// ABOUTME: Tool input validation against declared JSON schemas
// ABOUTME: Hard schema violations fail; unknown parameters only warn

package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compileSchema compiles a tool's declared parameter schema once.
func compileSchema(toolName string, raw json.RawMessage) (*jsonschema.Schema, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	compiler := jsonschema.NewCompiler()
	url := toolName + ".schema.json"
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("tool %q: adding schema: %w", toolName, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("tool %q: compiling schema: %w", toolName, err)
	}
	return schema, nil
}

// validateInput checks input against the compiled schema. It returns a hard
// error for schema violations and a list of soft warnings for parameters the
// schema does not declare.
func validateInput(schema *jsonschema.Schema, raw json.RawMessage, input map[string]any) (warnings []string, err error) {
	if schema == nil {
		return nil, nil
	}
	if err := schema.Validate(normalizeJSON(input)); err != nil {
		return nil, fmt.Errorf("input validation: %w", err)
	}
	return unknownParamWarnings(raw, input), nil
}

// unknownParamWarnings flags input keys absent from the schema's declared
// properties, unless the schema explicitly allows additional properties.
func unknownParamWarnings(raw json.RawMessage, input map[string]any) []string {
	var shape struct {
		Properties           map[string]json.RawMessage `json:"properties"`
		AdditionalProperties any                        `json:"additionalProperties"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil || shape.Properties == nil {
		return nil
	}
	if allowed, ok := shape.AdditionalProperties.(bool); ok && allowed {
		return nil
	}

	var warnings []string
	for key := range input {
		if _, declared := shape.Properties[key]; !declared {
			warnings = append(warnings, fmt.Sprintf("unknown parameter %q ignored", key))
		}
	}
	sort.Strings(warnings)
	return warnings
}

// normalizeJSON round-trips a value through encoding/json so schema
// validation sees the same types a decoded request would carry.
func normalizeJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}
