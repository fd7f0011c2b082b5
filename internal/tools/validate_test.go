// ABOUTME: Tests for schema compilation and soft unknown-parameter warnings
// ABOUTME: additionalProperties=true suppresses the warnings entirely

package tools

import (
	"encoding/json"
	"testing"
)

func TestUnknownParamWarnings(t *testing.T) {
	t.Parallel()

	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"a": {"type": "string"}}
	}`)

	warnings := unknownParamWarnings(schema, map[string]any{"a": "x", "b": 1, "c": 2})
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want two entries", warnings)
	}

	open := json.RawMessage(`{
		"type": "object",
		"properties": {"a": {"type": "string"}},
		"additionalProperties": true
	}`)
	if got := unknownParamWarnings(open, map[string]any{"b": 1}); got != nil {
		t.Errorf("open schema should not warn, got %v", got)
	}
}

func TestCompileSchema_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := compileSchema("bad", json.RawMessage(`{"type": 42}`)); err == nil {
		t.Error("invalid schema should fail to compile")
	}
	if schema, err := compileSchema("none", nil); err != nil || schema != nil {
		t.Errorf("empty schema should compile to nil, got %v, %v", schema, err)
	}
}

func TestValidateInput_IntegersSurviveNormalization(t *testing.T) {
	t.Parallel()

	schema, err := compileSchema("n", json.RawMessage(`{
		"type": "object",
		"properties": {"count": {"type": "integer"}}
	}`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	// Go ints become float64 through JSON; integer-valued floats must pass.
	if _, err := validateInput(schema, nil, map[string]any{"count": 3}); err != nil {
		t.Errorf("integer input rejected: %v", err)
	}
	if _, err := validateInput(schema, nil, map[string]any{"count": "three"}); err == nil {
		t.Error("type mismatch should fail")
	}
}
