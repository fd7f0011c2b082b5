// ABOUTME: Parameter extraction and output truncation helpers for tools
// ABOUTME: Tolerates JSON numeric widening (float64 for ints)

package tools

import (
	"fmt"
)

const maxToolOutput = 64 * 1024

// requireStringParam extracts a mandatory string parameter.
func requireStringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

// intParam extracts an optional integer parameter with a default. JSON
// decoding yields float64 for numbers, so both are accepted.
func intParam(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

// truncateOutput caps s at maxToolOutput bytes with a trailing marker.
func truncateOutput(s string) string {
	if len(s) <= maxToolOutput {
		return s
	}
	return s[:maxToolOutput] + fmt.Sprintf("\n... (output truncated at %d bytes)", maxToolOutput)
}
