// ABOUTME: Hook context passed from the dispatcher to hook executors
// ABOUTME: Derives env-var and nested-map views, recomputed fresh per call

package hooks

import (
	"encoding/json"
)

// envPrefix namespaces the environment variables exposed to command hooks.
const envPrefix = "PI_"

// Context carries the data a hook may inspect for one dispatch.
// Optional fields are zero-valued when not applicable to the event.
type Context struct {
	Event      Event          `json:"event"`
	SessionID  string         `json:"session_id,omitempty"`
	Cwd        string         `json:"cwd,omitempty"`
	Tool       string         `json:"tool,omitempty"`
	ToolInput  map[string]any `json:"tool_input,omitempty"`
	ToolResult map[string]any `json:"tool_result,omitempty"`
	Message    string         `json:"message,omitempty"`
	Response   string         `json:"response,omitempty"`
}

// EnvVars returns the flat PI_* environment mapping for command hooks.
// Map-valued fields are serialized to JSON. A fresh map is built per call.
func (c *Context) EnvVars() map[string]string {
	env := map[string]string{
		envPrefix + "EVENT":      string(c.Event),
		envPrefix + "SESSION_ID": c.SessionID,
		envPrefix + "CWD":        c.Cwd,
		envPrefix + "TOOL_NAME":  c.Tool,
	}
	if c.ToolInput != nil {
		env[envPrefix+"TOOL_INPUT"] = marshalCompact(c.ToolInput)
	}
	if c.ToolResult != nil {
		env[envPrefix+"TOOL_RESULT"] = marshalCompact(c.ToolResult)
	}
	if c.Message != "" {
		env[envPrefix+"MESSAGE"] = c.Message
	}
	if c.Response != "" {
		env[envPrefix+"RESPONSE"] = c.Response
	}
	return env
}

// AsMap returns the nested map view used by matchers and prompt templates.
// A fresh map is built per call; callers may mutate it freely.
func (c *Context) AsMap() map[string]any {
	m := map[string]any{
		"event":      string(c.Event),
		"session_id": c.SessionID,
		"cwd":        c.Cwd,
	}
	if c.Tool != "" {
		m["tool"] = c.Tool
	}
	if c.ToolInput != nil {
		m["tool_input"] = c.ToolInput
	}
	if c.ToolResult != nil {
		m["tool_result"] = c.ToolResult
	}
	if c.Message != "" {
		m["message"] = c.Message
	}
	if c.Response != "" {
		m["response"] = c.Response
	}
	return m
}

// marshalCompact renders v as compact JSON, or an empty string on failure.
func marshalCompact(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
