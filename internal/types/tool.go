// ABOUTME: Shared tool types decoupled from the executor package
// ABOUTME: Defines the tool contract, call requests, and execution results

package types

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

// ToolResult holds the outcome of a single tool execution.
// Error is only meaningful when Success is false.
type ToolResult struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error,omitempty"`
}

// OK builds a successful result.
func OK(output string) ToolResult {
	return ToolResult{Success: true, Output: output}
}

// Fail builds an error result from a message.
func Fail(msg string) ToolResult {
	return ToolResult{Success: false, Error: msg}
}

// ToolCallRequest is one model-issued action.
type ToolCallRequest struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Input map[string]any `json:"input"`
}

// NewToolCallRequest builds a request, assigning a fresh ID when the model
// did not supply one.
func NewToolCallRequest(id, name string, input map[string]any) ToolCallRequest {
	if id == "" {
		id = uuid.NewString()
	}
	return ToolCallRequest{ID: id, Name: name, Input: input}
}

// AgentTool defines a named, schema-described capability the model can invoke.
type AgentTool struct {
	Name               string
	Description        string
	Parameters         json.RawMessage // JSON schema for Input
	ReadOnly           bool
	RequiresPermission bool
	Execute            func(ctx context.Context, input map[string]any) (string, error)
}
