// ABOUTME: Read tool: returns file contents after sandbox path validation
// ABOUTME: Output is capped; binary-unsafe bytes are passed through as-is

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mauromedda/pi-agent-core/internal/sandbox"
	"github.com/mauromedda/pi-agent-core/internal/types"
)

func newReadTool(sb *sandbox.Config) *types.AgentTool {
	return &types.AgentTool{
		Name:        "read",
		Description: "Read a file from the filesystem. Paths must stay inside the project root or allowed directories.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"required": ["file_path"],
			"properties": {
				"file_path": {"type": "string", "description": "Path of the file to read"}
			}
		}`),
		ReadOnly: true,
		Execute: func(ctx context.Context, params map[string]any) (string, error) {
			path, err := requireStringParam(params, "file_path")
			if err != nil {
				return "", err
			}
			if sb != nil {
				if err := sb.ValidatePath(path, false); err != nil {
					return "", err
				}
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("reading %s: %w", path, err)
			}
			return truncateOutput(string(data)), nil
		},
	}
}
