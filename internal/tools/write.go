// ABOUTME: Write tool: creates or overwrites a file after write validation
// ABOUTME: Parent directories are created inside the validated location

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mauromedda/pi-agent-core/internal/sandbox"
	"github.com/mauromedda/pi-agent-core/internal/types"
)

func newWriteTool(sb *sandbox.Config) *types.AgentTool {
	return &types.AgentTool{
		Name:        "write",
		Description: "Write content to a file, creating it if needed. Paths must stay inside the project root or allowed directories.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"required": ["file_path", "content"],
			"properties": {
				"file_path": {"type": "string", "description": "Path of the file to write"},
				"content":   {"type": "string", "description": "Full file content"}
			}
		}`),
		ReadOnly:           false,
		RequiresPermission: true,
		Execute: func(ctx context.Context, params map[string]any) (string, error) {
			path, err := requireStringParam(params, "file_path")
			if err != nil {
				return "", err
			}
			content, ok := params["content"].(string)
			if !ok {
				return "", fmt.Errorf("parameter %q must be a string", "content")
			}
			if sb != nil {
				if err := sb.ValidatePath(path, true); err != nil {
					return "", err
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return "", fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return "", fmt.Errorf("writing %s: %w", path, err)
			}
			return fmt.Sprintf("wrote %d bytes to %s", len(content), path), nil
		},
	}
}
