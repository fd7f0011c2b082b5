// ABOUTME: Ls tool: lists directory entries after sandbox path validation
// ABOUTME: Directories are suffixed with a separator for quick scanning

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mauromedda/pi-agent-core/internal/sandbox"
	"github.com/mauromedda/pi-agent-core/internal/types"
)

func newLsTool(sb *sandbox.Config) *types.AgentTool {
	return &types.AgentTool{
		Name:        "ls",
		Description: "List the entries of a directory. Paths must stay inside the project root or allowed directories.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"required": ["path"],
			"properties": {
				"path": {"type": "string", "description": "Directory to list"}
			}
		}`),
		ReadOnly: true,
		Execute: func(ctx context.Context, params map[string]any) (string, error) {
			path, err := requireStringParam(params, "path")
			if err != nil {
				return "", err
			}
			if sb != nil {
				if err := sb.ValidatePath(path, false); err != nil {
					return "", err
				}
			}
			entries, err := os.ReadDir(path)
			if err != nil {
				return "", fmt.Errorf("listing %s: %w", path, err)
			}
			var out strings.Builder
			for _, e := range entries {
				out.WriteString(e.Name())
				if e.IsDir() {
					out.WriteByte('/')
				}
				out.WriteByte('\n')
			}
			return truncateOutput(out.String()), nil
		},
	}
}
