// ABOUTME: Bash tool: executes shell commands inside the bwrap sandbox
// ABOUTME: Captures combined stdout+stderr; caps output; configurable timeout

package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/mauromedda/pi-agent-core/internal/sandbox"
	"github.com/mauromedda/pi-agent-core/internal/types"
)

const (
	defaultBashTimeoutMs = 120_000
	maxBashOutput        = 10 * 1024 * 1024 // 10MB
)

var errOutputLimitExceeded = errors.New("output limit exceeded")

// limitedWriter stops accepting data after limit bytes and reports the
// overflow with errOutputLimitExceeded.
type limitedWriter struct {
	w        io.Writer
	limit    int
	written  int
	exceeded bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	remaining := lw.limit - lw.written
	if remaining <= 0 {
		lw.exceeded = true
		return 0, errOutputLimitExceeded
	}
	if len(p) > remaining {
		n, err := lw.w.Write(p[:remaining])
		lw.written += n
		lw.exceeded = true
		if err != nil {
			return n, err
		}
		return n, errOutputLimitExceeded
	}
	n, err := lw.w.Write(p)
	lw.written += n
	return n, err
}

// newBashTool creates a tool that executes shell commands. With a sandbox
// config, commands run inside the bwrap envelope.
func newBashTool(sb *sandbox.Config) *types.AgentTool {
	return &types.AgentTool{
		Name:        "bash",
		Description: "Execute a shell command via /bin/bash -c inside the sandbox. Captures stdout and stderr.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"required": ["command"],
			"properties": {
				"command":    {"type": "string", "description": "Shell command to execute"},
				"timeout_ms": {"type": "integer", "description": "Timeout in milliseconds (default 120000)"}
			}
		}`),
		ReadOnly:           false,
		RequiresPermission: true,
		Execute: func(ctx context.Context, params map[string]any) (string, error) {
			return executeBash(ctx, sb, params)
		},
	}
}

func executeBash(ctx context.Context, sb *sandbox.Config, params map[string]any) (string, error) {
	command, err := requireStringParam(params, "command")
	if err != nil {
		return "", err
	}

	timeoutMs := intParam(params, "timeout_ms", defaultBashTimeoutMs)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, "/bin/bash", "-c", command)
	if sb != nil {
		cmd = sandbox.WrapCommand(ctx, cmd, sb)
	}

	var buf bytes.Buffer
	limited := &limitedWriter{w: &buf, limit: maxBashOutput}
	cmd.Stdout = limited
	cmd.Stderr = limited

	runErr := cmd.Run()

	output := strings.TrimSpace(buf.String())
	if limited.exceeded {
		output += "\n... (output limit exceeded)"
	}

	if ctx.Err() != nil {
		return "", fmt.Errorf("command timed out after %dms", timeoutMs)
	}
	// Hitting the output cap is not a command failure: the process itself
	// exited 0 and the truncated output carries the limit marker.
	if runErr != nil && errors.Is(runErr, errOutputLimitExceeded) {
		runErr = nil
	}
	if runErr != nil {
		if output == "" {
			return "", fmt.Errorf("command failed: %w", runErr)
		}
		return "", fmt.Errorf("command failed: %w\n%s", runErr, output)
	}

	return output, nil
}
