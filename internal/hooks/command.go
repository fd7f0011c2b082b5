// ABOUTME: Command hook executor: runs a shell command with a PI_* environment
// ABOUTME: Exit 0 continues; non-zero blocks with the best available message

package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// commandExecutor runs hook payloads as shell commands.
type commandExecutor struct{}

func (commandExecutor) run(ctx context.Context, def Definition, hctx *Context) (Result, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", def.Command)
	cmd.Dir = hctx.Cwd
	cmd.Env = overlayEnv(os.Environ(), hctx.EnvVars())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	setProcGroup(cmd)
	cmd.Cancel = func() error {
		return killProcGroup(cmd)
	}

	runErr := cmd.Run()
	if runErr == nil {
		return Continue(), nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		// Could not start at all: a defect, not a policy decision.
		return Result{}, fmt.Errorf("hook %q: running command: %w", def.Name, runErr)
	}

	return Block(blockMessage(def, exitErr.ExitCode(), stderr.String(), stdout.String())), nil
}

// blockMessage picks the block reason: configured message, then stderr,
// then stdout, then a generic fallback naming the exit code.
func blockMessage(def Definition, code int, stderr, stdout string) string {
	if def.Message != "" {
		return def.Message
	}
	if s := strings.TrimSpace(stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(stdout); s != "" {
		return s
	}
	return fmt.Sprintf("%s blocked (exit %d)", def.Name, code)
}

// overlayEnv appends KEY=VALUE pairs onto a base environment.
func overlayEnv(base []string, extra map[string]string) []string {
	env := make([]string, len(base), len(base)+len(extra))
	copy(env, base)
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}
