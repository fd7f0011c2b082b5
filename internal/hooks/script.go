// ABOUTME: Script hook executor: feeds the context as JSON on stdin
// ABOUTME: Non-zero exit or malformed output is a defect, never a policy block

package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrScriptNotFound marks a hook whose script payload does not exist.
	ErrScriptNotFound = errors.New("hook script not found")
	// ErrBadHookOutput marks script stdout that is not a valid hook result.
	ErrBadHookOutput = errors.New("malformed hook output")
)

// scriptExecutor runs hook payloads as executable scripts with a JSON
// stdin/stdout contract.
type scriptExecutor struct {
	projectRoot string
}

func (s scriptExecutor) run(ctx context.Context, def Definition, hctx *Context) (Result, error) {
	script := def.Script
	if !filepath.IsAbs(script) {
		script = filepath.Join(s.projectRoot, script)
	}
	if _, err := os.Stat(script); err != nil {
		return Result{}, fmt.Errorf("hook %q: %w: %s", def.Name, ErrScriptNotFound, script)
	}

	input, err := json.Marshal(hctx)
	if err != nil {
		return Result{}, fmt.Errorf("hook %q: marshal context: %w", def.Name, err)
	}

	cmd := exec.CommandContext(ctx, script)
	cmd.Dir = hctx.Cwd
	cmd.Stdin = bytes.NewReader(input)
	cmd.Env = overlayEnv(os.Environ(), hctx.EnvVars())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	setProcGroup(cmd)
	cmd.Cancel = func() error {
		return killProcGroup(cmd)
	}

	if err := cmd.Run(); err != nil {
		// A broken script is a defect, not a block decision.
		return Result{}, fmt.Errorf("hook %q: script failed: %w (stderr: %s)",
			def.Name, err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return Continue(), nil
	}

	var res Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		return Result{}, fmt.Errorf("hook %q: %w: %v (raw: %q)", def.Name, ErrBadHookOutput, err, out)
	}
	if res.Action == "" {
		res.Action = ActionContinue
	}
	return res, nil
}
