// ABOUTME: Linux bubblewrap isolation: read-only root, writable project dirs
// ABOUTME: Cached functionality probe plus a fail-fast startup availability check

package sandbox

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mauromedda/pi-agent-core/internal/log"
)

var (
	// ErrSandboxNotFound means the bwrap binary is not installed.
	ErrSandboxNotFound = errors.New("sandbox binary (bwrap) not found on PATH; install bubblewrap or set the dangerously-skip-sandbox flag")
	// ErrSandboxUnavailable means bwrap exists but a minimal isolated
	// invocation failed, commonly under restrictive namespace policies.
	ErrSandboxUnavailable = errors.New("sandbox probe failed; bwrap is installed but cannot create namespaces here; fix namespace permissions or set the dangerously-skip-sandbox flag")
)

const probeTimeout = 5 * time.Second

// probeState caches the probe outcome for the process lifetime.
type probeState struct {
	err error
}

var (
	probeGroup  singleflight.Group
	probeResult atomic.Pointer[probeState]
)

// Probe runs a minimal isolated invocation once per process and caches the
// outcome. Concurrent first calls are deduplicated.
func Probe(ctx context.Context) error {
	if cached := probeResult.Load(); cached != nil {
		return cached.err
	}

	v, _, _ := probeGroup.Do("bwrap", func() (any, error) {
		state := &probeState{err: runProbe(ctx)}
		probeResult.Store(state)
		return state, nil
	})
	return v.(*probeState).err
}

// runProbe executes `bwrap --ro-bind / / --unshare-net -- /bin/true`.
func runProbe(ctx context.Context) error {
	if _, err := exec.LookPath("bwrap"); err != nil {
		return ErrSandboxNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bwrap", "--ro-bind", "/", "/", "--unshare-net", "--", "/bin/true")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %v (output: %s)", ErrSandboxUnavailable, err, out)
	}
	return nil
}

// EnsureAvailable is the fail-fast startup check: it returns an error unless
// the sandbox is functional or the operator explicitly opted out. Running
// without isolation must be a deliberate posture change, never an accident.
func EnsureAvailable(ctx context.Context, cfg *Config) error {
	if cfg.SkipSandbox {
		log.Warn("sandbox disabled via dangerously-skip-sandbox; commands run unisolated")
		return nil
	}
	return Probe(ctx)
}

// WrapCommand wraps cmd in a bwrap invocation that mounts the entire
// filesystem read-only, remounts the project root, /tmp, and any allowed
// paths writable, provides fresh /dev and /proc, ties the sandboxed tree to
// its parent's lifetime, and unshares the network namespace unless allowed.
// With SkipSandbox set the command is returned unchanged.
func WrapCommand(ctx context.Context, cmd *exec.Cmd, cfg *Config) *exec.Cmd {
	if cfg.SkipSandbox {
		log.Debug("sandbox skipped for command %q", cmd.Path)
		return cmd
	}

	args := buildBwrapArgs(cfg)
	args = append(args, cmd.Path)
	args = append(args, cmd.Args[1:]...)

	wrapped := exec.CommandContext(ctx, "bwrap", args...)
	wrapped.Dir = cmd.Dir
	wrapped.Env = cmd.Env
	wrapped.Stdin = cmd.Stdin
	wrapped.Stdout = cmd.Stdout
	wrapped.Stderr = cmd.Stderr
	return wrapped
}

// buildBwrapArgs generates the isolation arguments for a config.
func buildBwrapArgs(cfg *Config) []string {
	args := []string{
		"--ro-bind", "/", "/",
		"--dev", "/dev",
		"--proc", "/proc",
		"--bind", "/tmp", "/tmp",
		"--die-with-parent",
	}

	if cfg.ProjectRoot != "" {
		args = append(args, "--bind", cfg.ProjectRoot, cfg.ProjectRoot)
	}
	for _, dir := range cfg.AllowedPaths {
		args = append(args, "--bind", dir, dir)
	}

	if !cfg.AllowNetwork {
		args = append(args, "--unshare-net")
	}

	args = append(args, "--")
	return args
}
