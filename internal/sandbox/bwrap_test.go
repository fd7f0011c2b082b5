// ABOUTME: Tests for bwrap argument construction and the skip escape hatch
// ABOUTME: Pure arg-building is tested without invoking bwrap itself

package sandbox

import (
	"context"
	"os/exec"
	"slices"
	"strings"
	"testing"
)

func TestBuildBwrapArgs_Isolation(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		ProjectRoot:  "/work/project",
		AllowedPaths: []string{"/data/cache"},
	}
	args := buildBwrapArgs(cfg)
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"--ro-bind / /",
		"--dev /dev",
		"--proc /proc",
		"--bind /tmp /tmp",
		"--bind /work/project /work/project",
		"--bind /data/cache /data/cache",
		"--die-with-parent",
		"--unshare-net",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "--" {
		t.Errorf("args should end with --, got %q", args[len(args)-1])
	}
}

func TestBuildBwrapArgs_NetworkAllowed(t *testing.T) {
	t.Parallel()

	cfg := &Config{ProjectRoot: "/p", AllowNetwork: true}
	if slices.Contains(buildBwrapArgs(cfg), "--unshare-net") {
		t.Error("--unshare-net present despite AllowNetwork")
	}
}

func TestWrapCommand_SkipReturnsUnchanged(t *testing.T) {
	t.Parallel()

	cfg := &Config{ProjectRoot: "/p", SkipSandbox: true}
	cmd := exec.Command("/bin/echo", "hi")

	if got := WrapCommand(context.Background(), cmd, cfg); got != cmd {
		t.Error("SkipSandbox should return the original command")
	}
}

func TestWrapCommand_WrapsOriginalArgv(t *testing.T) {
	t.Parallel()

	cfg := &Config{ProjectRoot: "/p"}
	cmd := exec.Command("/bin/sh", "-c", "echo hi")
	cmd.Dir = "/p"

	wrapped := WrapCommand(context.Background(), cmd, cfg)
	if wrapped == cmd {
		t.Fatal("command should be wrapped")
	}
	if got := wrapped.Args[0]; got != "bwrap" {
		t.Errorf("argv[0] = %q, want bwrap", got)
	}
	joined := strings.Join(wrapped.Args, " ")
	if !strings.Contains(joined, "-- /bin/sh -c echo hi") {
		t.Errorf("original command not preserved after --: %s", joined)
	}
	if wrapped.Dir != "/p" {
		t.Errorf("Dir = %q, want preserved /p", wrapped.Dir)
	}
}

func TestEnsureAvailable_SkipBypassesProbe(t *testing.T) {
	t.Parallel()

	cfg := &Config{ProjectRoot: "/p", SkipSandbox: true}
	if err := EnsureAvailable(context.Background(), cfg); err != nil {
		t.Errorf("EnsureAvailable with skip = %v, want nil", err)
	}
}
