// ABOUTME: Tests for sandbox path validation and containment rules
// ABOUTME: Traversal and prefix-bypass attempts must be rejected

package sandbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// tempRoot returns a symlink-resolved temp dir so containment comparisons
// are stable on platforms where the temp dir is itself a symlink.
func tempRoot(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temp dir: %v", err)
	}
	return dir
}

func newTestConfig(t *testing.T, root string, allowed ...string) *Config {
	t.Helper()
	cfg, err := NewConfig(root, allowed, false)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

func TestValidatePath_InsideRootAccepted(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	cfg := newTestConfig(t, root)

	inside := filepath.Join(root, "src", "main.go")
	for _, write := range []bool{false, true} {
		if err := cfg.ValidatePath(inside, write); err != nil {
			t.Errorf("ValidatePath(inside, write=%v) = %v, want nil", write, err)
		}
	}
	if err := cfg.ValidatePath(root, false); err != nil {
		t.Errorf("project root itself should be accepted: %v", err)
	}
}

func TestValidatePath_OutsideRootRejected(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	outside := tempRoot(t)
	cfg := newTestConfig(t, root)

	for _, write := range []bool{false, true} {
		err := cfg.ValidatePath(filepath.Join(outside, "x"), write)
		if err == nil {
			t.Fatalf("path outside root accepted for write=%v", write)
		}
		var pathErr *PathError
		if !errors.As(err, &pathErr) {
			t.Errorf("err = %T, want *PathError", err)
		}
	}
}

func TestValidatePath_AllowedPathsAccepted(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	extra := tempRoot(t)
	cfg := newTestConfig(t, root, extra)

	if err := cfg.ValidatePath(filepath.Join(extra, "cache.db"), true); err != nil {
		t.Errorf("path in allowed dir rejected: %v", err)
	}
}

func TestValidatePath_TraversalResolvedBeforeCheck(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	cfg := newTestConfig(t, root)

	// Looks contained, resolves outside.
	sneaky := filepath.Join(root, "sub", "..", "..", "escape.txt")
	if err := cfg.ValidatePath(sneaky, true); err == nil {
		t.Error("traversal escaping the root should be rejected")
	}

	// Traversal that stays inside is fine.
	staying := filepath.Join(root, "sub", "..", "ok.txt")
	if err := cfg.ValidatePath(staying, true); err != nil {
		t.Errorf("contained traversal rejected: %v", err)
	}
}

func TestValidatePath_SymlinkEscapeRejected(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	outside := tempRoot(t)
	cfg := newTestConfig(t, root)

	link := filepath.Join(root, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if err := cfg.ValidatePath(filepath.Join(link, "leak.txt"), true); err == nil {
		t.Error("write through an escaping symlink should be rejected")
	}
}

func TestValidatePath_SymlinkEscapeWithMissingSubdirsRejected(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	outside := tempRoot(t)
	cfg := newTestConfig(t, root)

	link := filepath.Join(root, "esc")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	// Neither sub nor file.txt exists, so resolution must still walk past
	// the missing components down to the symlinked ancestor.
	deep := filepath.Join(link, "sub", "file.txt")
	if err := cfg.ValidatePath(deep, true); err == nil {
		t.Error("write through a symlink with missing intermediate dirs should be rejected")
	}

	// The same shape staying inside the root is fine.
	if err := cfg.ValidatePath(filepath.Join(root, "new", "sub", "file.txt"), true); err != nil {
		t.Errorf("deep path under root rejected: %v", err)
	}
}

func TestValidatePath_SymlinkedRootAccepted(t *testing.T) {
	t.Parallel()

	base := tempRoot(t)
	real := filepath.Join(base, "real")
	if err := os.MkdirAll(filepath.Join(real, "proj"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(base, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	// The configured root goes through a symlinked directory.
	cfg := newTestConfig(t, filepath.Join(link, "proj"))

	inside := filepath.Join(link, "proj", "a.txt")
	if err := os.WriteFile(inside, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := cfg.ValidatePath(inside, false); err != nil {
		t.Errorf("file inside symlinked root rejected: %v", err)
	}
	if err := cfg.ValidatePath(filepath.Join(real, "proj", "a.txt"), true); err != nil {
		t.Errorf("resolved form of in-root file rejected: %v", err)
	}
}

func TestValidatePath_SeparatorBoundary(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	cfg := newTestConfig(t, root)

	// A sibling whose name shares the root as a string prefix.
	evil := root + "evil"
	if err := os.MkdirAll(evil, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := cfg.ValidatePath(filepath.Join(evil, "f"), false); err == nil {
		t.Error("prefix-sharing sibling directory must not pass containment")
	}
}

func TestValidatePath_EmptyPathRejected(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, tempRoot(t))
	if err := cfg.ValidatePath("", false); err == nil {
		t.Error("empty path should be rejected")
	}
}
