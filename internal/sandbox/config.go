// ABOUTME: Sandbox configuration and path validation against allowed roots
// ABOUTME: One config per session, shared by reference across tools

package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config bounds what a permitted action may touch. It is constructed once
// per session and shared by pointer. SkipSandbox is a deliberate escape
// hatch and may be flipped after construction; everything else is read-only.
type Config struct {
	ProjectRoot  string
	AllowedPaths []string
	AllowNetwork bool
	SkipSandbox  bool
}

// PathError reports a rejected path with the operation that was attempted.
type PathError struct {
	Path string
	Op   string // "read" or "write"
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s access denied: path %q is outside allowed directories", e.Op, e.Path)
}

// NewConfig builds a Config with symlink-resolved absolute roots. Roots are
// resolved the same way candidate paths are, so a root living under a
// symlinked directory still contains its own files.
func NewConfig(projectRoot string, allowedPaths []string, allowNetwork bool) (*Config, error) {
	root, err := resolvePath(expandHome(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("resolving project root %q: %w", projectRoot, err)
	}

	normalized := make([]string, 0, len(allowedPaths))
	for _, p := range allowedPaths {
		abs, err := resolvePath(expandHome(p))
		if err != nil {
			return nil, fmt.Errorf("resolving allowed path %q: %w", p, err)
		}
		normalized = append(normalized, abs)
	}

	return &Config{
		ProjectRoot:  root,
		AllowedPaths: normalized,
		AllowNetwork: allowNetwork,
	}, nil
}

// ValidatePath accepts a path only if it resolves inside the project root or
// one of the allowed paths. Read and write use the identical containment
// rule; callers must request write for mutating operations.
func (c *Config) ValidatePath(path string, write bool) error {
	op := "read"
	if write {
		op = "write"
	}

	if path == "" {
		return fmt.Errorf("%s access denied: empty path", op)
	}

	resolved, err := resolvePath(expandHome(path))
	if err != nil {
		return fmt.Errorf("%s access denied: resolving %q: %w", op, path, err)
	}

	if contained(resolved, c.ProjectRoot) {
		return nil
	}
	for _, allowed := range c.AllowedPaths {
		if contained(resolved, allowed) {
			return nil
		}
	}

	return &PathError{Path: resolved, Op: op}
}

// resolvePath resolves symlinks and relative components. For paths that do
// not exist yet, the deepest existing ancestor is resolved and the missing
// components rejoined, so a write through a symlinked directory cannot
// escape even when intermediate directories are still to be created.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	} else if !os.IsNotExist(err) {
		return abs, nil
	}

	// Walk up until an ancestor exists, resolve that, then rejoin the
	// missing components. abs is already clean, so no component is "..".
	ancestor := abs
	var missing []string
	for {
		parent := filepath.Dir(ancestor)
		if parent == ancestor {
			break
		}
		missing = append(missing, filepath.Base(ancestor))
		ancestor = parent

		resolved, err := filepath.EvalSymlinks(ancestor)
		if err == nil {
			ancestor = resolved
			break
		}
		if !os.IsNotExist(err) {
			return abs, nil
		}
	}

	for i := len(missing) - 1; i >= 0; i-- {
		ancestor = filepath.Join(ancestor, missing[i])
	}
	return ancestor, nil
}

// contained checks dir containment with a separator boundary so /tmpevil
// never matches /tmp.
func contained(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}

// expandHome rewrites a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
