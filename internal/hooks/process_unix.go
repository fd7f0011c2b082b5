// ABOUTME: Unix-specific process group management for hook subprocesses
// ABOUTME: Each hook runs in its own group so timeouts kill the whole tree

//go:build unix

package hooks

import (
	"os/exec"
	"syscall"
)

// setProcGroup puts the hook subprocess in its own process group.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcGroup kills the hook's entire process group with SIGKILL.
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process != nil {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	return nil
}
