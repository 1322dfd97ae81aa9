//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

const (
	defaultShell     = "/bin/sh"
	defaultShellFlag = "-c"
)

// killProcessGroup starts the shell in its own process group and makes
// context cancellation kill the whole group, so children of the shell die too.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
