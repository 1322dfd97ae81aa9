//go:build windows

package process

import "os/exec"

const (
	defaultShell     = "cmd"
	defaultShellFlag = "/C"
)

// killProcessGroup relies on the default Cancel, which kills the shell process.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return cmd.Process.Kill()
	}
}
