//go:build !windows

package clipboard

import (
	"os/exec"
	"syscall"
)

// detach puts the holder in its own session so it outlives the parent and
// ignores the parent's terminal signals.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
