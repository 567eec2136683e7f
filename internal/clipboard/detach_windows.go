//go:build windows

package clipboard

import "os/exec"

// detach is a no-op on Windows: the system clipboard keeps its contents
// after the writing process exits, so no holder is spawned.
func detach(cmd *exec.Cmd) {}
