// Package clipboard hands secrets to the OS clipboard so they survive
// process exit.
//
// On Windows and macOS the system clipboard keeps its contents after the
// writing process exits, so a plain write suffices. On X11-style clipboards
// the contents vanish with their owner, so Persist re-execs the binary as a
// detached holder process that owns the clipboard until a timeout elapses or
// another application takes it over. The handoff is one-way message passing:
// the parent pipes the bytes in, waits for the holder's acknowledgment, and
// zeroes its own copy.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"

	"github.com/PolarWolf314/tuatara/internal/errors"
	logger "github.com/PolarWolf314/tuatara/internal/logging"
	"github.com/PolarWolf314/tuatara/internal/secure"
)

const (
	// DefaultTimeout is how long a held secret stays on the clipboard.
	DefaultTimeout = 45 * time.Second

	// HoldCommandName is the hidden subcommand the holder process runs.
	HoldCommandName = "clipboard-hold"

	pollInterval = 500 * time.Millisecond
)

// Daemon persists secrets to the clipboard.
type Daemon struct {
	Timeout time.Duration
	Log     logger.Logger
}

// New returns a Daemon with the default timeout.
func New(log logger.Logger) *Daemon {
	return &Daemon{Timeout: DefaultTimeout, Log: log}
}

// Persist copies the secret to the OS clipboard and zeroes the caller's
// copy once the handoff has succeeded. An empty secret is rejected before
// any OS clipboard call.
func (d *Daemon) Persist(sec *secure.Secret) error {
	if sec == nil || len(*sec) == 0 {
		return errors.ErrClipboardEmpty
	}
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard backend on this system", errors.ErrClipboardUnavailable)
	}

	if !needsHolder() {
		if err := clipboard.WriteAll(sec.Reveal()); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrClipboardUnavailable, err)
		}
		sec.Zero()
		return nil
	}

	if err := d.spawnHolder(sec); err != nil {
		return err
	}
	sec.Zero()
	return nil
}

// spawnHolder starts the detached holder process and completes the handoff.
func (d *Daemon) spawnHolder(sec *secure.Secret) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("%w: cannot locate own binary: %v", errors.ErrClipboardUnavailable, err)
	}

	cmd := exec.Command(exe, HoldCommandName, "--timeout", d.Timeout.String())
	detach(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrClipboardUnavailable, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrClipboardUnavailable, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: failed to start holder: %v", errors.ErrClipboardUnavailable, err)
	}
	d.Log.Debugf("Clipboard holder started, pid %d", cmd.Process.Pid)

	if _, err := stdin.Write(sec.Bytes()); err != nil {
		return fmt.Errorf("%w: handoff failed: %v", errors.ErrClipboardUnavailable, err)
	}
	if err := stdin.Close(); err != nil {
		return fmt.Errorf("%w: handoff failed: %v", errors.ErrClipboardUnavailable, err)
	}

	// Wait for the holder to confirm it owns the clipboard before zeroing
	// our copy and letting go of the child.
	ack := make([]byte, 3)
	if _, err := io.ReadFull(stdout, ack); err != nil || string(ack) != "ok\n" {
		return fmt.Errorf("%w: holder did not acknowledge handoff", errors.ErrClipboardUnavailable)
	}

	if err := cmd.Process.Release(); err != nil {
		d.Log.Warnf("Failed to release holder process: %v", err)
	}
	return nil
}

// Hold is the holder-process side of the handoff. It reads the secret from
// stdin, takes clipboard ownership, acknowledges on stdout, and then waits
// until the timeout elapses or the clipboard changes hands. On timeout it
// clears the clipboard if the secret is still there.
func Hold(timeout time.Duration) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read secret from handoff: %w", err)
	}
	if len(data) == 0 {
		return errors.ErrClipboardEmpty
	}
	value := string(data)
	for i := range data {
		data[i] = 0
	}

	if err := clipboard.WriteAll(value); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrClipboardUnavailable, err)
	}
	fmt.Fprint(os.Stdout, "ok\n")

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		time.Sleep(pollInterval)
		current, err := clipboard.ReadAll()
		if err != nil || current != value {
			// Another application owns the clipboard now; our job is done.
			return nil
		}
	}

	if current, err := clipboard.ReadAll(); err == nil && current == value {
		return clipboard.WriteAll("")
	}
	return nil
}

// needsHolder reports whether this platform loses clipboard contents when
// the owning process exits.
func needsHolder() bool {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		return true
	default:
		return false
	}
}
