package cmd

import (
	"time"

	"github.com/PolarWolf314/tuatara/internal/clipboard"

	"github.com/spf13/cobra"
)

var clipboardHoldTimeout time.Duration

// clipboardHoldCmd is the detached helper process spawned by --copy on
// platforms where clipboard contents die with the owning process. It reads
// the secret from stdin and keeps it on the clipboard until the timeout
// expires or another program takes the clipboard over.
var clipboardHoldCmd = &cobra.Command{
	Use:    clipboard.HoldCommandName,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return clipboard.Hold(clipboardHoldTimeout)
	},
}

func init() {
	clipboardHoldCmd.Flags().DurationVar(&clipboardHoldTimeout, "timeout", clipboard.DefaultTimeout, "how long to keep the secret on the clipboard")
}
