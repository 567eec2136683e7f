package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/ui"

	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List available character sets",
	Long:  `Lists every named character set that can be passed to --allowed, with its size and contents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := charset.NewRegistry()
		for _, name := range reg.Names() {
			set, ok := reg.Lookup(name)
			if !ok {
				continue
			}
			fmt.Printf("%-14s %s\n",
				ui.Highlight.Sprint(name),
				ui.Muted.Sprintf("%d characters: %s", set.Len(), string(set.Runes())))
		}
		return nil
	},
}
