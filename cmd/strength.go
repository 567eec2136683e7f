package cmd

import (
	"fmt"

	"github.com/PolarWolf314/tuatara/internal/strength"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var strengthCmd = &cobra.Command{
	Use:   "strength [value]",
	Short: "Score the strength of an existing secret",
	Long: `Estimates the entropy of a secret from the character classes it uses, then
applies penalties for sequential runs, repeated characters, and common words.

The value can be passed as an argument or piped on stdin to keep it out of
shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting strength command")

		value, err := readValueArg(args)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read input: %v", err)
		}
		if value == "" {
			fmt.Printf("%s Nothing to score: the input is empty\n", color.RedString("✗"))
			return nil
		}

		report := strength.Observed(value)
		Logger.Debugf("Scored %d characters at %.1f bits", len(value), report.EntropyBits)

		fmt.Printf("%.1f bits %s\n", report.EntropyBits, categoryLabel(report.Category))
		for _, suggestion := range report.Suggestions {
			fmt.Printf("%s %s\n", color.CyanString("→"), suggestion)
		}
		return nil
	},
}
