package cmd

import (
	"fmt"
	"time"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/clipboard"
	"github.com/PolarWolf314/tuatara/internal/mutate"
	"github.com/PolarWolf314/tuatara/internal/strength"
	"github.com/PolarWolf314/tuatara/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	mutateOperation   string
	mutateStrength    int
	mutateIncrease    int
	mutateSeed        uint64
	mutateShowReport  bool
	mutateCopy        bool
	mutateCopyTimeout time.Duration
)

var mutateCmd = &cobra.Command{
	Use:   "mutate [value]",
	Short: "Apply random edits to an existing secret",
	Long: `Applies a fixed number of random edits to a secret. Replacement edits keep
the character class of the position they touch, so a digit stays a digit and
a symbol stays a symbol.

The value can be passed as an argument or piped on stdin to keep it out of
shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting mutate command")

		value, err := readValueArg(args)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read input: %v", err)
		}

		op, err := mutate.ParseOp(mutateOperation)
		if err != nil {
			fmt.Printf("%s %s\n", color.RedString("✗"), err.Error())
			return nil
		}

		spec := mutate.Spec{
			Op:       op,
			Strength: mutateStrength,
			Increase: mutateIncrease,
		}
		if cmd.Flags().Changed("seed") {
			seed := mutateSeed
			spec.Seed = &seed
			Logger.Warnf("Seeded mutation is reproducible and not suitable for real secrets")
		}

		engine := mutate.New(charset.NewRegistry(), Logger)
		result, err := engine.Mutate(value, spec)
		if err != nil {
			Logger.Errorf("Mutation failed: %v", err)
			fmt.Printf("%s %s\n", color.RedString("✗"), err.Error())
			return nil
		}
		defer result.Zero()
		Logger.Infof("Applied %d %s edits", mutateStrength, op)

		fmt.Println(result.Reveal())
		if mutateShowReport {
			printReport(strength.Observed(result.Reveal()))
		}

		if mutateCopy {
			daemon := clipboard.New(Logger)
			if mutateCopyTimeout > 0 {
				daemon.Timeout = mutateCopyTimeout
			}
			if err := daemon.Persist(&result); err != nil {
				return Logger.ErrorfAndReturn("Failed to copy to clipboard: %v", err)
			}
			fmt.Printf("%s Copied to clipboard %s\n",
				color.GreenString("✓"),
				ui.Muted.Sprintf("clears after %s", daemon.Timeout))
		}
		return nil
	},
}

func init() {
	mutateCmd.Flags().StringVarP(&mutateOperation, "operation", "o", "replace", "edit to apply: replace, swap, insert, or lengthen")
	mutateCmd.Flags().IntVarP(&mutateStrength, "strength", "s", 1, "number of edits to apply")
	mutateCmd.Flags().IntVar(&mutateIncrease, "increase", 1, "characters appended per lengthen edit")
	mutateCmd.Flags().Uint64Var(&mutateSeed, "seed", 0, "seed for reproducible output (not for real secrets)")
	mutateCmd.Flags().BoolVar(&mutateShowReport, "show-strength", false, "print a strength report for the result")
	mutateCmd.Flags().BoolVar(&mutateCopy, "copy", false, "copy the result to the clipboard")
	mutateCmd.Flags().DurationVar(&mutateCopyTimeout, "copy-timeout", 0, "how long the clipboard keeps the secret (default 45s)")
}
