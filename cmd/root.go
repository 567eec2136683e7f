package cmd

import (
	"fmt"

	logger "github.com/PolarWolf314/tuatara/internal/logging"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "tuatara",
		Short: "Tuatara - A CLI for generating and inspecting secrets",
		Long: `Tuatara is a command-line tool for generating passwords, passphrases,
and pronounceable secrets, and for inspecting how strong they are.

Features:
  - Generate random secrets from configurable character sets or patterns
  - Build diceware passphrases from the EFF large wordlist
  - Mutate existing secrets and score their strength
  - Copy results to the clipboard with automatic clearing

Usage:
  tuatara <command> [flags]

Available Commands:
  generate        Generate random secrets
  passphrase      Generate diceware passphrases
  pronounceable   Generate pronounceable secrets
  mutate          Apply random edits to an existing secret
  strength        Score the strength of an existing secret
  wordlist        Manage the cached wordlist
  profiles        Inspect configured generation profiles
  sets            List available character sets

Run 'tuatara help <command>' for more details on a specific command.
`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing tuatara with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			myFigure := figure.NewColorFigure("Tuatara", "alligator2", "green", true)
			myFigure.Print()
			fmt.Println()
			fmt.Println("Welcome to Tuatara! Run 'tuatara --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(passphraseCmd)
	RootCmd.AddCommand(pronounceableCmd)
	RootCmd.AddCommand(mutateCmd)
	RootCmd.AddCommand(strengthCmd)
	RootCmd.AddCommand(wordlistCmd)
	RootCmd.AddCommand(profilesCmd)
	RootCmd.AddCommand(setsCmd)
	RootCmd.AddCommand(clipboardHoldCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
