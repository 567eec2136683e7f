package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/tuatara/internal/clipboard"
	"github.com/PolarWolf314/tuatara/internal/generator"
	"github.com/PolarWolf314/tuatara/internal/strength"
	"github.com/PolarWolf314/tuatara/internal/ui"
	"github.com/PolarWolf314/tuatara/internal/wordlist"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// newWordlistProvider is a seam for tests, which swap in a provider pointed
// at a local fixture server instead of the canonical EFF source.
var newWordlistProvider = wordlist.NewProvider

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
// Uses the global debug flag from the root command.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
// This ensures consistent output formatting across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// outputOptions controls how generated secrets are presented.
type outputOptions struct {
	showStrength bool
	showStats    bool
	copyResult   bool
	copyTimeout  time.Duration
}

// emitSecrets prints the generated secrets one per line, optionally with a
// strength report per secret and batch quality statistics, then copies the
// first secret to the clipboard if requested. All secrets are zeroed before
// returning.
func emitSecrets(secrets []*generator.Secret, opts outputOptions) error {
	defer func() {
		for _, sec := range secrets {
			sec.Value.Zero()
		}
	}()

	var values []string
	if opts.showStats {
		values = make([]string, 0, len(secrets))
	}

	for _, sec := range secrets {
		fmt.Println(sec.Value.Reveal())
		if opts.showStats {
			values = append(values, sec.Value.Reveal())
		}
		if opts.showStrength {
			printReport(strength.Evaluate(sec))
		}
	}

	if opts.showStats {
		printStats(strength.Stats(values))
		for i := range values {
			values[i] = ""
		}
	}

	if opts.copyResult {
		daemon := clipboard.New(Logger)
		if opts.copyTimeout > 0 {
			daemon.Timeout = opts.copyTimeout
		}
		if err := daemon.Persist(&secrets[0].Value); err != nil {
			return Logger.ErrorfAndReturn("Failed to copy to clipboard: %v", err)
		}
		fmt.Printf("%s Copied to clipboard %s\n",
			color.GreenString("✓"),
			ui.Muted.Sprintf("clears after %s", daemon.Timeout))
	}

	return nil
}

// printReport writes a strength report for a single secret.
func printReport(report strength.Report) {
	fmt.Printf("  %s %.1f bits %s\n",
		ui.Info.Sprint("entropy:"),
		report.EntropyBits,
		categoryLabel(report.Category))
	for _, suggestion := range report.Suggestions {
		fmt.Printf("  %s %s\n", color.CyanString("→"), suggestion)
	}
}

// printStats writes batch quality statistics after the generated secrets.
func printStats(q strength.Quality) {
	fmt.Println(ui.Info.Sprint("Batch quality (Shannon entropy per secret):"))
	fmt.Printf("  mean:     %.4f\n", q.Mean)
	fmt.Printf("  variance: %.4f\n", q.Variance)
	fmt.Printf("  skewness: %.4f\n", q.Skewness)
	fmt.Printf("  kurtosis: %.4f\n", q.Kurtosis)
}

// categoryLabel renders a strength category with the matching color.
func categoryLabel(c strength.Category) string {
	switch c {
	case strength.Weak:
		return color.RedString("(%s)", c)
	case strength.Moderate:
		return color.YellowString("(%s)", c)
	default:
		return color.GreenString("(%s)", c)
	}
}

// readValueArg returns the positional argument if present, otherwise reads a
// single value from stdin. This lets secrets be piped in without appearing in
// shell history.
func readValueArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return strings.TrimRight(string(raw), "\r\n"), nil
}
