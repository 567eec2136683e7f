package cmd

import (
	"time"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/generator"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	pronounceableLength      int
	pronounceableCount       int
	pronounceableLooseness   int
	pronounceableSeed        uint64
	pronounceableStrength    bool
	pronounceableStats       bool
	pronounceableCopy        bool
	pronounceableCopyTimeout time.Duration
)

var pronounceableCmd = &cobra.Command{
	Use:   "pronounceable",
	Short: "Generate pronounceable secrets by alternating consonants and vowels",
	Long: `Generates secrets that alternate between consonants and vowels so they can
be read aloud. With --looseness N there is a one-in-N chance of repeating a
class at each position, which trades pronounceability for entropy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pronounceable command")
		spinner, cleanup := startSpinner("Generating secrets...", verbose)
		defer cleanup()

		req := generator.Request{
			Mode:      generator.ModePronounceable,
			Length:    pronounceableLength,
			Count:     pronounceableCount,
			Looseness: pronounceableLooseness,
		}
		if cmd.Flags().Changed("seed") {
			seed := pronounceableSeed
			req.Seed = &seed
			Logger.Warnf("Seeded generation is reproducible and not suitable for real secrets")
		}

		engine := generator.New(charset.NewRegistry(), Logger)
		secrets, err := engine.Generate(cmd.Context(), req)
		if err != nil {
			Logger.Errorf("Generation failed: %v", err)
			spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
			return nil
		}
		Logger.Infof("Generated %d secrets", len(secrets))

		spinner.Stop()
		return emitSecrets(secrets, outputOptions{
			showStrength: pronounceableStrength,
			showStats:    pronounceableStats,
			copyResult:   pronounceableCopy,
			copyTimeout:  pronounceableCopyTimeout,
		})
	},
}

func init() {
	pronounceableCmd.Flags().IntVarP(&pronounceableLength, "length", "l", 12, "number of characters per secret")
	pronounceableCmd.Flags().IntVarP(&pronounceableCount, "count", "c", 1, "number of secrets to generate")
	pronounceableCmd.Flags().IntVar(&pronounceableLooseness, "looseness", 0, "one-in-N chance of repeating a class (0 = strict alternation)")
	pronounceableCmd.Flags().Uint64Var(&pronounceableSeed, "seed", 0, "seed for reproducible output (not for real secrets)")
	pronounceableCmd.Flags().BoolVar(&pronounceableStrength, "show-strength", false, "print a strength report per secret")
	pronounceableCmd.Flags().BoolVar(&pronounceableStats, "stats", false, "print batch quality statistics")
	pronounceableCmd.Flags().BoolVar(&pronounceableCopy, "copy", false, "copy the first secret to the clipboard")
	pronounceableCmd.Flags().DurationVar(&pronounceableCopyTimeout, "copy-timeout", 0, "how long the clipboard keeps the secret (default 45s)")
}
