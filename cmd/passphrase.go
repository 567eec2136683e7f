package cmd

import (
	"time"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/generator"
	"github.com/PolarWolf314/tuatara/internal/wordlist"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	passphraseWords       int
	passphraseCount       int
	passphraseSeparator   string
	passphraseCacheDir    string
	passphraseSeed        uint64
	passphraseStrength    bool
	passphraseStats       bool
	passphraseCopy        bool
	passphraseCopyTimeout time.Duration
)

var passphraseCmd = &cobra.Command{
	Use:   "passphrase",
	Short: "Generate diceware passphrases from the EFF large wordlist",
	Long: `Generates passphrases by drawing words uniformly from the EFF large
wordlist. The wordlist is downloaded once, verified against a pinned
checksum, and cached for later runs.

Pass --separator random to draw a fresh separator character for every gap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting passphrase command")
		spinner, cleanup := startSpinner("Preparing wordlist...", verbose)
		defer cleanup()

		cacheDir := passphraseCacheDir
		if cacheDir == "" {
			var err error
			cacheDir, err = wordlist.DefaultCacheDir()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to resolve cache directory: %v", err)
			}
		}
		Logger.Debugf("Using wordlist cache directory: %s", cacheDir)

		provider := newWordlistProvider(Logger)
		words, err := provider.Ensure(cmd.Context(), cacheDir)
		if err != nil {
			Logger.Errorf("Failed to obtain wordlist: %v", err)
			spinner.FinalMSG = color.RedString("✗") + " Failed to obtain the wordlist\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}
		Logger.Infof("Wordlist ready with %d words from %s", words.Len(), words.Source)

		spinner.Suffix = " Generating passphrases..."

		separator, err := generator.ParseSeparator(passphraseSeparator)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
			return nil
		}

		req := generator.Request{
			Mode:      generator.ModeDiceware,
			Length:    passphraseWords,
			Count:     passphraseCount,
			Separator: separator,
		}
		if cmd.Flags().Changed("seed") {
			seed := passphraseSeed
			req.Seed = &seed
			Logger.Warnf("Seeded generation is reproducible and not suitable for real secrets")
		}

		engine := generator.New(charset.NewRegistry(), Logger)
		engine.Words = words
		secrets, err := engine.Generate(cmd.Context(), req)
		if err != nil {
			Logger.Errorf("Generation failed: %v", err)
			spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
			return nil
		}
		Logger.Infof("Generated %d passphrases", len(secrets))

		spinner.Stop()
		return emitSecrets(secrets, outputOptions{
			showStrength: passphraseStrength,
			showStats:    passphraseStats,
			copyResult:   passphraseCopy,
			copyTimeout:  passphraseCopyTimeout,
		})
	},
}

func init() {
	passphraseCmd.Flags().IntVarP(&passphraseWords, "words", "w", 6, "number of words per passphrase")
	passphraseCmd.Flags().IntVarP(&passphraseCount, "count", "c", 1, "number of passphrases to generate")
	passphraseCmd.Flags().StringVarP(&passphraseSeparator, "separator", "s", " ", "separator between words, or 'random'")
	passphraseCmd.Flags().StringVar(&passphraseCacheDir, "cache-dir", "", "directory for the cached wordlist")
	passphraseCmd.Flags().Uint64Var(&passphraseSeed, "seed", 0, "seed for reproducible output (not for real secrets)")
	passphraseCmd.Flags().BoolVar(&passphraseStrength, "show-strength", false, "print a strength report per passphrase")
	passphraseCmd.Flags().BoolVar(&passphraseStats, "stats", false, "print batch quality statistics")
	passphraseCmd.Flags().BoolVar(&passphraseCopy, "copy", false, "copy the first passphrase to the clipboard")
	passphraseCmd.Flags().DurationVar(&passphraseCopyTimeout, "copy-timeout", 0, "how long the clipboard keeps the secret (default 45s)")
}
