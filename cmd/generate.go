package cmd

import (
	"time"

	"github.com/PolarWolf314/tuatara/internal/charset"
	"github.com/PolarWolf314/tuatara/internal/generator"
	"github.com/PolarWolf314/tuatara/internal/profiles"
	"github.com/PolarWolf314/tuatara/internal/wordlist"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	generateLength      int
	generateCount       int
	generateAllowed     string
	generateExclude     string
	generateInclude     string
	generateAvoidRepeat bool
	generatePattern     string
	generateSeed        uint64
	generateProfile     string
	generatePolicy      string
	generateConfig      string
	generateCacheDir    string
	generateStrength    bool
	generateStats       bool
	generateCopy        bool
	generateCopyTimeout time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate random secrets from character sets or a pattern",
	Long: `Generates one or more random secrets. By default every position is drawn
uniformly from the allowed character sets. With --pattern, each position is
drawn from the class named by the template instead (L=letter, U=upper,
D=digit, S=symbol, A=alphanumeric, X=any printable).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting generate command")
		spinner, cleanup := startSpinner("Generating secrets...", verbose)
		defer cleanup()

		reg := charset.NewRegistry()
		req := generator.Request{
			Mode:    generator.ModeCharacter,
			Length:  generateLength,
			Count:   generateCount,
			Allowed: generator.DefaultAllowed,
		}

		// The config file always participates, so [defaults] applies to a
		// plain generate run too. A missing file loads as empty.
		userProfiles, err := profiles.Load(generateConfig)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load profiles: %v", err)
		}
		if userProfiles.Defaults != nil {
			if err := profiles.Apply(*userProfiles.Defaults, reg, &req); err != nil {
				spinner.FinalMSG = color.RedString("✗") + " Invalid defaults in config: " + err.Error()
				return nil
			}
		}
		if generateProfile != "" {
			def, ok := userProfiles.Get(generateProfile)
			if !ok {
				spinner.FinalMSG = color.RedString("✗") + " Unknown profile " + color.YellowString(generateProfile)
				return nil
			}
			Logger.Debugf("Applying profile: %s", generateProfile)
			if err := profiles.Apply(def, reg, &req); err != nil {
				spinner.FinalMSG = color.RedString("✗") + " Invalid profile " + color.YellowString(generateProfile) + ": " + err.Error()
				return nil
			}
		}

		var policy *profiles.Policy
		if generatePolicy != "" {
			p, err := profiles.LookupPolicy(generatePolicy)
			if err != nil {
				spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
				return nil
			}
			Logger.Debugf("Applying policy: %s", p.Name)
			p.Apply(&req)
			policy = &p
		}

		// Explicit flags win over profile and policy values.
		flags := cmd.Flags()
		if flags.Changed("length") {
			req.Length = generateLength
		}
		if flags.Changed("count") {
			req.Count = generateCount
		}
		if flags.Changed("allowed") {
			names, err := profiles.SplitAllowed(generateAllowed, reg)
			if err != nil {
				spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
				return nil
			}
			req.Allowed = names
		}
		if generateExclude != "" {
			req.Excluded = []rune(generateExclude)
		}
		if generateInclude != "" {
			req.Forced = []rune(generateInclude)
		}
		if flags.Changed("avoid-repeating") {
			req.AvoidRepeat = generateAvoidRepeat
		}
		if flags.Changed("pattern") {
			req.Mode = generator.ModePattern
			req.Pattern = generatePattern
		}
		if flags.Changed("seed") {
			seed := generateSeed
			req.Seed = &seed
			Logger.Warnf("Seeded generation is reproducible and not suitable for real secrets")
		}

		engine := generator.New(reg, Logger)

		// Diceware profiles need the wordlist, same as the passphrase command.
		if req.Mode == generator.ModeDiceware {
			spinner.Suffix = " Preparing wordlist..."
			cacheDir := generateCacheDir
			if cacheDir == "" {
				cacheDir, err = wordlist.DefaultCacheDir()
				if err != nil {
					return Logger.ErrorfAndReturn("Failed to resolve cache directory: %v", err)
				}
			}
			provider := newWordlistProvider(Logger)
			words, err := provider.Ensure(cmd.Context(), cacheDir)
			if err != nil {
				Logger.Errorf("Failed to obtain wordlist: %v", err)
				spinner.FinalMSG = color.RedString("✗") + " Failed to obtain the wordlist\n" +
					color.RedString("Error: ") + err.Error()
				return nil
			}
			engine.Words = words
			spinner.Suffix = " Generating secrets..."
		}

		secrets, err := engine.Generate(cmd.Context(), req)
		if err != nil {
			Logger.Errorf("Generation failed: %v", err)
			spinner.FinalMSG = color.RedString("✗") + " " + err.Error()
			return nil
		}
		Logger.Infof("Generated %d secrets", len(secrets))

		if policy != nil {
			for _, sec := range secrets {
				if sec.EntropyBits < policy.RecommendedBits {
					Logger.WarnfUser("Entropy %.1f bits is below the %s recommendation of %.0f bits",
						sec.EntropyBits, policy.Label, policy.RecommendedBits)
					break
				}
			}
		}

		// Clear the spinner line before printing secrets.
		spinner.Stop()
		return emitSecrets(secrets, outputOptions{
			showStrength: generateStrength,
			showStats:    generateStats,
			copyResult:   generateCopy,
			copyTimeout:  generateCopyTimeout,
		})
	},
}

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "l", 16, "number of characters per secret")
	generateCmd.Flags().IntVarP(&generateCount, "count", "c", 1, "number of secrets to generate")
	generateCmd.Flags().StringVarP(&generateAllowed, "allowed", "a", "", "comma-separated character set names (see 'tuatara sets')")
	generateCmd.Flags().StringVar(&generateExclude, "exclude", "", "characters to exclude from every set")
	generateCmd.Flags().StringVar(&generateInclude, "include", "", "characters to force into the pool")
	generateCmd.Flags().BoolVar(&generateAvoidRepeat, "avoid-repeating", false, "never use the same character twice in one secret")
	generateCmd.Flags().StringVarP(&generatePattern, "pattern", "p", "", "per-position class template, e.g. ULLDDS")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "seed for reproducible output (not for real secrets)")
	generateCmd.Flags().StringVar(&generateProfile, "profile", "", "named profile from the config file")
	generateCmd.Flags().StringVar(&generatePolicy, "policy", "", "compliance policy preset (windows-ad, pci-dss, nist-high)")
	generateCmd.Flags().StringVar(&generateConfig, "config", "", "path to the profiles config file")
	generateCmd.Flags().StringVar(&generateCacheDir, "cache-dir", "", "directory for the cached wordlist")
	generateCmd.Flags().BoolVar(&generateStrength, "show-strength", false, "print a strength report per secret")
	generateCmd.Flags().BoolVar(&generateStats, "stats", false, "print batch quality statistics")
	generateCmd.Flags().BoolVar(&generateCopy, "copy", false, "copy the first secret to the clipboard")
	generateCmd.Flags().DurationVar(&generateCopyTimeout, "copy-timeout", 0, "how long the clipboard keeps the secret (default 45s)")
}
