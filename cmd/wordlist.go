package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/tuatara/internal/ui"
	"github.com/PolarWolf314/tuatara/internal/wordlist"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var wordlistCacheDir string

var wordlistCmd = &cobra.Command{
	Use:   "wordlist",
	Short: "Manage the cached EFF large wordlist",
	Long:  `Provides fetching, verification, and location of the cached wordlist used for passphrase generation.`,
}

var wordlistFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and cache the wordlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting wordlist fetch command")
		spinner, cleanup := startSpinner("Fetching wordlist...", verbose)
		defer cleanup()

		cacheDir, err := resolveCacheDir()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve cache directory: %v", err)
		}

		provider := newWordlistProvider(Logger)
		words, err := provider.Ensure(cmd.Context(), cacheDir)
		if err != nil {
			Logger.Errorf("Failed to obtain wordlist: %v", err)
			spinner.FinalMSG = color.RedString("✗") + " Failed to obtain the wordlist\n" +
				color.RedString("Error: ") + err.Error()
			return nil
		}

		spinner.FinalMSG = color.GreenString("✓") + " Wordlist ready: " +
			fmt.Sprintf("%d words at ", words.Len()) + ui.Path.Sprint(words.Path)
		return nil
	},
}

var wordlistVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the cached wordlist against the pinned checksum",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting wordlist verify command")

		cacheDir, err := resolveCacheDir()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve cache directory: %v", err)
		}
		cachePath := filepath.Join(cacheDir, wordlist.CacheFilename)

		contents, err := os.ReadFile(cachePath)
		if err != nil {
			fmt.Printf("%s No cached wordlist at %s\n%s Run %s first\n",
				color.RedString("✗"), ui.Path.Sprint(cachePath),
				color.CyanString("→"), ui.Code.Sprint("tuatara wordlist fetch"))
			return nil
		}

		provider := newWordlistProvider(Logger)
		if err := provider.Verify(contents); err != nil {
			fmt.Printf("%s Cached wordlist at %s failed verification\n%s Delete it and run %s again\n",
				color.RedString("✗"), ui.Path.Sprint(cachePath),
				color.CyanString("→"), ui.Code.Sprint("tuatara wordlist fetch"))
			return nil
		}

		fmt.Printf("%s Cached wordlist matches the pinned checksum\n", color.GreenString("✓"))
		return nil
	},
}

var wordlistPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache location of the wordlist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cacheDir, err := resolveCacheDir()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve cache directory: %v", err)
		}
		fmt.Println(filepath.Join(cacheDir, wordlist.CacheFilename))
		return nil
	},
}

func resolveCacheDir() (string, error) {
	if wordlistCacheDir != "" {
		return wordlistCacheDir, nil
	}
	return wordlist.DefaultCacheDir()
}

func init() {
	wordlistCmd.PersistentFlags().StringVar(&wordlistCacheDir, "cache-dir", "", "directory for the cached wordlist")

	wordlistCmd.AddCommand(wordlistFetchCmd)
	wordlistCmd.AddCommand(wordlistVerifyCmd)
	wordlistCmd.AddCommand(wordlistPathCmd)
}
