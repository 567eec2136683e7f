package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/tuatara/internal/profiles"
	"github.com/PolarWolf314/tuatara/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var profilesConfig string

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect generation profiles from the config file",
	Long:  `Lists and shows the named generation profiles defined in the TOML config file.`,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured profile names",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profiles list command")

		userProfiles, err := profiles.Load(profilesConfig)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load profiles: %v", err)
		}

		names := userProfiles.Names()
		if len(names) == 0 {
			path := profilesConfig
			if path == "" {
				path, _ = profiles.DefaultPath()
			}
			fmt.Printf("%s No profiles configured %s\n",
				color.YellowString("!"), ui.Muted.Sprintf("looked in %s", path))
			return nil
		}

		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the settings of one profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profiles show command")

		userProfiles, err := profiles.Load(profilesConfig)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load profiles: %v", err)
		}

		def, ok := userProfiles.Get(args[0])
		if !ok {
			fmt.Printf("%s Unknown profile %s\n", color.RedString("✗"), color.YellowString(args[0]))
			return nil
		}

		fmt.Println(ui.Highlight.Sprint(args[0]))
		printDefinition(def)
		return nil
	},
}

var profilesInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with example profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting profiles init command")

		path := profilesConfig
		if path == "" {
			var err error
			path, err = profiles.DefaultPath()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to resolve config path: %v", err)
			}
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Printf("%s Config already exists at %s\n", color.YellowString("!"), ui.Path.Sprint(path))
			return nil
		}

		if err := profiles.SaveTOML(path, profiles.Starter()); err != nil {
			return Logger.ErrorfAndReturn("Failed to write config: %v", err)
		}

		fmt.Printf("%s Wrote starter config to %s\n%s Edit it and run %s\n",
			color.GreenString("✓"), ui.Path.Sprint(path),
			color.CyanString("→"), ui.Code.Sprint("tuatara profiles list"))
		return nil
	},
}

// policies are built in, so list them alongside user profiles.
var profilesPoliciesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List built-in compliance policy presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range profiles.PolicyNames() {
			policy, err := profiles.LookupPolicy(name)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to look up policy %s: %v", name, err)
			}
			fmt.Printf("%s  %s\n", ui.Highlight.Sprint(policy.Name), policy.Description)
			fmt.Printf("  minimum length %d, recommended %.0f bits\n",
				policy.MinimumLength, policy.RecommendedBits)
		}
		return nil
	},
}

func printDefinition(def profiles.Definition) {
	if def.Length != nil {
		fmt.Printf("  length:          %d\n", *def.Length)
	}
	if def.Count != nil {
		fmt.Printf("  count:           %d\n", *def.Count)
	}
	if def.Allowed != nil {
		fmt.Printf("  allowed:         %s\n", *def.Allowed)
	}
	if def.AvoidRepeating != nil {
		fmt.Printf("  avoid_repeating: %t\n", *def.AvoidRepeating)
	}
	if def.UseWords != nil {
		fmt.Printf("  use_words:       %t\n", *def.UseWords)
	}
	if def.Separator != nil {
		fmt.Printf("  separator:       %q\n", *def.Separator)
	}
	if def.Pronounceable != nil {
		fmt.Printf("  pronounceable:   %t\n", *def.Pronounceable)
	}
	if def.Pattern != nil {
		fmt.Printf("  pattern:         %s\n", *def.Pattern)
	}
	if def.Looseness != nil {
		fmt.Printf("  looseness:       %d\n", *def.Looseness)
	}
	if def.Seed != nil {
		fmt.Printf("  seed:            %d\n", *def.Seed)
	}
}

func init() {
	profilesCmd.PersistentFlags().StringVar(&profilesConfig, "config", "", "path to the profiles config file")

	profilesCmd.AddCommand(profilesInitCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesPoliciesCmd)
}
