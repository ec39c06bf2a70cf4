package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/preferences"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage the preference profile used for match scoring",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored preferences as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		p := d.prefs.Load()
		if p == nil {
			d.logger.Info("no preferences set", zap.String("hint", "run 'jobtracker prefs set'"))
			return
		}

		pretty, _ := json.MarshalIndent(p, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences; only the given flags change",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		p := d.prefs.Load()
		if p == nil {
			p = preferences.New()
		}

		if err := applyPrefsFlags(cmd, p); err != nil {
			d.logger.Fatal("parsing preferences", zap.Error(err))
		}

		if err := d.prefs.Save(p); err != nil {
			d.logger.Fatal("saving preferences", zap.Error(err))
		}

		d.logger.Info("preferences saved",
			zap.Strings("keywords", p.Keywords()),
			zap.Strings("locations", p.PreferredLocations),
			zap.Int("min_match_score", p.MinMatchScore),
		)
	},
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the preference profile",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		if err := d.prefs.Clear(); err != nil {
			d.logger.Fatal("clearing preferences", zap.Error(err))
		}
		d.logger.Info("preferences cleared")
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsSetCmd, prefsClearCmd)

	flags := prefsSetCmd.Flags()
	flags.String("keywords", "", "comma-separated role keywords")
	flags.String("locations", "", "comma-separated preferred locations")
	flags.String("modes", "", "comma-separated preferred modes (Remote, Hybrid, Onsite)")
	flags.String("experience", "", "experience bucket, empty for any")
	flags.String("skills", "", "comma-separated skills")
	flags.Int("min-score", preferences.DefaultMinMatchScore, "minimum match score for --only-matches (0-100)")
}

func applyPrefsFlags(cmd *cobra.Command, p *preferences.Profile) error {
	flags := cmd.Flags()

	if flags.Changed("keywords") {
		p.RoleKeywords, _ = flags.GetString("keywords")
	}
	if flags.Changed("locations") {
		v, _ := flags.GetString("locations")
		p.PreferredLocations = preferences.SplitList(v)
	}
	if flags.Changed("modes") {
		v, _ := flags.GetString("modes")
		p.PreferredMode = preferences.SplitList(v)
	}
	if flags.Changed("experience") {
		p.ExperienceLevel, _ = flags.GetString("experience")
	}
	if flags.Changed("skills") {
		p.Skills, _ = flags.GetString("skills")
	}
	if flags.Changed("min-score") {
		p.MinMatchScore, _ = flags.GetInt("min-score")
	}

	return p.Validate()
}
