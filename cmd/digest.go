package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/digest"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Today's top matches, generated once per day",
}

var digestGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's digest or print the one already generated",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		result, err := d.digests.GetOrGenerate(d.catalog.Items, d.prefs.Load())
		if err != nil {
			d.logger.Fatal("generating digest", zap.Error(err))
		}
		if result == nil {
			d.logger.Info("set preferences to generate a personalized digest",
				zap.String("hint", "run 'jobtracker prefs set'"),
			)
			return
		}

		fmt.Fprint(cmd.OutOrStdout(), digest.PlainText(result))
	},
}

var digestShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print today's digest without generating it",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		today := todayDigest(d)
		if today == nil {
			return
		}

		fmt.Fprint(cmd.OutOrStdout(), digest.PlainText(today))
	},
}

var digestMailtoCmd = &cobra.Command{
	Use:   "mailto",
	Short: "Print a mail draft link for today's digest",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		today := todayDigest(d)
		if today == nil {
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), digest.MailtoLink(today))
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.AddCommand(digestGenerateCmd, digestShowCmd, digestMailtoCmd)
}

func todayDigest(d *deps) *digest.Digest {
	today := d.digests.Today()
	if today == nil {
		d.logger.Info("no digest generated yet today", zap.String("hint", "run 'jobtracker digest generate'"))
	}
	return today
}
