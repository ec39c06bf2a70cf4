package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/checklist"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Manual verification checklist that unlocks shipping",
}

var checklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every check and whether it passed",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		results := d.checklist.Results()
		out := cmd.OutOrStdout()
		for _, item := range checklist.Items {
			mark := " "
			if results[item.ID] {
				mark = "x"
			}
			fmt.Fprintf(out, "[%s] %-20s %s\n", mark, item.ID, item.Label)
		}
		fmt.Fprintf(out, "\nTests Passed: %d / %d\n", d.checklist.Passed(), len(checklist.Items))
	},
}

var checklistPassCmd = &cobra.Command{
	Use:   "pass <check-id>...",
	Short: "Mark checks as passed",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		setChecks(args, true)
	},
}

var checklistFailCmd = &cobra.Command{
	Use:   "fail <check-id>...",
	Short: "Mark checks as not passed",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		setChecks(args, false)
	},
}

var checklistResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every check",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		if err := d.checklist.Reset(); err != nil {
			d.logger.Fatal("resetting checklist", zap.Error(err))
		}
		d.logger.Info("checklist reset")
	},
}

func init() {
	rootCmd.AddCommand(checklistCmd)
	checklistCmd.AddCommand(checklistListCmd, checklistPassCmd, checklistFailCmd, checklistResetCmd)
}

func setChecks(ids []string, passed bool) {
	d := setup()
	defer d.close()

	for _, id := range ids {
		err := d.checklist.SetPassed(id, passed)
		if errors.Is(err, checklist.ErrUnknownTest) {
			d.logger.Warn("skipping unknown check", zap.String("check", id))
			continue
		}
		if err != nil {
			d.logger.Fatal("updating checklist", zap.String("check", id), zap.Error(err))
		}
	}

	d.logger.Info("checklist updated",
		zap.Int("passed", d.checklist.Passed()),
		zap.Int("total", len(checklist.Items)),
		zap.Bool("all_passed", d.checklist.AllPassed()),
	)
}
