package cmd

import (
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/logger"
	"github.com/spigell/jobtracker/internal/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Track application status per job",
}

var statusGetCmd = &cobra.Command{
	Use:   "get <job-id>",
	Short: "Print the status of a job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := setup()
		defer d.close()

		job := d.job(parseJobID(d, args[0]))
		fmt.Fprintln(cmd.OutOrStdout(), d.tracker.Status(job.ID))
	},
}

var statusSetCmd = &cobra.Command{
	Use:   "set <job-id> [status]",
	Short: "Change the status of a job; asks interactively when status is omitted",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(_ *cobra.Command, args []string) {
		d := setup()
		defer d.close()

		job := d.job(parseJobID(d, args[0]))

		var (
			status tracker.Status
			err    error
		)
		if len(args) == 2 {
			status, err = tracker.ParseStatus(args[1])
		} else {
			status, err = promptStatus(d.tracker.Status(job.ID))
		}
		if err != nil {
			d.logger.Fatal("choosing a status", append(logger.JobFields(job), zap.Error(err))...)
		}

		if err := d.tracker.Update(job, status); err != nil {
			d.logger.Fatal("updating status", append(logger.JobFields(job), zap.Error(err))...)
		}
	},
}

var statusHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent status changes, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries := d.tracker.History(limit)
		if len(entries) == 0 {
			d.logger.Info("no status changes recorded yet")
			return
		}

		now := time.Now()
		out := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintf(out, "%-12s %s at %s (#%d), %s\n",
				e.Status, e.JobTitle, e.Company, e.JobID, tracker.FormatRelative(e.Timestamp, now))
		}
	},
}

var statusClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset every status and the history",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		if err := d.tracker.Clear(); err != nil {
			d.logger.Fatal("clearing statuses", zap.Error(err))
		}
		d.logger.Info("statuses cleared")
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.AddCommand(statusGetCmd, statusSetCmd, statusHistoryCmd, statusClearCmd)

	statusHistoryCmd.Flags().IntP("limit", "n", tracker.DefaultHistoryLimit, "number of entries to show")
}

func promptStatus(current tracker.Status) (tracker.Status, error) {
	items := make([]string, 0, len(tracker.Statuses))
	cursor := 0
	for i, s := range tracker.Statuses {
		items = append(items, string(s))
		if s == current {
			cursor = i
		}
	}

	prompt := promptui.Select{
		Label:     fmt.Sprintf("Status (currently %s)", current),
		Items:     items,
		CursorPos: cursor,
	}

	_, selected, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return tracker.ParseStatus(selected)
}
