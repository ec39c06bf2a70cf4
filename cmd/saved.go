package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/filtering"
	"github.com/spigell/jobtracker/internal/logger"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved jobs",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved jobs in the order they were saved",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		jobs := filtering.ScoreAll(d.catalog.Subset(d.saved.IDs()), d.prefs.Load())
		if len(jobs) == 0 {
			d.logger.Info("no saved jobs")
			return
		}

		printJobs(cmd.OutOrStdout(), jobs, d.tracker.All(), d.saved.IDs())
	},
}

var savedAddCmd = &cobra.Command{
	Use:   "add <job-id>",
	Short: "Save a job",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		d := setup()
		defer d.close()

		job := d.job(parseJobID(d, args[0]))
		if err := d.saved.Add(job.ID); err != nil {
			d.logger.Fatal("saving job", append(logger.JobFields(job), zap.Error(err))...)
		}
		d.logger.Info("job saved", logger.JobFields(job)...)
	},
}

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job from the saved list",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		d := setup()
		defer d.close()

		id := parseJobID(d, args[0])
		if err := d.saved.Remove(id); err != nil {
			d.logger.Fatal("removing saved job", zap.Int(logger.FieldJobID, id), zap.Error(err))
		}
		d.logger.Info("job removed from saved", zap.Int(logger.FieldJobID, id))
	},
}

var savedToggleCmd = &cobra.Command{
	Use:   "toggle <job-id>",
	Short: "Save the job if it is not saved, otherwise remove it",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		d := setup()
		defer d.close()

		job := d.job(parseJobID(d, args[0]))
		isSaved, err := d.saved.Toggle(job.ID)
		if err != nil {
			d.logger.Fatal("toggling saved job", append(logger.JobFields(job), zap.Error(err))...)
		}
		d.logger.Info("saved state changed", append(logger.JobFields(job), zap.Bool("saved", isSaved))...)
	},
}

func init() {
	rootCmd.AddCommand(savedCmd)
	savedCmd.AddCommand(savedListCmd, savedAddCmd, savedRemoveCmd, savedToggleCmd)
}
