package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/filtering"
	"github.com/spigell/jobtracker/internal/logger"
	"github.com/spigell/jobtracker/internal/matching"
	"github.com/spigell/jobtracker/internal/tracker"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse the job catalog",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs filtered and sorted by the given criteria",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		criteria, err := criteriaFromFlags(cmd.Flags())
		if err != nil {
			d.logger.Fatal("parsing filters", zap.Error(err))
		}

		jobs := d.catalog.Items
		if onlySaved, _ := cmd.Flags().GetBool("saved"); onlySaved {
			jobs = d.catalog.Subset(d.saved.IDs())
		}

		profile := d.prefs.Load()
		if criteria.OnlyMatches && profile == nil {
			d.logger.Warn("no preferences set, --only-matches is ignored",
				zap.String("hint", "run 'jobtracker prefs set' first"),
			)
		}

		result := filtering.New(d.logger).Apply(jobs, criteria, profile, d.tracker)
		d.logger.Info("jobs listed", zap.Int("count", len(result)), zap.Int("catalog", len(jobs)))

		printJobs(cmd.OutOrStdout(), result, d.tracker.All(), d.saved.IDs())
	},
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show a job with its match breakdown",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := setup()
		defer d.close()

		job := d.job(parseJobID(d, args[0]))
		profile := d.prefs.Load()
		score := matching.Score(job, profile)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s at %s (#%d)\n", job.Title, job.Company, job.ID)
		fmt.Fprintf(out, "Location:   %s (%s)\n", job.Location, job.Mode)
		fmt.Fprintf(out, "Experience: %s\n", job.Experience)
		fmt.Fprintf(out, "Salary:     %s\n", job.SalaryRange)
		fmt.Fprintf(out, "Posted:     %s on %s\n", job.PostedLabel(), job.Source)
		fmt.Fprintf(out, "Skills:     %s\n", strings.Join(job.Skills, ", "))
		fmt.Fprintf(out, "Status:     %s\n", d.tracker.Status(job.ID))
		fmt.Fprintf(out, "Saved:      %t\n", d.saved.Contains(job.ID))
		if profile != nil {
			fmt.Fprintf(out, "Match:      %d%% (%s)\n", score, matching.TierOf(score))
			fmt.Fprintf(out, "Signals:    %s\n", strings.Join(matching.Breakdown(job, profile), ", "))
		}
		fmt.Fprintf(out, "Apply:      %s\n\n%s\n", job.ApplyURL, job.Description)
	},
}

var jobsExplainCmd = &cobra.Command{
	Use:   "explain <job-id>",
	Short: "Ask Gemini to explain how well a job fits your preferences",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := setup()
		defer d.close()

		job := d.job(parseJobID(d, args[0]))

		explainer, err := d.explainer()
		if err != nil {
			d.logger.Fatal("building ai explainer", zap.Error(err))
		}

		text, err := explainer.Explain(d.ctx, job, d.prefs.Load())
		if err != nil {
			d.logger.Fatal("explaining job fit", append(logger.JobFields(job), zap.Error(err))...)
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsShowCmd, jobsExplainCmd)

	addCriteriaFlags(jobsListCmd.Flags())
	jobsListCmd.Flags().Bool("saved", false, "list saved jobs only")
}

func addCriteriaFlags(flags *pflag.FlagSet) {
	defaults := filtering.DefaultCriteria()
	flags.StringP("keyword", "k", defaults.Keyword, "substring of title or company")
	flags.String("location", defaults.Location, "exact location or 'all'")
	flags.String("mode", defaults.Mode, "Remote, Hybrid, Onsite or 'all'")
	flags.String("experience", defaults.Experience, "experience bucket or 'all'")
	flags.String("source", defaults.Source, "job source or 'all'")
	flags.String("status", defaults.Status, "application status or 'all'")
	flags.BoolP("only-matches", "m", defaults.OnlyMatches, "hide jobs below your minimum match score")
	flags.StringP("sort", "s", string(defaults.Sort), "one of "+sortKeyList())
}

// criteriaFromFlags decodes the filter flags into Criteria through their
// mapstructure tags.
func criteriaFromFlags(flags *pflag.FlagSet) (filtering.Criteria, error) {
	criteria := filtering.DefaultCriteria()

	values := map[string]any{}
	var visitErr error
	flags.VisitAll(func(f *pflag.Flag) {
		switch f.Value.Type() {
		case "bool":
			v, err := strconv.ParseBool(f.Value.String())
			if err != nil && visitErr == nil {
				visitErr = fmt.Errorf("flag --%s: %w", f.Name, err)
			}
			values[f.Name] = v
		default:
			values[f.Name] = f.Value.String()
		}
	})
	if visitErr != nil {
		return criteria, visitErr
	}

	if err := mapstructure.Decode(values, &criteria); err != nil {
		return criteria, fmt.Errorf("decode filters: %w", err)
	}

	sortKey, ok := filtering.ParseSortKey(string(criteria.Sort))
	if !ok {
		return criteria, fmt.Errorf("unknown sort %q, expected one of %s", criteria.Sort, sortKeyList())
	}
	criteria.Sort = sortKey

	if criteria.Status != "" && criteria.Status != filtering.All {
		status, err := tracker.ParseStatus(criteria.Status)
		if err != nil {
			return criteria, err
		}
		criteria.Status = string(status)
	}

	return criteria, nil
}

func sortKeyList() string {
	keys := make([]string, 0, len(filtering.SortKeys))
	for _, k := range filtering.SortKeys {
		keys = append(keys, string(k))
	}
	return strings.Join(keys, ", ")
}

func parseJobID(d *deps, arg string) int {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil {
		d.logger.Fatal("job id must be a number", zap.String("arg", arg))
	}
	return id
}

func printJobs(w io.Writer, jobs []filtering.ScoredJob, statuses map[int]tracker.Status, savedIDs []int) {
	saved := make(map[int]bool, len(savedIDs))
	for _, id := range savedIDs {
		saved[id] = true
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tMODE\tSALARY\tPOSTED\tMATCH\tSTATUS\tSAVED")
	for _, job := range jobs {
		status, ok := statuses[job.ID]
		if !ok {
			status = tracker.NotApplied
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d%%\t%s\t%s\n",
			job.ID, job.Title, job.Company, job.Location, job.Mode, job.SalaryRange,
			job.PostedLabel(), job.MatchScore, status, savedMark(saved[job.ID]),
		)
	}
	_ = tw.Flush()
}

func savedMark(saved bool) string {
	if saved {
		return "*"
	}
	return ""
}
