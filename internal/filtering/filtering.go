// Package filtering narrows and orders the job catalog. Filtering is an AND
// of independent steps; every step is skipped when its criterion is empty or
// "all".
package filtering

import (
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/matching"
	"github.com/spigell/jobtracker/internal/preferences"
	"github.com/spigell/jobtracker/internal/tracker"
)

// All is the sentinel that disables a criterion.
const All = "all"

// ScoredJob is a catalog job with its match score for the current profile.
type ScoredJob struct {
	catalog.Job
	MatchScore int `json:"matchScore"`
}

// Criteria is the filter bar state.
type Criteria struct {
	Keyword     string  `mapstructure:"keyword"`
	Location    string  `mapstructure:"location"`
	Mode        string  `mapstructure:"mode"`
	Experience  string  `mapstructure:"experience"`
	Source      string  `mapstructure:"source"`
	Status      string  `mapstructure:"status"`
	OnlyMatches bool    `mapstructure:"only-matches"`
	Sort        SortKey `mapstructure:"sort"`
}

// DefaultCriteria matches the cleared filter bar.
func DefaultCriteria() Criteria {
	return Criteria{
		Location:   All,
		Mode:       All,
		Experience: All,
		Source:     All,
		Status:     All,
		Sort:       SortLatest,
	}
}

// StatusLookup returns the tracked status of a job.
type StatusLookup interface {
	Status(jobID int) tracker.Status
}

// Filter represents a single filtering step applied to scored jobs.
type Filter interface {
	Name() string
	IsEnabled() bool
	Apply(jobs []ScoredJob) ([]ScoredJob, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Pipeline scores, filters and sorts a catalog.
type Pipeline struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{logger: logger}
}

// Apply is Pipeline.Apply without logging.
func Apply(jobs []catalog.Job, c Criteria, p *preferences.Profile, statuses StatusLookup) []ScoredJob {
	return New(nil).Apply(jobs, c, p, statuses)
}

// Apply scores every job, runs the enabled steps in order and sorts the
// survivors by c.Sort. The input slice is not modified.
func (pl *Pipeline) Apply(jobs []catalog.Job, c Criteria, p *preferences.Profile, statuses StatusLookup) []ScoredJob {
	scored := ScoreAll(jobs, p)

	for _, step := range Steps(c, p, statuses) {
		if !step.IsEnabled() {
			continue
		}

		next, info := step.Apply(scored)
		pl.logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		scored = next
	}

	Sort(scored, c.Sort)
	return scored
}

// ScoreAll pairs every job with its score, keeping catalog order.
func ScoreAll(jobs []catalog.Job, p *preferences.Profile) []ScoredJob {
	out := make([]ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, ScoredJob{Job: job, MatchScore: matching.Score(job, p)})
	}
	return out
}

func active(criterion string) bool {
	return criterion != "" && criterion != All
}
