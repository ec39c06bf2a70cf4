package filtering

import (
	"strings"

	"github.com/spigell/jobtracker/internal/preferences"
	"github.com/spigell/jobtracker/internal/tracker"
)

type predicateFilter struct {
	name    string
	enabled bool
	keep    func(ScoredJob) bool
}

func (f *predicateFilter) Name() string { return f.name }

func (f *predicateFilter) IsEnabled() bool { return f.enabled }

func (f *predicateFilter) Apply(jobs []ScoredJob) ([]ScoredJob, Step) {
	initial := len(jobs)
	kept := make([]ScoredJob, 0, initial)
	for _, job := range jobs {
		if f.keep(job) {
			kept = append(kept, job)
		}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

// Steps builds the filtering steps for the given criteria. Disabled steps are
// still returned so callers can report them.
func Steps(c Criteria, p *preferences.Profile, statuses StatusLookup) []Filter {
	return []Filter{
		NewKeyword(c.Keyword),
		newEquals("location", c.Location, func(j ScoredJob) string { return j.Location }),
		newEquals("mode", c.Mode, func(j ScoredJob) string { return j.Mode }),
		newEquals("experience", c.Experience, func(j ScoredJob) string { return j.Experience }),
		newEquals("source", c.Source, func(j ScoredJob) string { return j.Source }),
		NewStatus(c.Status, statuses),
		NewMatchThreshold(c.OnlyMatches, p),
	}
}

// NewKeyword keeps jobs whose title or company contains keyword, ignoring case.
func NewKeyword(keyword string) Filter {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	return &predicateFilter{
		name:    "keyword",
		enabled: needle != "",
		keep: func(j ScoredJob) bool {
			return strings.Contains(strings.ToLower(j.Title), needle) ||
				strings.Contains(strings.ToLower(j.Company), needle)
		},
	}
}

func newEquals(name, want string, field func(ScoredJob) string) Filter {
	return &predicateFilter{
		name:    name,
		enabled: active(want),
		keep:    func(j ScoredJob) bool { return field(j) == want },
	}
}

// NewStatus keeps jobs whose tracked status equals want. Without a lookup
// every job counts as not applied.
func NewStatus(want string, statuses StatusLookup) Filter {
	return &predicateFilter{
		name:    "status",
		enabled: active(want),
		keep: func(j ScoredJob) bool {
			current := tracker.NotApplied
			if statuses != nil {
				current = statuses.Status(j.ID)
			}
			return string(current) == want
		},
	}
}

// NewMatchThreshold keeps jobs scoring at least the profile threshold when
// only-matches is on. It is disabled without a profile.
func NewMatchThreshold(onlyMatches bool, p *preferences.Profile) Filter {
	threshold := 0
	if p != nil {
		threshold = p.MinMatchScore
	}
	return &predicateFilter{
		name:    "match_threshold",
		enabled: onlyMatches && p != nil,
		keep:    func(j ScoredJob) bool { return j.MatchScore >= threshold },
	}
}
