// Package checklist is the manual verification checklist whose completion
// unlocks shipping.
package checklist

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/store"
)

// ErrUnknownTest is returned for ids that are not part of Items.
var ErrUnknownTest = errors.New("unknown checklist item")

// Item is one manual verification step.
type Item struct {
	ID    string
	Label string
	Hint  string
}

// Items is the fixed checklist, in display order.
var Items = []Item{
	{ID: "preferences-persist", Label: "Preferences persist after refresh", Hint: "Save preferences, reload, confirm values are kept."},
	{ID: "match-score", Label: "Match score calculates correctly", Hint: "Compare a job's score against the scoring table."},
	{ID: "show-only-matches", Label: "\"Show only matches\" toggle works", Hint: "Only jobs at or above the threshold remain."},
	{ID: "save-persist", Label: "Save job persists after refresh", Hint: "Save a job, reload, confirm it is still saved."},
	{ID: "apply-new-tab", Label: "Apply opens in a new tab", Hint: "The apply link opens the posting."},
	{ID: "status-persist", Label: "Status update persists after refresh", Hint: "Change a status, reload, confirm it is kept."},
	{ID: "status-filter", Label: "Status filter works correctly", Hint: "Filter by Applied and check the list."},
	{ID: "digest-top10", Label: "Digest generates top 10 by score", Hint: "Digest lists at most ten jobs, best first."},
	{ID: "digest-persist", Label: "Digest persists for the day", Hint: "Generating twice in a day returns the same digest."},
	{ID: "no-errors", Label: "No errors in the log", Hint: "Run every command without warnings."},
}

// Checklist stores which items passed.
type Checklist struct {
	store  store.Store
	logger *zap.Logger
}

func New(s store.Store, logger *zap.Logger) *Checklist {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checklist{store: s, logger: logger}
}

// Results returns the pass state of every item; items without a stored
// result have not passed.
func (c *Checklist) Results() map[string]bool {
	var stored map[string]bool
	store.Read(c.store, store.KeyTestChecklist, &stored, c.logger)

	out := make(map[string]bool, len(Items))
	for _, item := range Items {
		out[item.ID] = stored[item.ID]
	}
	return out
}

// SetPassed records the result of one item.
func (c *Checklist) SetPassed(id string, passed bool) error {
	if !known(id) {
		return fmt.Errorf("%w: %q", ErrUnknownTest, id)
	}

	results := c.Results()
	results[id] = passed
	return store.Write(c.store, store.KeyTestChecklist, results)
}

// Reset clears every result.
func (c *Checklist) Reset() error {
	return c.store.Remove(store.KeyTestChecklist)
}

// Passed counts passed items.
func (c *Checklist) Passed() int {
	n := 0
	for _, ok := range c.Results() {
		if ok {
			n++
		}
	}
	return n
}

// AllPassed is the readiness signal consumed by the submission gate.
func (c *Checklist) AllPassed() bool {
	return c.Passed() == len(Items)
}

func known(id string) bool {
	for _, item := range Items {
		if item.ID == id {
			return true
		}
	}
	return false
}
