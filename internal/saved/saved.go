// Package saved keeps the user's bookmarked jobs, independent of status.
package saved

import (
	"slices"

	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/store"
)

// Set is the persisted list of saved job ids in the order they were saved.
type Set struct {
	store  store.Store
	logger *zap.Logger
}

func New(s store.Store, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Set{store: s, logger: logger}
}

// IDs returns the saved ids without duplicates.
func (s *Set) IDs() []int {
	var ids []int
	if !store.Read(s.store, store.KeySavedJobs, &ids, s.logger) {
		return []int{}
	}

	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Set) Contains(id int) bool {
	return slices.Contains(s.IDs(), id)
}

// Add saves id; saving an already saved id changes nothing.
func (s *Set) Add(id int) error {
	ids := s.IDs()
	if slices.Contains(ids, id) {
		return nil
	}
	return store.Write(s.store, store.KeySavedJobs, append(ids, id))
}

func (s *Set) Remove(id int) error {
	ids := s.IDs()
	idx := slices.Index(ids, id)
	if idx < 0 {
		return nil
	}
	return store.Write(s.store, store.KeySavedJobs, slices.Delete(ids, idx, idx+1))
}

// Toggle flips the saved state of id and reports the new state.
func (s *Set) Toggle(id int) (bool, error) {
	if s.Contains(id) {
		return false, s.Remove(id)
	}
	return true, s.Add(id)
}
