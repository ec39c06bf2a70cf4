package tracker

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/store"
)

// Tracker reads and writes the status map and history through a store.
type Tracker struct {
	store  store.Store
	logger *zap.Logger
	// Clock stamps history entries.
	Clock func() time.Time
}

func New(s store.Store, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{store: s, logger: logger, Clock: time.Now}
}

// All returns every stored status. Unknown values in storage are skipped.
func (t *Tracker) All() map[int]Status {
	var raw map[string]string
	out := make(map[int]Status)
	if !store.Read(t.store, store.KeyStatus, &raw, t.logger) {
		return out
	}

	for key, value := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			t.logger.Warn("skipping stored status with invalid job id", zap.String("job_id", key))
			continue
		}
		st, err := ParseStatus(value)
		if err != nil {
			t.logger.Warn("skipping unknown stored status", zap.Int("job_id", id), zap.String("status", value))
			continue
		}
		out[id] = st
	}
	return out
}

// Status returns the status of jobID, NotApplied when none is stored.
func (t *Tracker) Status(jobID int) Status {
	if st, ok := t.All()[jobID]; ok {
		return st
	}
	return NotApplied
}

// Set overwrites the status of jobID without touching history. Use Update for
// user-driven changes.
func (t *Tracker) Set(jobID int, status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("unknown application status %q", status)
	}

	statuses := t.All()
	statuses[jobID] = status
	return store.Write(t.store, store.KeyStatus, encodeStatuses(statuses))
}

// RecordHistory prepends a change to the history, keeping the newest
// HistoryCapacity entries.
func (t *Tracker) RecordHistory(jobID int, status Status, title, company string) error {
	h := t.history()
	h.Push(HistoryEntry{
		JobID:     jobID,
		JobTitle:  title,
		Company:   company,
		Status:    status,
		Timestamp: t.Clock().UTC(),
	})
	return store.Write(t.store, store.KeyStatusHistory, h.Entries())
}

// Update sets the status of job and records the change. When the history
// write fails the previous status map is restored, so either both writes
// happen or neither does.
func (t *Tracker) Update(job catalog.Job, status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("unknown application status %q", status)
	}

	previous, hadPrevious, err := t.store.Get(store.KeyStatus)
	if err != nil {
		return fmt.Errorf("read %s: %w", store.KeyStatus, err)
	}

	from := t.Status(job.ID)
	if err := t.Set(job.ID, status); err != nil {
		return err
	}

	if err := t.RecordHistory(job.ID, status, job.Title, job.Company); err != nil {
		if rbErr := t.restore(previous, hadPrevious); rbErr != nil {
			t.logger.Error("restoring status map failed", zap.Int("job_id", job.ID), zap.Error(rbErr))
		}
		return fmt.Errorf("record history: %w", err)
	}

	t.logger.Info("status changed",
		zap.Int("job_id", job.ID),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)
	return nil
}

// History returns up to limit entries, newest first; limit <= 0 means
// DefaultHistoryLimit.
func (t *Tracker) History(limit int) []HistoryEntry {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	entries := t.history().Entries()
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Clear removes all statuses and the history.
func (t *Tracker) Clear() error {
	if err := t.store.Remove(store.KeyStatus); err != nil {
		return fmt.Errorf("remove %s: %w", store.KeyStatus, err)
	}
	if err := t.store.Remove(store.KeyStatusHistory); err != nil {
		return fmt.Errorf("remove %s: %w", store.KeyStatusHistory, err)
	}
	return nil
}

func (t *Tracker) history() *History {
	var entries []HistoryEntry
	store.Read(t.store, store.KeyStatusHistory, &entries, t.logger)
	return NewHistory(HistoryCapacity, entries)
}

func (t *Tracker) restore(previous []byte, existed bool) error {
	if !existed {
		return t.store.Remove(store.KeyStatus)
	}
	return t.store.Set(store.KeyStatus, previous)
}

func encodeStatuses(statuses map[int]Status) map[string]Status {
	out := make(map[string]Status, len(statuses))
	for id, st := range statuses {
		out[strconv.Itoa(id)] = st
	}
	return out
}
