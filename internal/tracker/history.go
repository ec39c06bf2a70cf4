package tracker

import (
	"fmt"
	"time"
)

// HistoryCapacity is the number of status changes kept.
const HistoryCapacity = 50

// DefaultHistoryLimit is how many entries History returns when no limit is given.
const DefaultHistoryLimit = 10

// HistoryEntry is one status change.
type HistoryEntry struct {
	JobID     int       `json:"jobId"`
	JobTitle  string    `json:"jobTitle"`
	Company   string    `json:"company"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// History is a fixed-capacity buffer ordered newest first. Pushing into a
// full buffer evicts the oldest entry.
type History struct {
	capacity int
	entries  []HistoryEntry
}

// NewHistory returns a buffer holding at most capacity entries, seeded with
// entries (already newest first); extra old entries are dropped.
func NewHistory(capacity int, entries []HistoryEntry) *History {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}

	h := &History{capacity: capacity, entries: make([]HistoryEntry, 0, capacity)}
	for i := 0; i < len(entries) && i < capacity; i++ {
		h.entries = append(h.entries, entries[i])
	}
	return h
}

// Push prepends e.
func (h *History) Push(e HistoryEntry) {
	if len(h.entries) == h.capacity {
		h.entries = h.entries[:h.capacity-1]
	}
	h.entries = append(h.entries, HistoryEntry{})
	copy(h.entries[1:], h.entries[:len(h.entries)-1])
	h.entries[0] = e
}

// Entries returns a copy, newest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	return len(h.entries)
}

// FormatRelative renders ts relative to now the way the activity feed shows it.
func FormatRelative(ts, now time.Time) string {
	diff := now.Sub(ts)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return plural(minutes, "minute")
	case hours < 24:
		return plural(hours, "hour")
	case days < 7:
		return plural(days, "day")
	default:
		return ts.Format("Jan 2")
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
