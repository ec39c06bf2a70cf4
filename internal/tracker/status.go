// Package tracker records the application status of every job and keeps a
// bounded audit trail of status changes.
//
// Status graph:
//
//	Not Applied ◄──► Applied ◄──► Rejected ◄──► Selected
//
// Every state is reachable from every other so mistakes can be corrected.
// A job without a stored status is Not Applied.
package tracker

import (
	"fmt"
	"strings"
)

// Status values are stored verbatim in the status map.
type Status string

const (
	NotApplied Status = "Not Applied"
	Applied    Status = "Applied"
	Rejected   Status = "Rejected"
	Selected   Status = "Selected"
)

// Statuses lists all states in display order.
var Statuses = []Status{NotApplied, Applied, Rejected, Selected}

var aliases = map[string]Status{
	"not applied": NotApplied,
	"not_applied": NotApplied,
	"applied":     Applied,
	"rejected":    Rejected,
	"selected":    Selected,
}

// ParseStatus accepts both the stored spelling ("Not Applied") and the enum
// spelling ("NOT_APPLIED"), case-insensitively.
func ParseStatus(s string) (Status, error) {
	if st, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsValid reports whether s is one of the four states.
func (s Status) IsValid() bool {
	switch s {
	case NotApplied, Applied, Rejected, Selected:
		return true
	}
	return false
}

// IsTransitionAllowed is true for any pair of valid states.
func IsTransitionAllowed(from, to Status) bool {
	return from.IsValid() && to.IsValid()
}
