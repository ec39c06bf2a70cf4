// Package catalog holds the static list of job postings the tracker works on.
package catalog

import "strconv"

// Work modes.
const (
	ModeRemote = "Remote"
	ModeHybrid = "Hybrid"
	ModeOnsite = "Onsite"
)

// SourceLinkedIn is the only source that earns a scoring bonus.
const SourceLinkedIn = "LinkedIn"

// Job is an immutable job posting supplied by the catalog loader.
type Job struct {
	ID            int      `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Company       string   `json:"company" yaml:"company"`
	Location      string   `json:"location" yaml:"location"`
	Mode          string   `json:"mode" yaml:"mode"`
	Experience    string   `json:"experience" yaml:"experience"`
	SalaryRange   string   `json:"salaryRange" yaml:"salaryRange"`
	PostedDaysAgo int      `json:"postedDaysAgo" yaml:"postedDaysAgo"`
	Source        string   `json:"source" yaml:"source"`
	Skills        []string `json:"skills" yaml:"skills"`
	Description   string   `json:"description" yaml:"description"`
	ApplyURL      string   `json:"applyUrl" yaml:"applyUrl"`
}

// PostedLabel renders postedDaysAgo the way job cards show it.
func (j Job) PostedLabel() string {
	switch j.PostedDaysAgo {
	case 0:
		return "Today"
	case 1:
		return "1 day ago"
	default:
		return strconv.Itoa(j.PostedDaysAgo) + " days ago"
	}
}
