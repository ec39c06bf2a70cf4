// Package proof collects the submission links and guards the one-way
// "shipped" latch.
package proof

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/store"
)

// Submission is the persisted proof-of-work document.
type Submission struct {
	LovableURL  string `json:"lovableUrl"`
	GitHubURL   string `json:"githubUrl"`
	DeployedURL string `json:"deployedUrl"`
	IsShipped   bool   `json:"isShipped"`
}

// Stage summarizes progress for display.
type Stage string

const (
	StageNotStarted Stage = "Not Started"
	StageInProgress Stage = "In Progress"
	StageShipped    Stage = "Shipped"
)

// Readiness reports whether the verification tests are complete.
type Readiness interface {
	AllPassed() bool
}

// Link names accepted by SetLink.
const (
	LinkLovable  = "lovable"
	LinkGitHub   = "github"
	LinkDeployed = "deployed"
)

// ValidateURL accepts absolute http or https URLs with a host.
func ValidateURL(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	u, err := url.Parse(text)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && u.Hostname() != ""
}

// Links returns the three links in display order.
func (s Submission) Links() []string {
	return []string{s.LovableURL, s.GitHubURL, s.DeployedURL}
}

// LinksValid is true when every link is filled in with a valid URL.
func (s Submission) LinksValid() bool {
	for _, link := range s.Links() {
		if !ValidateURL(link) {
			return false
		}
	}
	return true
}

// Stage reports Shipped once latched, In Progress once any link is filled in.
func (s Submission) Stage() Stage {
	if s.IsShipped {
		return StageShipped
	}
	for _, link := range s.Links() {
		if strings.TrimSpace(link) != "" {
			return StageInProgress
		}
	}
	return StageNotStarted
}

// Gate loads and updates the submission.
type Gate struct {
	store     store.Store
	readiness Readiness
	logger    *zap.Logger
}

func NewGate(s store.Store, readiness Readiness, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{store: s, readiness: readiness, logger: logger}
}

// Submission returns the stored document or an empty one.
func (g *Gate) Submission() Submission {
	var s Submission
	store.Read(g.store, store.KeyProof, &s, g.logger)
	return s
}

// SetLink stores a link as typed, valid or not; callers render ValidateURL
// next to it. Editing links never clears the shipped latch.
func (g *Gate) SetLink(name, value string) error {
	s := g.Submission()
	value = strings.TrimSpace(value)

	switch strings.ToLower(name) {
	case LinkLovable:
		s.LovableURL = value
	case LinkGitHub:
		s.GitHubURL = value
	case LinkDeployed:
		s.DeployedURL = value
	default:
		return fmt.Errorf("unknown link %q", name)
	}

	return store.Write(g.store, store.KeyProof, s)
}

func (g *Gate) testsComplete() bool {
	return g.readiness != nil && g.readiness.AllPassed()
}

// CanShip is true when the tests are complete, all three links are valid and
// the submission is not shipped yet.
func (g *Gate) CanShip() bool {
	s := g.Submission()
	return g.testsComplete() && s.LinksValid() && !s.IsShipped
}

// Ship latches IsShipped when CanShip holds and reports whether the
// submission is shipped afterwards. Calling it when not eligible, or again
// after shipping, changes nothing.
func (g *Gate) Ship() (bool, error) {
	s := g.Submission()
	if s.IsShipped {
		return true, nil
	}

	if !g.CanShip() {
		g.logger.Debug("ship refused",
			zap.Bool("tests_complete", g.testsComplete()),
			zap.Bool("links_valid", s.LinksValid()),
		)
		return false, nil
	}

	s.IsShipped = true
	if err := store.Write(g.store, store.KeyProof, s); err != nil {
		return false, err
	}

	g.logger.Info("project shipped")
	return true, nil
}

// SubmissionText renders the links and status for copying.
func (g *Gate) SubmissionText() string {
	return FormatSubmission(g.Submission())
}

// FormatSubmission is the pure renderer behind SubmissionText.
func FormatSubmission(s Submission) string {
	orNone := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "(not provided)"
		}
		return v
	}

	var b strings.Builder
	b.WriteString("Job Notification Tracker - Final Submission\n\n")
	fmt.Fprintf(&b, "Lovable Project:\n%s\n\n", orNone(s.LovableURL))
	fmt.Fprintf(&b, "GitHub Repository:\n%s\n\n", orNone(s.GitHubURL))
	fmt.Fprintf(&b, "Live Deployment:\n%s\n\n", orNone(s.DeployedURL))
	fmt.Fprintf(&b, "Status: %s\n", s.Stage())
	return b.String()
}
