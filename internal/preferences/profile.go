// Package preferences holds the user's preference profile used for scoring
// and match-based filtering.
package preferences

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/store"
)

// DefaultMinMatchScore is the threshold a new profile starts with.
const DefaultMinMatchScore = 40

// Profile is the persisted preference document. A nil *Profile means the user
// has not configured anything and no personalization happens.
type Profile struct {
	RoleKeywords       string   `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredMode      []string `json:"preferredMode"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             string   `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore"`
}

// New returns an empty profile with the default threshold.
func New() *Profile {
	return &Profile{
		PreferredLocations: []string{},
		PreferredMode:      []string{},
		MinMatchScore:      DefaultMinMatchScore,
	}
}

// Keywords returns the parsed role keywords.
func (p *Profile) Keywords() []string {
	if p == nil {
		return nil
	}
	return ParseList(p.RoleKeywords)
}

// SkillList returns the parsed user skills.
func (p *Profile) SkillList() []string {
	if p == nil {
		return nil
	}
	return ParseList(p.Skills)
}

// Validate checks the threshold range.
func (p *Profile) Validate() error {
	if p.MinMatchScore < 0 || p.MinMatchScore > 100 {
		return fmt.Errorf("minMatchScore must be 0..100, got %d", p.MinMatchScore)
	}
	return nil
}

// ParseList splits comma-separated text, trims and lower-cases every token
// and drops empty ones.
func ParseList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

// SplitList splits comma-separated text keeping the original case, for set
// valued fields such as locations.
func SplitList(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// Repository loads and saves the profile through a store.
type Repository struct {
	store  store.Store
	logger *zap.Logger
}

func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{store: s, logger: logger}
}

// Load returns the saved profile or nil when there is none or it is unreadable.
func (r *Repository) Load() *Profile {
	var p Profile
	if !store.Read(r.store, store.KeyPreferences, &p, r.logger) {
		return nil
	}

	if p.PreferredLocations == nil {
		p.PreferredLocations = []string{}
	}
	if p.PreferredMode == nil {
		p.PreferredMode = []string{}
	}

	return &p
}

// Save validates and persists the whole profile.
func (r *Repository) Save(p *Profile) error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if err := store.Write(r.store, store.KeyPreferences, p); err != nil {
		return err
	}

	r.logger.Debug("preferences saved",
		zap.Int("locations", len(p.PreferredLocations)),
		zap.Int("modes", len(p.PreferredMode)),
		zap.Int("min_match_score", p.MinMatchScore),
	)
	return nil
}

// Clear removes the profile, returning to the unpersonalized state.
func (r *Repository) Clear() error {
	return r.store.Remove(store.KeyPreferences)
}
