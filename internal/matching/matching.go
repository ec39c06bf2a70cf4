// Package matching computes the match score of a job against a preference
// profile. The score is a sum of independent rule awards clamped to 0..100.
package matching

import (
	"slices"
	"strings"

	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/preferences"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Rule awards Weight points when Match holds. Rules never look at each other,
// so evaluation order does not change the total.
type Rule struct {
	Name   string
	Weight int
	Match  func(job catalog.Job, in Input) bool
}

// Input is the profile parsed once per scoring pass.
type Input struct {
	Keywords   []string
	Skills     []string
	Locations  []string
	Modes      []string
	Experience string
}

// NewInput parses the free-text fields of the profile.
func NewInput(p *preferences.Profile) Input {
	return Input{
		Keywords:   p.Keywords(),
		Skills:     p.SkillList(),
		Locations:  p.PreferredLocations,
		Modes:      p.PreferredMode,
		Experience: p.ExperienceLevel,
	}
}

// Rules is the fixed scoring table. Its weights add up to MaxScore.
var Rules = []Rule{
	{Name: "title_keyword", Weight: 25, Match: titleKeyword},
	{Name: "description_keyword", Weight: 15, Match: descriptionKeyword},
	{Name: "location", Weight: 15, Match: location},
	{Name: "mode", Weight: 10, Match: mode},
	{Name: "experience", Weight: 10, Match: experience},
	{Name: "skills_overlap", Weight: 15, Match: skillsOverlap},
	{Name: "fresh", Weight: 5, Match: fresh},
	{Name: "linkedin_source", Weight: 5, Match: linkedIn},
}

// Score returns the match score of job for profile; a nil profile scores 0.
func Score(job catalog.Job, p *preferences.Profile) int {
	return ScoreWith(Rules, job, p)
}

// ScoreWith scores using an explicit rule list.
func ScoreWith(rules []Rule, job catalog.Job, p *preferences.Profile) int {
	if p == nil {
		return 0
	}

	in := NewInput(p)
	total := 0
	for _, rule := range rules {
		if rule.Match(job, in) {
			total += rule.Weight
		}
	}

	return clamp(total)
}

// Breakdown lists the names of the rules that fired for job, in table order.
func Breakdown(job catalog.Job, p *preferences.Profile) []string {
	if p == nil {
		return nil
	}

	in := NewInput(p)
	var hits []string
	for _, rule := range Rules {
		if rule.Match(job, in) {
			hits = append(hits, rule.Name)
		}
	}
	return hits
}

func clamp(score int) int {
	return max(MinScore, min(score, MaxScore))
}

func containsAny(text string, needles []string) bool {
	text = strings.ToLower(text)
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func titleKeyword(job catalog.Job, in Input) bool {
	return containsAny(job.Title, in.Keywords)
}

func descriptionKeyword(job catalog.Job, in Input) bool {
	return containsAny(job.Description, in.Keywords)
}

func location(job catalog.Job, in Input) bool {
	return slices.Contains(in.Locations, job.Location)
}

func mode(job catalog.Job, in Input) bool {
	return slices.Contains(in.Modes, job.Mode)
}

func experience(job catalog.Job, in Input) bool {
	return in.Experience != "" && job.Experience == in.Experience
}

func skillsOverlap(job catalog.Job, in Input) bool {
	for _, userSkill := range in.Skills {
		for _, jobSkill := range job.Skills {
			js := strings.ToLower(jobSkill)
			if strings.Contains(js, userSkill) || strings.Contains(userSkill, js) {
				return true
			}
		}
	}
	return false
}

func fresh(job catalog.Job, _ Input) bool {
	return job.PostedDaysAgo <= 2
}

func linkedIn(job catalog.Job, _ Input) bool {
	return job.Source == catalog.SourceLinkedIn
}
