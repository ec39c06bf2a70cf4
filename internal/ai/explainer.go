// Package ai defines the optional AI helpers built on top of the
// deterministic match score.
package ai

import (
	"context"

	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/preferences"
)

// Explainer writes a short human-readable explanation of how well a job fits
// the profile.
type Explainer interface {
	Explain(ctx context.Context, job catalog.Job, p *preferences.Profile) (string, error)
}
