// Package digest builds the daily top matches and caches one digest per
// calendar date.
package digest

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/matching"
	"github.com/spigell/jobtracker/internal/preferences"
	"github.com/spigell/jobtracker/internal/store"
)

// Limit is the number of jobs a digest carries.
const Limit = 10

// DateLayout formats the date key.
const DateLayout = "2006-01-02"

// Job is a catalog job with the score it had when the digest was built.
type Job struct {
	catalog.Job
	MatchScore int `json:"matchScore"`
}

type Digest struct {
	DateKey     string    `json:"dateKey"`
	GeneratedAt time.Time `json:"generatedAt"`
	Jobs        []Job     `json:"jobs"`
	Limit       int       `json:"limit"`
}

// DateKey returns the calendar date of now in now's location.
func DateKey(now time.Time) string {
	return now.Format(DateLayout)
}

// Generate scores every job and keeps the best Limit, ties in input order.
// It returns nil without a profile and never consults the cache.
func Generate(jobs []catalog.Job, p *preferences.Profile, now time.Time) *Digest {
	if p == nil {
		return nil
	}

	scored := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		scored = append(scored, Job{Job: job, MatchScore: matching.Score(job, p)})
	}

	slices.SortStableFunc(scored, func(a, b Job) int {
		return b.MatchScore - a.MatchScore
	})

	if len(scored) > Limit {
		scored = scored[:Limit]
	}

	return &Digest{
		DateKey:     DateKey(now),
		GeneratedAt: now,
		Jobs:        scored,
		Limit:       Limit,
	}
}

// Cache keeps digests under a per-date store key.
type Cache struct {
	store  store.Store
	logger *zap.Logger
}

func NewCache(s store.Store, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{store: s, logger: logger}
}

// LoadToday returns the digest cached for the date of now, or nil.
// A stored document whose dateKey disagrees with its key is ignored.
func (c *Cache) LoadToday(now time.Time) *Digest {
	key := DateKey(now)

	var d Digest
	if !store.Read(c.store, store.DigestKey(key), &d, c.logger) {
		return nil
	}
	if d.DateKey != key {
		c.logger.Warn("cached digest has a foreign date, ignoring",
			zap.String("key", store.DigestKey(key)),
			zap.String("date_key", d.DateKey),
		)
		return nil
	}

	return &d
}

func (c *Cache) Save(d *Digest) error {
	return store.Write(c.store, store.DigestKey(d.DateKey), d)
}

// Service runs the check-then-generate flow behind the "generate" action.
type Service struct {
	cache  *Cache
	logger *zap.Logger

	Clock func() time.Time
}

func NewService(s store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:  NewCache(s, logger),
		logger: logger,
		Clock:  time.Now,
	}
}

// Today returns the cached digest for the current date without generating.
func (s *Service) Today() *Digest {
	return s.cache.LoadToday(s.Clock())
}

// GetOrGenerate returns today's cached digest, or generates and stores a new
// one. It returns nil without an error when there is no profile.
func (s *Service) GetOrGenerate(jobs []catalog.Job, p *preferences.Profile) (*Digest, error) {
	now := s.Clock()

	if d := s.cache.LoadToday(now); d != nil {
		s.logger.Debug("using cached digest", zap.String("date_key", d.DateKey))
		return d, nil
	}

	d := Generate(jobs, p, now)
	if d == nil {
		s.logger.Info("no preferences set, skipping digest")
		return nil, nil
	}

	if err := s.cache.Save(d); err != nil {
		return nil, err
	}

	s.logger.Info("digest generated",
		zap.String("date_key", d.DateKey),
		zap.Int("jobs", len(d.Jobs)),
	)
	return d, nil
}
