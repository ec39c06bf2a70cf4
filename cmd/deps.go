package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/ai"
	"github.com/spigell/jobtracker/internal/ai/gemini"
	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/checklist"
	"github.com/spigell/jobtracker/internal/digest"
	"github.com/spigell/jobtracker/internal/logger"
	"github.com/spigell/jobtracker/internal/preferences"
	"github.com/spigell/jobtracker/internal/proof"
	"github.com/spigell/jobtracker/internal/saved"
	"github.com/spigell/jobtracker/internal/secrets"
	"github.com/spigell/jobtracker/internal/store"
	"github.com/spigell/jobtracker/internal/tracker"
)

// deps is everything a command may need, built once per invocation.
type deps struct {
	ctx    context.Context
	logger *zap.Logger
	config *Config

	store   store.Store
	closer  io.Closer
	catalog *catalog.Catalog

	prefs     *preferences.Repository
	tracker   *tracker.Tracker
	saved     *saved.Set
	digests   *digest.Service
	checklist *checklist.Checklist
	gate      *proof.Gate
}

// setup builds the logger and all services; failures end the process the
// same way for every command.
func setup() *deps {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	d, err := newDeps(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the tracker", zap.Error(err))
	}

	return d
}

func newDeps(ctx context.Context, config *Config, logger *zap.Logger) (*deps, error) {
	s, closer, err := store.Open(ctx, store.Options{
		Driver:   config.Store.Driver,
		Path:     config.Store.Path,
		RedisURL: config.Store.RedisURL,
		Prefix:   config.Store.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", config.Store.Driver, err)
	}

	logger.Debug("store opened",
		zap.String("driver", config.Store.Driver),
		zap.String("path", config.Store.Path),
	)

	jobs, err := loadCatalog(config.Catalog)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	checks := checklist.New(s, logger)

	return &deps{
		ctx:       ctx,
		logger:    logger,
		config:    config,
		store:     s,
		closer:    closer,
		catalog:   jobs,
		prefs:     preferences.NewRepository(s, logger),
		tracker:   tracker.New(s, logger),
		saved:     saved.New(s, logger),
		digests:   digest.NewService(s, logger),
		checklist: checks,
		gate:      proof.NewGate(s, checks, logger),
	}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}

	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %q: %w", path, err)
	}
	return c, nil
}

func (d *deps) close() {
	if err := d.closer.Close(); err != nil {
		d.logger.Warn("closing store", zap.Error(err))
	}
	_ = d.logger.Sync()
}

// job resolves a job id argument or exits.
func (d *deps) job(id int) catalog.Job {
	job, err := d.catalog.Lookup(id)
	if err != nil {
		d.logger.Fatal("looking up job", zap.Int("job_id", id), zap.Error(err))
	}
	return job
}

// explainer returns the configured AI explainer.
func (d *deps) explainer() (ai.Explainer, error) {
	cfg := d.config.AI
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("ai explainer is disabled (set ai.enabled in the config)")
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(d.ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, d.logger)
	if err != nil {
		return nil, err
	}

	explainLogger := logger.WithFields(d.logger, logger.AIFields("gemini", generator.Model())...)
	return gemini.NewExplainer(generator, explainLogger, cfg.Gemini.MaxLogLength), nil
}
