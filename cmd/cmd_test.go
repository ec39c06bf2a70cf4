package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/filtering"
	"github.com/spigell/jobtracker/internal/store"
	"github.com/spigell/jobtracker/internal/tracker"
)

func TestDecodeConfig(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("store.driver", "sqlite")
	v.Set("ai.enabled", "true")
	v.Set("ai.gemini.max-retries", "5")
	v.Set("catalog", "jobs.yaml")

	config, err := decodeConfig(v.AllSettings())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if config.Store.Driver != store.DriverSQLite || config.Store.Path != ".jobtracker" || config.Store.Prefix != "jobtracker:" {
		t.Fatalf("unexpected store config %+v", config.Store)
	}
	if config.Catalog != "jobs.yaml" {
		t.Fatalf("unexpected catalog %q", config.Catalog)
	}
	if !config.AI.Enabled || config.AI.Gemini.MaxRetries != 5 || config.AI.Gemini.Model == "" {
		t.Fatalf("unexpected ai config %+v %+v", config.AI, config.AI.Gemini)
	}
}

func TestDecodeConfigDefaultsAndErrors(t *testing.T) {
	config, err := decodeConfig(map[string]any{})
	if err != nil {
		t.Fatalf("decode empty: %v", err)
	}
	if config.Store.Driver != store.DriverFile {
		t.Fatalf("expected file driver by default, got %q", config.Store.Driver)
	}

	if _, err := decodeConfig(map[string]any{"store": map[string]any{"driver": "etcd"}}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func parseCriteria(t *testing.T, args ...string) (filtering.Criteria, error) {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addCriteriaFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return criteriaFromFlags(flags)
}

func TestCriteriaFromFlags(t *testing.T) {
	criteria, err := parseCriteria(t)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if criteria != filtering.DefaultCriteria() {
		t.Fatalf("expected default criteria, got %+v", criteria)
	}

	criteria, err = parseCriteria(t, "-k", "react", "--mode", "Remote", "--status", "applied", "-m", "--sort", "salaryhigh")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	expect := filtering.DefaultCriteria()
	expect.Keyword = "react"
	expect.Mode = "Remote"
	expect.Status = string(tracker.Applied)
	expect.OnlyMatches = true
	expect.Sort = filtering.SortSalaryHigh
	if criteria != expect {
		t.Fatalf("expected %+v, got %+v", expect, criteria)
	}
}

func TestCriteriaFromFlagsErrors(t *testing.T) {
	if _, err := parseCriteria(t, "--sort", "random"); err == nil {
		t.Fatalf("expected error for unknown sort")
	}
	if _, err := parseCriteria(t, "--status", "ghosted"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestNewDepsWithMemoryStore(t *testing.T) {
	config := &Config{Store: &StoreConfig{Driver: store.DriverMemory}, AI: &AIConfig{}}

	d, err := newDeps(context.Background(), config, zap.NewNop())
	if err != nil {
		t.Fatalf("newDeps: %v", err)
	}
	defer d.close()

	if d.catalog.Len() == 0 {
		t.Fatalf("expected embedded catalog")
	}
	if d.gate.CanShip() {
		t.Fatalf("fresh store must not be ready to ship")
	}
	if _, err := d.explainer(); err == nil {
		t.Fatalf("expected disabled explainer")
	}
}

func TestNewDepsBadCatalog(t *testing.T) {
	config := &Config{Store: &StoreConfig{Driver: store.DriverMemory}, Catalog: "/does/not/exist.json"}

	if _, err := newDeps(context.Background(), config, zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}

func TestPrintJobs(t *testing.T) {
	jobs := []filtering.ScoredJob{
		{MatchScore: 40},
		{MatchScore: 0},
	}
	jobs[0].ID, jobs[0].Title, jobs[0].Company, jobs[0].PostedDaysAgo = 1, "Frontend Developer", "Razorpay", 0
	jobs[1].ID, jobs[1].Title, jobs[1].Company, jobs[1].PostedDaysAgo = 2, "React Developer", "Freshworks", 1

	var buf bytes.Buffer
	printJobs(&buf, jobs, map[int]tracker.Status{2: tracker.Applied}, []int{1})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Not Applied") || !strings.HasSuffix(lines[1], "*") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "Applied") || !strings.Contains(lines[2], "1 day ago") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestValidity(t *testing.T) {
	for input, expect := range map[string]string{
		"":                    "empty",
		"https://example.com": "ok",
		"example.com":         "bad",
	} {
		if got := validity(input); got != expect {
			t.Fatalf("validity(%q) = %q, want %q", input, got, expect)
		}
	}
}
