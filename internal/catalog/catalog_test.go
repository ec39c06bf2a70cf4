package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() == 0 {
		t.Fatalf("expected embedded jobs")
	}

	job := c.FindByID(1)
	if job == nil {
		t.Fatalf("expected job 1 in the embedded catalog")
	}
	if job.Source != SourceLinkedIn {
		t.Fatalf("unexpected source %q", job.Source)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	content := `
- id: 7
  title: Go Developer
  company: Acme
  location: Pune
  mode: Remote
  experience: 1-3
  salaryRange: 10-18 LPA
  postedDaysAgo: 1
  source: LinkedIn
  skills: [Go, SQL]
  description: Build services
  applyUrl: https://example.com/7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job, err := c.Lookup(7)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if job.Mode != ModeRemote || len(job.Skills) != 2 || job.ApplyURL != "https://example.com/7" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestLoadRejectsInvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	content := `[{"id": 1, "title": "A", "postedDaysAgo": 0}, {"id": 1, "title": "B", "postedDaysAgo": -1}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "duplicate id 1") || !strings.Contains(err.Error(), "postedDaysAgo") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLookupAndSubset(t *testing.T) {
	c := &Catalog{Items: []Job{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}}}

	if _, err := c.Lookup(42); !errors.Is(err, ErrUnknownJob) {
		t.Fatalf("expected ErrUnknownJob, got %v", err)
	}

	subset := c.Subset([]int{3, 42, 1})
	if len(subset) != 2 || subset[0].ID != 3 || subset[1].ID != 1 {
		t.Fatalf("unexpected subset: %+v", subset)
	}
}

func TestPostedLabel(t *testing.T) {
	tests := []struct {
		days   int
		expect string
	}{
		{0, "Today"},
		{1, "1 day ago"},
		{5, "5 days ago"},
	}

	for _, tt := range tests {
		if got := (Job{PostedDaysAgo: tt.days}).PostedLabel(); got != tt.expect {
			t.Fatalf("PostedLabel(%d) = %q, want %q", tt.days, got, tt.expect)
		}
	}
}
