package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed jobs.json
var defaultJobs []byte

// ErrUnknownJob is returned when a job id is not part of the catalog.
var ErrUnknownJob = errors.New("job not found in catalog")

// Catalog is an ordered, read-only list of jobs. Catalog order is the
// tie-break order for every sort and ranking.
type Catalog struct {
	Items []Job
}

// Default returns the catalog embedded into the binary.
func Default() (*Catalog, error) {
	return decode(defaultJobs, ".json")
}

// Load reads a catalog from a JSON or YAML file; an empty path yields the
// embedded catalog.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}

	c, err := decode(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return c, nil
}

func decode(data []byte, ext string) (*Catalog, error) {
	var jobs []Job

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &jobs); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&jobs); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}

	c := &Catalog{Items: jobs}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks id uniqueness and the non-negative posting age.
func (c *Catalog) Validate() error {
	seen := make(map[int]bool, len(c.Items))
	var errs []error

	for i, job := range c.Items {
		if seen[job.ID] {
			errs = append(errs, fmt.Errorf("jobs[%d]: duplicate id %d", i, job.ID))
		}
		seen[job.ID] = true

		if job.PostedDaysAgo < 0 {
			errs = append(errs, fmt.Errorf("jobs[%d]: postedDaysAgo must be >= 0", i))
		}
		if strings.TrimSpace(job.Title) == "" {
			errs = append(errs, fmt.Errorf("jobs[%d]: title is required", i))
		}
	}

	return errors.Join(errs...)
}

func (c *Catalog) Len() int {
	return len(c.Items)
}

// FindByID returns the job with the given id or nil.
func (c *Catalog) FindByID(id int) *Job {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// Lookup is FindByID with an error for unknown ids.
func (c *Catalog) Lookup(id int) (Job, error) {
	job := c.FindByID(id)
	if job == nil {
		return Job{}, fmt.Errorf("%w: %d", ErrUnknownJob, id)
	}
	return *job, nil
}

// Subset returns the jobs whose ids are listed, in the order of ids. Unknown
// ids are skipped.
func (c *Catalog) Subset(ids []int) []Job {
	out := make([]Job, 0, len(ids))
	for _, id := range ids {
		if job := c.FindByID(id); job != nil {
			out = append(out, *job)
		}
	}
	return out
}
