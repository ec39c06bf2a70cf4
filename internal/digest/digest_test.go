package digest

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/preferences"
	"github.com/spigell/jobtracker/internal/store"
)

func reactProfile() *preferences.Profile {
	p := preferences.New()
	p.RoleKeywords = "react"
	p.PreferredLocations = []string{"Bangalore"}
	return p
}

func job(id int, title, location string) catalog.Job {
	return catalog.Job{
		ID:            id,
		Title:         title,
		Company:       "Acme",
		Location:      location,
		Mode:          catalog.ModeOnsite,
		PostedDaysAgo: 5,
		Source:        "Naukri",
		ApplyURL:      fmt.Sprintf("https://careers.example.com/acme/%d", id),
	}
}

func ids(d *Digest) []int {
	out := make([]int, 0, len(d.Jobs))
	for _, j := range d.Jobs {
		out = append(out, j.ID)
	}
	return out
}

func jobsJSON(t *testing.T, d *Digest) string {
	t.Helper()
	raw, err := json.Marshal(d.Jobs)
	if err != nil {
		t.Fatalf("marshal jobs: %v", err)
	}
	return string(raw)
}

func TestGenerateWithoutProfile(t *testing.T) {
	if d := Generate([]catalog.Job{job(1, "React Developer", "Bangalore")}, nil, time.Now()); d != nil {
		t.Fatalf("expected nil digest, got %+v", d)
	}
}

func TestGenerateOrdersByScoreKeepingTies(t *testing.T) {
	jobs := []catalog.Job{
		job(1, "Java Developer", "Pune"),
		job(2, "React Developer", "Bangalore"),
		job(3, "React Engineer", "Pune"),
		job(4, "React Developer", "Bangalore"),
	}
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	d := Generate(jobs, reactProfile(), now)
	if d == nil {
		t.Fatalf("expected digest")
	}

	expect := []int{2, 4, 3, 1}
	got := ids(d)
	if fmt.Sprint(got) != fmt.Sprint(expect) {
		t.Fatalf("expected order %v, got %v", expect, got)
	}
	if d.Jobs[0].MatchScore != 40 || d.Jobs[2].MatchScore != 25 || d.Jobs[3].MatchScore != 0 {
		t.Fatalf("unexpected scores %+v", d.Jobs)
	}
	if d.DateKey != "2024-01-01" || !d.GeneratedAt.Equal(now) || d.Limit != Limit {
		t.Fatalf("unexpected header %+v", d)
	}
}

func TestGenerateCapsAtLimit(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if c.Len() <= Limit {
		t.Fatalf("default catalog too small for this test: %d", c.Len())
	}

	d := Generate(c.Items, reactProfile(), time.Now())
	if len(d.Jobs) != Limit {
		t.Fatalf("expected %d jobs, got %d", Limit, len(d.Jobs))
	}
	for i := 1; i < len(d.Jobs); i++ {
		if d.Jobs[i-1].MatchScore < d.Jobs[i].MatchScore {
			t.Fatalf("jobs not in descending score order at %d", i)
		}
	}
}

func TestDateKeyUsesClockLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC).In(ist)

	if got := DateKey(now); got != "2024-01-01" {
		t.Fatalf("expected local date, got %s", got)
	}
}

func TestServiceIsIdempotentPerDate(t *testing.T) {
	jobs := []catalog.Job{
		job(1, "Java Developer", "Pune"),
		job(2, "React Developer", "Bangalore"),
		job(3, "Go Engineer", "Bangalore"),
	}

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(store.NewMemory(), nil)
	svc.Clock = func() time.Time { return now }

	if svc.Today() != nil {
		t.Fatalf("expected empty cache")
	}

	p := reactProfile()
	first, err := svc.GetOrGenerate(jobs, p)
	if err != nil || first == nil {
		t.Fatalf("generate: %v %v", first, err)
	}

	if cached := svc.Today(); cached == nil || jobsJSON(t, cached) != jobsJSON(t, first) {
		t.Fatalf("expected cached digest to match generated one")
	}

	p.RoleKeywords = "go"
	now = now.Add(8 * time.Hour)
	second, err := svc.GetOrGenerate(jobs, p)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if jobsJSON(t, second) != jobsJSON(t, first) {
		t.Fatalf("same date must return the cached digest")
	}
	if !second.GeneratedAt.Equal(first.GeneratedAt) {
		t.Fatalf("expected original generation time, got %s", second.GeneratedAt)
	}

	now = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	third, err := svc.GetOrGenerate(jobs, p)
	if err != nil {
		t.Fatalf("third generate: %v", err)
	}
	if third.DateKey != "2024-01-02" {
		t.Fatalf("expected new date key, got %s", third.DateKey)
	}
	if third.Jobs[0].ID != 3 {
		t.Fatalf("expected recomputed ranking, got %v", ids(third))
	}
}

func TestServiceWithoutProfileStoresNothing(t *testing.T) {
	s := store.NewMemory()
	svc := NewService(s, nil)

	d, err := svc.GetOrGenerate([]catalog.Job{job(1, "React Developer", "Bangalore")}, nil)
	if err != nil || d != nil {
		t.Fatalf("expected nil digest, got %v %v", d, err)
	}
	if svc.Today() != nil {
		t.Fatalf("expected nothing cached")
	}
}

func TestLoadTodayToleratesCorruptData(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := store.NewMemory()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	if err := s.Set(store.DigestKey("2024-01-01"), []byte("{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cache := NewCache(s, zap.New(core))
	if d := cache.LoadToday(now); d != nil {
		t.Fatalf("expected nil on corrupt data")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}

	if err := s.Set(store.DigestKey("2024-01-01"), []byte(`{"dateKey":"2023-12-31","jobs":[],"limit":10}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if d := cache.LoadToday(now); d != nil {
		t.Fatalf("expected nil for mismatched date key")
	}
}

func TestStoredDocumentShape(t *testing.T) {
	s := store.NewMemory()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	d := Generate([]catalog.Job{job(2, "React Developer", "Bangalore")}, reactProfile(), now)

	if err := NewCache(s, nil).Save(d); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, ok, err := s.Get("jobTrackerDigest_2024-01-01")
	if err != nil || !ok {
		t.Fatalf("expected stored digest: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"dateKey", "generatedAt", "jobs", "limit"} {
		if _, ok := doc[field]; !ok {
			t.Fatalf("missing field %q in %s", field, raw)
		}
	}

	first := doc["jobs"].([]any)[0].(map[string]any)
	if first["matchScore"] != float64(40) || first["title"] != "React Developer" {
		t.Fatalf("unexpected job entry %v", first)
	}
}
