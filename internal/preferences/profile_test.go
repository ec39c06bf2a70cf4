package preferences

import (
	"reflect"
	"testing"

	"github.com/spigell/jobtracker/internal/store"
)

func TestParseList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "empty", input: "", expect: []string{}},
		{name: "only separators", input: " , ,, ", expect: []string{}},
		{name: "trims and lowercases", input: " React , Node.JS,go ", expect: []string{"react", "node.js", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseList(tt.input); !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestSplitListKeepsCase(t *testing.T) {
	got := SplitList("Bangalore, Remote ,,Pune")
	expect := []string{"Bangalore", "Remote", "Pune"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	s := store.NewMemory()
	repo := NewRepository(s, nil)

	if p := repo.Load(); p != nil {
		t.Fatalf("expected no profile, got %+v", p)
	}

	p := New()
	p.RoleKeywords = "react, frontend"
	p.PreferredLocations = []string{"Bangalore"}
	if err := repo.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, _, _ := s.Get(store.KeyPreferences)
	expectJSON := `{"roleKeywords":"react, frontend","preferredLocations":["Bangalore"],"preferredMode":[],"experienceLevel":"","skills":"","minMatchScore":40}`
	if string(raw) != expectJSON {
		t.Fatalf("unexpected stored document:\n%s", raw)
	}

	loaded := repo.Load()
	if loaded == nil || !reflect.DeepEqual(loaded, p) {
		t.Fatalf("expected %+v, got %+v", p, loaded)
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if repo.Load() != nil {
		t.Fatalf("expected profile to be cleared")
	}
}

func TestRepositoryDefaultsMissingLists(t *testing.T) {
	s := store.NewMemory()
	_ = s.Set(store.KeyPreferences, []byte(`{"roleKeywords":"go","minMatchScore":10}`))

	p := NewRepository(s, nil).Load()
	if p == nil {
		t.Fatalf("expected profile")
	}
	if p.PreferredLocations == nil || p.PreferredMode == nil {
		t.Fatalf("expected empty lists instead of nil: %+v", p)
	}
}

func TestRepositoryCorruptProfileIsAbsent(t *testing.T) {
	s := store.NewMemory()
	_ = s.Set(store.KeyPreferences, []byte(`{"roleKeywords":`))

	if p := NewRepository(s, nil).Load(); p != nil {
		t.Fatalf("expected corrupt profile to read as absent, got %+v", p)
	}
}

func TestSaveRejectsOutOfRangeThreshold(t *testing.T) {
	repo := NewRepository(store.NewMemory(), nil)
	p := New()
	p.MinMatchScore = 101
	if err := repo.Save(p); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := repo.Save(nil); err == nil {
		t.Fatalf("expected error for nil profile")
	}
}
