package checklist

import (
	"errors"
	"testing"

	"github.com/spigell/jobtracker/internal/store"
)

func TestChecklist(t *testing.T) {
	c := New(store.NewMemory(), nil)

	if c.Passed() != 0 || c.AllPassed() {
		t.Fatalf("expected a fresh checklist to have nothing passed")
	}

	for i, item := range Items {
		if err := c.SetPassed(item.ID, true); err != nil {
			t.Fatalf("set %s: %v", item.ID, err)
		}
		if got := c.Passed(); got != i+1 {
			t.Fatalf("expected %d passed, got %d", i+1, got)
		}
	}

	if !c.AllPassed() {
		t.Fatalf("expected all items to pass")
	}

	if err := c.SetPassed(Items[0].ID, false); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if c.AllPassed() {
		t.Fatalf("expected checklist to be incomplete again")
	}

	if err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if c.Passed() != 0 {
		t.Fatalf("expected reset to clear results")
	}
}

func TestUnknownItem(t *testing.T) {
	c := New(store.NewMemory(), nil)
	if err := c.SetPassed("does-not-exist", true); !errors.Is(err, ErrUnknownTest) {
		t.Fatalf("expected ErrUnknownTest, got %v", err)
	}
}

func TestStoredExtrasAreIgnored(t *testing.T) {
	s := store.NewMemory()
	stored := `{"legacy-item": true, "match-score": true}`
	_ = s.Set(store.KeyTestChecklist, []byte(stored))

	c := New(s, nil)
	if c.Passed() != 1 {
		t.Fatalf("expected only known items to count, got %d", c.Passed())
	}

	_ = s.Set(store.KeyTestChecklist, []byte(`[true]`))
	if c.Passed() != 0 {
		t.Fatalf("expected malformed data to read as nothing passed")
	}
}
