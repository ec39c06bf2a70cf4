package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/jobtracker/internal/ai"
	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/preferences"
)

var _ ai.Explainer = (*Explainer)(nil)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testJob() catalog.Job {
	return catalog.Job{
		ID:            2,
		Title:         "React Developer",
		Company:       "Freshworks",
		Location:      "Bangalore",
		PostedDaysAgo: 5,
		Source:        "Naukri",
		Description:   "build UI",
	}
}

func testProfile() *preferences.Profile {
	p := preferences.New()
	p.RoleKeywords = "react"
	p.PreferredLocations = []string{"Bangalore"}
	return p
}

func TestExplainBuildsPrompt(t *testing.T) {
	stub := &stubGenerator{response: "  Strong title match in your preferred city.  "}
	core, logs := observer.New(zapcore.DebugLevel)

	text, err := NewExplainer(stub, zap.New(core), 0).Explain(context.Background(), testJob(), testProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Strong title match in your preferred city." {
		t.Fatalf("unexpected text %q", text)
	}

	for _, want := range []string{
		"Deterministic match score: 40/100",
		"Signals that matched: title_keyword, location",
		`"title": "React Developer"`,
		`"roleKeywords": "react"`,
	} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, stub.lastPrompt)
		}
	}
	if strings.Contains(stub.lastPrompt, "{{") {
		t.Fatalf("unreplaced placeholder in prompt:\n%s", stub.lastPrompt)
	}

	entries := logs.FilterMessage("gemini generate content request").All()
	if len(entries) != 1 || entries[0].ContextMap()["job_id"] != int64(2) {
		t.Fatalf("expected request log with job id, got %+v", entries)
	}
}

func TestExplainNoMatchedSignals(t *testing.T) {
	stub := &stubGenerator{response: "Not a fit."}
	p := preferences.New()
	p.RoleKeywords = "golang"

	if _, err := NewExplainer(stub, nil, 0).Explain(context.Background(), testJob(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stub.lastPrompt, "Signals that matched: none") {
		t.Fatalf("expected none placeholder:\n%s", stub.lastPrompt)
	}
}

func TestExplainErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stub    *stubGenerator
		profile *preferences.Profile
	}{
		{name: "no profile", stub: &stubGenerator{response: "x"}},
		{name: "generator error", stub: &stubGenerator{err: errors.New("boom")}, profile: testProfile()},
		{name: "empty fenced response", stub: &stubGenerator{response: "```\n```"}, profile: testProfile()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewExplainer(tt.stub, nil, 0).Explain(context.Background(), testJob(), tt.profile); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{"plain", "plain"},
		{"```text\nfenced\n```", "fenced"},
		{"```\nbare\n```  ", "bare"},
	}

	for _, tt := range tests {
		if got := stripFences(tt.input); got != tt.expect {
			t.Fatalf("stripFences(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
