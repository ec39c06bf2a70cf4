// Package gemini implements the AI explainer on top of the Google GenAI SDK.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/catalog"
	"github.com/spigell/jobtracker/internal/logger"
	"github.com/spigell/jobtracker/internal/matching"
	"github.com/spigell/jobtracker/internal/preferences"
	"github.com/spigell/jobtracker/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Explainer asks Gemini to explain a job fit in plain words.
type Explainer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewExplainer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Explainer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Explainer{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (e *Explainer) Explain(ctx context.Context, job catalog.Job, p *preferences.Profile) (string, error) {
	if p == nil {
		return "", errors.New("preferences are required to explain a match")
	}

	prompt, err := buildPrompt(job, p)
	if err != nil {
		return "", err
	}

	log := logger.WithFields(e.logger, logger.JobFields(job)...)
	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	text := stripFences(raw)
	if text == "" {
		return "", errors.New("gemini api returned empty explanation")
	}
	return text, nil
}

func buildPrompt(job catalog.Job, p *preferences.Profile) (string, error) {
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal job payload: %w", err)
	}

	profileJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal preferences payload: %w", err)
	}

	matched := strings.Join(matching.Breakdown(job, p), ", ")
	if matched == "" {
		matched = "none"
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Score: {{MATCH_SCORE}}\nMatched: {{MATCHED_RULES}}\n\nPreferences:\n{{PROFILE_JSON}}\n\nJob:\n{{JOB_JSON}}\n"
	}

	return strings.NewReplacer(
		"{{MATCH_SCORE}}", strconv.Itoa(matching.Score(job, p)),
		"{{MATCHED_RULES}}", matched,
		"{{PROFILE_JSON}}", string(profileJSON),
		"{{JOB_JSON}}", string(jobJSON),
	).Replace(template), nil
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```text")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}
