package segment

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"internship-journey-agent/internal/model"
	"internship-journey-agent/pkg/gemini"
	pkgLog "internship-journey-agent/pkg/log"
)

// LLMExtractor extracts mentions via the Gemini API. Any transport or
// decoding failure surfaces as ErrUnavailable so the caller can retry.
type LLMExtractor struct {
	llm *gemini.Client
	l   pkgLog.Logger
}

func NewLLMExtractor(llm *gemini.Client, l pkgLog.Logger) *LLMExtractor {
	return &LLMExtractor{llm: llm, l: l}
}

// mentionCandidate is the JSON shape the extraction prompt asks for.
type mentionCandidate struct {
	RawSpan     string `json:"raw_span"`
	Workstream  string `json:"workstream"`
	Task        string `json:"task"`
	SubTask     string `json:"subtask"`
	TemporalCue string `json:"temporal_cue"`
	EffortHint  string `json:"effort_hint"`
	DateHint    string `json:"date_hint"`
}

func (e *LLMExtractor) Extract(ctx context.Context, rawText string) ([]model.Mention, error) {
	prompt := gemini.BuildMentionExtractionPrompt(rawText)

	resp, err := e.llm.GenerateContent(ctx, gemini.GenerateRequest{
		Contents: []gemini.Content{
			{Parts: []gemini.Part{{Text: prompt}}},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:     0.2, // low temperature for stable JSON output
			MaxOutputTokens: 2048,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	responseText := resp.Text()
	if responseText == "" {
		return nil, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	cleaned := sanitizeJSONResponse(responseText)

	var candidates []mentionCandidate
	if err := json.Unmarshal([]byte(cleaned), &candidates); err != nil {
		e.l.Errorf(ctx, "segment: failed to parse LLM response. Raw=%q Cleaned=%q", responseText, cleaned)
		return nil, fmt.Errorf("%w: bad JSON: %v", ErrUnavailable, err)
	}

	mentions := make([]model.Mention, 0, len(candidates))
	for _, c := range candidates {
		task := strings.TrimSpace(c.Task)
		if task == "" {
			continue
		}
		mentions = append(mentions, model.Mention{
			RawSpan:             strings.TrimSpace(c.RawSpan),
			CandidateWorkstream: strings.TrimSpace(c.Workstream),
			CandidateTask:       task,
			CandidateSubTask:    strings.TrimSpace(c.SubTask),
			TemporalCue:         parseCue(c.TemporalCue),
			EffortHint:          strings.TrimSpace(c.EffortHint),
			DateHint:            strings.TrimSpace(c.DateHint),
		})
	}

	return mentions, nil
}

func parseCue(raw string) model.TemporalCue {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(model.CuePast):
		return model.CuePast
	case string(model.CuePresentContinuous):
		return model.CuePresentContinuous
	case string(model.CueFuture):
		return model.CueFuture
	case string(model.CueConditional):
		return model.CueConditional
	}
	return model.CueUnknown
}

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// sanitizeJSONResponse removes markdown code fences and leading/trailing
// prose that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	matches := codeFenceRe.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}
