package segment

import (
	"context"
	"regexp"
	"strings"

	"internship-journey-agent/internal/model"
)

// RuleExtractor is the deterministic fallback extractor. It covers the
// common shapes of a daily update well enough to run the pipeline without
// a model: sentence splitting, "and"-coordination, tense markers and
// effort phrases. It is also the stub the engine's tests run against.
type RuleExtractor struct{}

func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// completion markers, checked before progressive ones: "finished" must not
// be read as ongoing work.
var pastMarkers = []string{
	"completed", "finished", "done with", "wrapped up", "deployed",
	"delivered", "merged", "shipped",
}

var progressiveMarkers = []string{
	"working on", "currently", "in the middle of", "started", "began",
	"continuing", "am doing", "still on",
}

var futureMarkers = []string{
	"will ", "plan to", "planning to", "going to", "next week",
	"next month", "scheduled to",
}

var conditionalMarkers = []string{
	"if ", "might", "pending", "blocked", "waiting on", "waiting for",
	"on hold", "depends on",
}

var effortPhrases = []string{
	"all day", "whole day", "full day", "half a day", "half day",
	"most of the morning", "morning", "afternoon", "couple of hours",
	"few hours", "an hour", "quick fix",
}

// generic verbs that make a clause task-bearing even without a tense marker.
var genericVerbs = []string{
	"did", "made", "built", "wrote", "added", "updated", "met", "reviewed",
	"fixed", "tested", "prepared", "investigated", "researched", "set up",
	"refactored", "documented", "working", "debugging",
}

func (e *RuleExtractor) Extract(ctx context.Context, rawText string) ([]model.Mention, error) {
	mentions := make([]model.Mention, 0)

	for _, sentence := range splitSentences(rawText) {
		for _, clause := range splitCoordinated(sentence) {
			clause = strings.TrimSpace(clause)
			if clause == "" {
				continue
			}

			cue := detectCue(clause)
			if cue == model.CueUnknown && !hasVerb(clause) {
				// no verb-bearing clause, not a mention
				continue
			}

			if len(mentions) > 0 && isContinuation(clause) {
				// "and finished its tests" extends the prior mention
				// rather than opening a new one.
				prev := &mentions[len(mentions)-1]
				prev.RawSpan = prev.RawSpan + " and " + clause
				if cue == model.CuePast {
					prev.TemporalCue = model.CuePast
				}
				if prev.EffortHint == "" {
					prev.EffortHint = detectEffortHint(clause)
				}
				if prev.DateHint == "" {
					prev.DateHint = detectDateHint(clause)
				}
				continue
			}

			workstream, rest := detectWorkstream(clause)
			task := cleanTaskLabel(rest)
			if task == "" {
				continue
			}

			mentions = append(mentions, model.Mention{
				RawSpan:             clause,
				CandidateWorkstream: workstream,
				CandidateTask:       task,
				TemporalCue:         cue,
				EffortHint:          detectEffortHint(clause),
				DateHint:            detectDateHint(clause),
			})
		}
	}

	return mentions, nil
}

func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '!', '?', ';', '\n':
			return true
		}
		return false
	})
}

// splitCoordinated splits a sentence on " and " where the right-hand side
// opens with its own verb. "completed X and started Y" splits; "research
// and analysis work" does not.
func splitCoordinated(sentence string) []string {
	parts := strings.Split(sentence, " and ")
	if len(parts) == 1 {
		return parts
	}

	out := []string{parts[0]}
	for _, part := range parts[1:] {
		if startsWithVerb(part) {
			out = append(out, part)
		} else {
			out[len(out)-1] = out[len(out)-1] + " and " + part
		}
	}
	return out
}

func startsWithVerb(clause string) bool {
	lower := strings.ToLower(strings.TrimSpace(clause))
	for _, markers := range [][]string{pastMarkers, progressiveMarkers, futureMarkers} {
		for _, m := range markers {
			if strings.HasPrefix(lower, strings.TrimSpace(m)) {
				return true
			}
		}
	}
	for _, v := range genericVerbs {
		if strings.HasPrefix(lower, v) {
			return true
		}
	}
	return false
}

// isContinuation reports whether a coordinated clause refers back to the
// prior clause's object ("finished its tests") instead of naming new work.
func isContinuation(clause string) bool {
	fields := strings.Fields(strings.ToLower(clause))
	limit := 4
	if len(fields) < limit {
		limit = len(fields)
	}
	for _, f := range fields[:limit] {
		switch f {
		case "its", "it", "their", "them", "these", "those":
			return true
		}
	}
	return false
}

func detectCue(clause string) model.TemporalCue {
	lower := strings.ToLower(clause)
	switch {
	case containsAny(lower, pastMarkers):
		return model.CuePast
	case containsAny(lower, progressiveMarkers):
		return model.CuePresentContinuous
	case containsAny(lower, futureMarkers):
		return model.CueFuture
	case containsAny(lower, conditionalMarkers):
		return model.CueConditional
	}
	return model.CueUnknown
}

func hasVerb(clause string) bool {
	lower := strings.ToLower(clause)
	return containsAny(lower, genericVerbs)
}

func detectEffortHint(clause string) string {
	lower := strings.ToLower(clause)
	for _, phrase := range effortPhrases {
		if strings.Contains(lower, phrase) {
			return phrase
		}
	}
	return ""
}

// calendar phrases the date parser understands
var dateHintRe = regexp.MustCompile(`(?i)\b(today|tomorrow|yesterday|(?:next|last) (?:week|monday|tuesday|wednesday|thursday|friday|saturday|sunday)|in \d+ (?:days?|weeks?|months?)|\d+ (?:days?|weeks?|months?) ago)\b`)

func detectDateHint(clause string) string {
	return strings.ToLower(dateHintRe.FindString(clause))
}

// detectWorkstream pulls an explicitly named workstream out of the clause.
// Supported shapes: a "Frontend: built the nav" prefix, and a trailing
// "for the Payments project/workstream" phrase.
func detectWorkstream(clause string) (string, string) {
	if idx := strings.Index(clause, ":"); idx > 0 && idx < 40 {
		prefix := strings.TrimSpace(clause[:idx])
		if len(strings.Fields(prefix)) <= 3 && !strings.ContainsAny(prefix, "0123456789") {
			return prefix, strings.TrimSpace(clause[idx+1:])
		}
	}

	lower := strings.ToLower(clause)
	for _, marker := range []string{"for the ", "on the "} {
		idx := strings.Index(lower, marker)
		if idx < 0 {
			continue
		}
		tail := clause[idx+len(marker):]
		tailLower := strings.ToLower(tail)
		for _, suffix := range []string{" project", " workstream"} {
			if end := strings.Index(tailLower, suffix); end > 0 {
				return strings.TrimSpace(tail[:end]), strings.TrimSpace(clause[:idx])
			}
		}
	}

	return "", clause
}

// leading tokens that carry no task meaning: temporal adverbs, subjects,
// auxiliaries, tense markers and articles.
var leadingStopwords = map[string]bool{
	"today": true, "yesterday": true, "tomorrow": true, "finally": true,
	"just": true, "also": true, "then": true, "i": true, "we": true,
	"am": true, "was": true, "have": true, "had": true, "i've": true,
	"completed": true, "finished": true, "done": true, "deployed": true,
	"delivered": true, "merged": true, "shipped": true, "wrapped": true,
	"started": true, "began": true, "continuing": true, "working": true,
	"on": true, "currently": true, "still": true,
	"built": true, "wrote": true, "made": true, "did": true, "added": true,
	"updated": true, "fixed": true, "tested": true,
	"will": true, "plan": true, "planning": true, "going": true, "to": true,
	"the": true, "a": true, "an": true, "my": true, "our": true, "up": true,
	"with": true, "doing": true,
}

var trailingStopwords = map[string]bool{
	"successfully": true, "today": true, "yesterday": true, "quickly": true,
}

func cleanTaskLabel(clause string) string {
	fields := strings.Fields(clause)

	start := 0
	for start < len(fields) && leadingStopwords[strings.ToLower(strings.Trim(fields[start], ",."))] {
		start++
	}

	end := len(fields)
	for end > start && trailingStopwords[strings.ToLower(strings.Trim(fields[end-1], ",."))] {
		end--
	}

	return strings.Join(fields[start:end], " ")
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
