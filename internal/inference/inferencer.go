// Package inference maps the linguistic cues on an extracted mention to a
// task status and a man-day effort estimate. Everything here is
// deterministic so the pipeline stays unit-testable without a model call.
package inference

import (
	"strings"

	"internship-journey-agent/internal/model"
)

// Policy holds the tunable knobs of the inferencer.
type Policy struct {
	// DefaultStatus is applied when a mention carries no recognizable
	// temporal marker.
	DefaultStatus model.Status

	// MinEffort and MaxEffort clamp the heuristic estimate, in man-days.
	MinEffort float64
	MaxEffort float64
}

// DefaultPolicy returns the stock policy: In Progress default, [0.25, 3.0] clamp.
func DefaultPolicy() Policy {
	return Policy{
		DefaultStatus: model.StatusInProgress,
		MinEffort:     0.25,
		MaxEffort:     3.0,
	}
}

// Inferencer derives status and effort for mentions.
type Inferencer struct {
	policy Policy
}

func New(policy Policy) *Inferencer {
	if policy.DefaultStatus == "" {
		policy.DefaultStatus = model.StatusInProgress
	}
	if policy.MaxEffort <= 0 {
		policy.MaxEffort = 3.0
	}
	if policy.MinEffort <= 0 || policy.MinEffort > policy.MaxEffort {
		policy.MinEffort = 0.25
	}
	return &Inferencer{policy: policy}
}

// Status maps a temporal cue to a status. Tie-break order: completion,
// then progressive, then future, then conditional, then the default.
func (inf *Inferencer) Status(cue model.TemporalCue) model.Status {
	switch cue {
	case model.CuePast:
		return model.StatusComplete
	case model.CuePresentContinuous:
		return model.StatusInProgress
	case model.CueFuture:
		return model.StatusUpcoming
	case model.CueConditional:
		return model.StatusOnHold
	}
	return inf.policy.DefaultStatus
}

// explicit effort hints, checked before any heuristic. First match wins.
var effortHints = []struct {
	marker string
	days   float64
}{
	{"all day", 1.0},
	{"whole day", 1.0},
	{"full day", 1.0},
	{"half a day", 0.5},
	{"half day", 0.5},
	{"morning", 0.5},
	{"afternoon", 0.5},
	{"couple of hours", 0.25},
	{"few hours", 0.25},
	{"an hour", 0.25},
	{"quick fix", 0.25},
	{"quick", 0.25},
}

// Effort estimates man-days for a mention. An explicit hint wins; otherwise
// a complexity heuristic over the mention text is clamped to the policy range.
func (inf *Inferencer) Effort(m model.Mention) float64 {
	hint := strings.ToLower(m.EffortHint)
	if hint != "" {
		for _, eh := range effortHints {
			if strings.Contains(hint, eh.marker) {
				return inf.clamp(eh.days)
			}
		}
	}
	return inf.clamp(inf.complexityEstimate(m))
}

// complexityEstimate scores effort from task-type keywords and mention
// length. Mirrors the original sheet agent's heuristic: research and
// implementation work cost more, review-style work costs less.
func (inf *Inferencer) complexityEstimate(m model.Mention) float64 {
	text := strings.ToLower(m.RawSpan + " " + m.CandidateTask + " " + m.CandidateSubTask)
	effort := 0.5

	if containsAny(text, "complex", "advanced", "comprehensive", "end-to-end") {
		effort *= 2
	}

	switch {
	case containsAny(text, "research", "analysis", "study", "investigate"):
		effort *= 1.5
	case containsAny(text, "implement", "build", "create", "develop", "integrate", "migrate"):
		effort *= 2
	case containsAny(text, "review", "check", "read", "triage"):
		effort *= 0.5
	}

	// Long, dense mentions tend to describe bigger work.
	if len(strings.Fields(text)) > 12 {
		effort *= 1.25
	}

	return effort
}

func (inf *Inferencer) clamp(effort float64) float64 {
	if effort < inf.policy.MinEffort {
		return inf.policy.MinEffort
	}
	if effort > inf.policy.MaxEffort {
		return inf.policy.MaxEffort
	}
	return effort
}

func containsAny(text string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
