package model

// TemporalCue is the tense/temporal signal attached to a mention.
type TemporalCue string

const (
	CuePast              TemporalCue = "past"
	CuePresentContinuous TemporalCue = "present_continuous"
	CueFuture            TemporalCue = "future"
	CueConditional       TemporalCue = "conditional"
	CueUnknown           TemporalCue = "unknown"
)

// Mention is one task-like unit extracted from a raw daily update.
// Mentions are transient: they live for a single interpret cycle.
type Mention struct {
	RawSpan             string      `json:"raw_span"`
	CandidateWorkstream string      `json:"candidate_workstream"`
	CandidateTask       string      `json:"candidate_task"`
	CandidateSubTask    string      `json:"candidate_subtask"`
	TemporalCue         TemporalCue `json:"temporal_cue"`
	EffortHint          string      `json:"effort_hint"`
	DateHint            string      `json:"date_hint"`
}
