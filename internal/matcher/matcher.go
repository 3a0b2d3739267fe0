// Package matcher decides whether a mention refers to an existing sheet
// row. Scoring is deterministic: the same store and mention text always
// produce the same decision. Model-assisted re-ranking can be plugged in
// through the Scorer interface without touching the decision rules.
package matcher

import (
	"strings"

	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
)

// Decision is the matcher's verdict for one mention.
type Decision string

const (
	DecisionCreate Decision = "create"
	DecisionUpdate Decision = "update"
)

// MatchResult carries the verdict plus the evidence behind it.
type MatchResult struct {
	Decision Decision
	RowID    string  // set only for DecisionUpdate
	Score    float64 // top score, whatever the decision
	// Ambiguous is set when two rows tied within epsilon; the tie forces
	// a Create rather than a guess, and the resulting op is flagged
	// low-confidence for review.
	Ambiguous bool
}

// Scorer rates how well a mention fits a row, in [0, 1].
type Scorer interface {
	Score(m model.Mention, row model.TaskRow) float64
}

// Matcher scores every row and applies the acceptance rules.
type Matcher struct {
	scorer    Scorer
	threshold float64
	epsilon   float64
}

const (
	// DefaultThreshold is the minimum score to accept a row match.
	DefaultThreshold = 0.5
	// DefaultEpsilon is the tie window: a runner-up this close to the top
	// scorer makes the match ambiguous.
	DefaultEpsilon = 0.05
)

func New(scorer Scorer, threshold, epsilon float64) *Matcher {
	if scorer == nil {
		scorer = NewSimilarityScorer()
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Matcher{scorer: scorer, threshold: threshold, epsilon: epsilon}
}

// Match finds at most one existing row for the mention. A row wins only if
// it clears the threshold and is the unique top scorer.
func (m *Matcher) Match(mention model.Mention, snap *store.Snapshot) MatchResult {
	var (
		bestID     string
		bestScore  float64
		secondBest float64
		found      bool
	)

	for _, r := range snap.Rows() {
		score := m.scorer.Score(mention, r.Row)
		switch {
		case !found || score > bestScore:
			if found {
				secondBest = bestScore
			}
			bestID = r.ID
			bestScore = score
			found = true
		case score > secondBest:
			secondBest = score
		}
	}

	if !found || bestScore < m.threshold {
		return MatchResult{Decision: DecisionCreate, Score: bestScore}
	}
	if bestScore-secondBest < m.epsilon {
		return MatchResult{Decision: DecisionCreate, Score: bestScore, Ambiguous: true}
	}
	return MatchResult{Decision: DecisionUpdate, RowID: bestID, Score: bestScore}
}

// ResolveWorkstream picks the workstream a new row should be created under.
// A stated or inferred workstream that matches an existing one
// case-insensitively reuses the stored casing; otherwise the stated text is
// kept as-is, possibly empty. The engine never invents a workstream.
func (m *Matcher) ResolveWorkstream(mention model.Mention, snap *store.Snapshot) string {
	if ws, ok := snap.FindWorkstream(mention.CandidateWorkstream); ok {
		return ws
	}
	return strings.TrimSpace(mention.CandidateWorkstream)
}

// SuggestTags returns tags shared by at least two rows of the workstream
// that the mention text actually references. Best-effort enrichment only.
func (m *Matcher) SuggestTags(mention model.Mention, snap *store.Snapshot, workstream string) []string {
	if workstream == "" {
		return nil
	}
	text := strings.ToLower(mention.RawSpan + " " + mention.CandidateTask + " " + mention.CandidateSubTask)

	out := make([]string, 0)
	for _, tag := range snap.SharedWorkstreamTags(workstream) {
		if strings.Contains(text, strings.ToLower(tag)) {
			out = append(out, tag)
		}
	}
	return out
}
