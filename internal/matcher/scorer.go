package matcher

import (
	"strings"

	"internship-journey-agent/internal/model"
)

// SimilarityScorer is the default deterministic scorer: weighted token
// overlap over {task, subtask, workstream} with a substring containment
// bonus. Fields empty on both sides are excluded and the weights
// renormalized, so a mention with no workstream is not penalized.
type SimilarityScorer struct {
	taskWeight       float64
	subTaskWeight    float64
	workstreamWeight float64
}

func NewSimilarityScorer() *SimilarityScorer {
	return &SimilarityScorer{
		taskWeight:       0.6,
		subTaskWeight:    0.25,
		workstreamWeight: 0.15,
	}
}

func (s *SimilarityScorer) Score(m model.Mention, row model.TaskRow) float64 {
	type pair struct {
		a, b   string
		weight float64
	}
	pairs := []pair{
		{m.CandidateTask, row.Task, s.taskWeight},
		{m.CandidateSubTask, row.SubTask, s.subTaskWeight},
		{m.CandidateWorkstream, row.Workstream, s.workstreamWeight},
	}

	var score, totalWeight float64
	for _, p := range pairs {
		a, b := normalize(p.a), normalize(p.b)
		if a == "" && b == "" {
			continue
		}
		totalWeight += p.weight
		score += p.weight * fieldSimilarity(a, b)
	}

	if totalWeight == 0 {
		return 0
	}
	return score / totalWeight
}

func fieldSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	sim := tokenOverlap(a, b)

	// containment bonus: "API documentation" inside "update the API
	// documentation for v2" should score high even with extra tokens.
	if len(a) > 3 && len(b) > 3 && (strings.Contains(a, b) || strings.Contains(b, a)) {
		sim += 0.3
	}
	if sim > 1 {
		sim = 1
	}
	return sim
}

// tokenOverlap is the Jaccard index over whitespace tokens.
func tokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
