package segment

import (
	"context"
	"testing"

	"internship-journey-agent/internal/model"
)

func TestRuleExtract_CompletedAndStarted(t *testing.T) {
	e := NewRuleExtractor()

	mentions, err := e.Extract(context.Background(),
		"Today I completed the user authentication module and started database integration")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 2 {
		t.Fatalf("expected 2 mentions, got %d: %+v", len(mentions), mentions)
	}

	if mentions[0].TemporalCue != model.CuePast {
		t.Errorf("first cue = %q, want past", mentions[0].TemporalCue)
	}
	if mentions[0].CandidateTask != "user authentication module" {
		t.Errorf("first task = %q", mentions[0].CandidateTask)
	}

	if mentions[1].TemporalCue != model.CuePresentContinuous {
		t.Errorf("second cue = %q, want present_continuous", mentions[1].TemporalCue)
	}
	if mentions[1].CandidateTask != "database integration" {
		t.Errorf("second task = %q", mentions[1].CandidateTask)
	}
}

func TestRuleExtract_Cues(t *testing.T) {
	tests := []struct {
		name string
		text string
		cue  model.TemporalCue
	}{
		{"finished is past", "Finished the quarterly report", model.CuePast},
		{"working on is present", "Working on the billing dashboard", model.CuePresentContinuous},
		{"will is future", "Will prepare the release notes", model.CueFuture},
		{"blocked is conditional", "Blocked on the security review for the login flow", model.CueConditional},
		{"bare verb is unknown", "Reviewed some PRs", model.CueUnknown},
	}

	e := NewRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentions, err := e.Extract(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if len(mentions) != 1 {
				t.Fatalf("expected 1 mention, got %d", len(mentions))
			}
			if mentions[0].TemporalCue != tt.cue {
				t.Errorf("cue = %q, want %q", mentions[0].TemporalCue, tt.cue)
			}
		})
	}
}

func TestRuleExtract_WorkstreamPrefix(t *testing.T) {
	e := NewRuleExtractor()

	mentions, err := e.Extract(context.Background(), "Frontend: built the new navigation bar")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention, got %d", len(mentions))
	}
	if mentions[0].CandidateWorkstream != "Frontend" {
		t.Errorf("workstream = %q, want Frontend", mentions[0].CandidateWorkstream)
	}
	if mentions[0].CandidateTask != "new navigation bar" {
		t.Errorf("task = %q", mentions[0].CandidateTask)
	}
}

func TestRuleExtract_WorkstreamTrailingPhrase(t *testing.T) {
	e := NewRuleExtractor()

	mentions, err := e.Extract(context.Background(), "Wrote onboarding docs for the Payments project")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention, got %d", len(mentions))
	}
	if mentions[0].CandidateWorkstream != "Payments" {
		t.Errorf("workstream = %q, want Payments", mentions[0].CandidateWorkstream)
	}
}

func TestRuleExtract_ContinuationExtendsPrevious(t *testing.T) {
	e := NewRuleExtractor()

	mentions, err := e.Extract(context.Background(),
		"Started the importer and finished its unit tests")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("continuation clause must extend the mention, got %d: %+v", len(mentions), mentions)
	}
	if mentions[0].TemporalCue != model.CuePast {
		t.Errorf("completion in the continuation should upgrade the cue, got %q", mentions[0].TemporalCue)
	}
}

func TestRuleExtract_EffortHint(t *testing.T) {
	e := NewRuleExtractor()

	mentions, err := e.Extract(context.Background(), "Spent all day debugging the payment flow")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("expected 1 mention, got %d", len(mentions))
	}
	if mentions[0].EffortHint != "all day" {
		t.Errorf("effort hint = %q, want all day", mentions[0].EffortHint)
	}
}

func TestRuleExtract_DateHint(t *testing.T) {
	e := NewRuleExtractor()

	cases := []struct {
		text string
		want string
	}{
		{"Yesterday I completed the user authentication module", "yesterday"},
		{"Finished the migration runbook last Friday", "last friday"},
		{"Will start the load tests in 3 days", "in 3 days"},
		{"Reviewed the design doc", ""},
	}

	for _, tc := range cases {
		mentions, err := e.Extract(context.Background(), tc.text)
		if err != nil {
			t.Fatalf("Extract(%q): %v", tc.text, err)
		}
		if len(mentions) != 1 {
			t.Fatalf("Extract(%q): expected 1 mention, got %d", tc.text, len(mentions))
		}
		if mentions[0].DateHint != tc.want {
			t.Errorf("Extract(%q): date hint = %q, want %q", tc.text, mentions[0].DateHint, tc.want)
		}
	}
}

func TestRuleExtract_NoTaskContent(t *testing.T) {
	e := NewRuleExtractor()

	for _, text := range []string{"", "   ", "Good morning everyone", "What a week"} {
		mentions, err := e.Extract(context.Background(), text)
		if err != nil {
			t.Fatalf("Extract(%q): %v", text, err)
		}
		if len(mentions) != 0 {
			t.Errorf("Extract(%q) = %+v, want no mentions", text, mentions)
		}
	}
}

func TestRuleExtract_MultipleSentences(t *testing.T) {
	e := NewRuleExtractor()

	mentions, err := e.Extract(context.Background(),
		"Deployed the search service. Currently reviewing the indexing pipeline. Will update the runbooks next week.")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(mentions) != 3 {
		t.Fatalf("expected 3 mentions, got %d: %+v", len(mentions), mentions)
	}
	wantCues := []model.TemporalCue{model.CuePast, model.CuePresentContinuous, model.CueFuture}
	for i, want := range wantCues {
		if mentions[i].TemporalCue != want {
			t.Errorf("mention %d cue = %q, want %q", i, mentions[i].TemporalCue, want)
		}
	}
}
