package changeset

import (
	"testing"
	"time"

	"internship-journey-agent/internal/matcher"
	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
)

func date(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testSnapshot() *store.Snapshot {
	return store.New([]model.TaskRow{
		{
			Workstream: "Platform",
			Task:       "User authentication module",
			StartDate:  date(2026, 3, 10),
			EndDate:    date(2026, 3, 20),
			Effort:     2,
			Status:     model.StatusInProgress,
			Priority:   model.PriorityHigh,
		},
	})
}

func updateMatch(score float64) matcher.MatchResult {
	return matcher.MatchResult{Decision: matcher.DecisionUpdate, Score: score}
}

func TestAddCreate(t *testing.T) {
	snap := testSnapshot()
	b := NewBuilder(snap)

	b.AddCreate(model.TaskRow{
		Workstream: "Platform",
		Task:       "Onboarding docs",
		Status:     model.StatusInProgress,
		Priority:   model.PriorityMedium,
	}, matcher.MatchResult{Decision: matcher.DecisionCreate})

	cs := b.Build()
	if len(cs.Ops) != 1 {
		t.Fatalf("expected 1 op, got %d", len(cs.Ops))
	}
	op := cs.Ops[0]
	if op.Kind != KindCreate || op.TargetRowID != "" {
		t.Errorf("unexpected op shape: %+v", op)
	}
	if op.Confidence != ConfidenceCreate {
		t.Errorf("confidence = %v, want %v", op.Confidence, ConfidenceCreate)
	}
	if len(op.Fields) != len(store.Columns) {
		t.Errorf("create op must carry the full record, got %d fields", len(op.Fields))
	}
	if op.Fields["Task"] != "Onboarding docs" {
		t.Errorf("Task field = %q", op.Fields["Task"])
	}
}

func TestAddCreate_AmbiguousFlagged(t *testing.T) {
	b := NewBuilder(testSnapshot())

	b.AddCreate(model.TaskRow{Task: "API documentation", Status: model.StatusInProgress, Priority: model.PriorityMedium},
		matcher.MatchResult{Decision: matcher.DecisionCreate, Ambiguous: true})

	op := b.Build().Ops[0]
	if !op.HasFlag(FlagAmbiguousMatch) {
		t.Errorf("ambiguous create must carry the flag")
	}
	if op.Confidence != ConfidenceLow {
		t.Errorf("confidence = %v, want %v", op.Confidence, ConfidenceLow)
	}
}

func TestAddUpdate_DiffOnly(t *testing.T) {
	snap := testSnapshot()
	rowID := snap.Rows()[0].ID
	b := NewBuilder(snap)

	proposed := snap.Rows()[0].Row
	proposed.Status = model.StatusComplete
	proposed.EndDate = date(2026, 3, 16)

	b.AddUpdate(rowID, proposed, updateMatch(0.8))

	op := b.Build().Ops[0]
	if op.Kind != KindUpdate || op.TargetRowID != rowID {
		t.Fatalf("unexpected op shape: %+v", op)
	}
	if len(op.Fields) != 2 {
		t.Errorf("expected only changed columns, got %v", op.Fields)
	}
	if op.Fields["Status"] != "Complete" || op.Fields["End Date"] != "03/16/2026" {
		t.Errorf("unexpected fields: %v", op.Fields)
	}
	if op.Confidence != 0.8 {
		t.Errorf("confidence = %v, want match score", op.Confidence)
	}
}

func TestAddUpdate_MergesSameTarget(t *testing.T) {
	snap := testSnapshot()
	rowID := snap.Rows()[0].ID
	b := NewBuilder(snap)

	first := snap.Rows()[0].Row
	first.Status = model.StatusInProgress
	b.AddUpdate(rowID, first, updateMatch(0.9))

	second := snap.Rows()[0].Row
	second.Status = model.StatusComplete
	second.Effort = 2.5
	b.AddUpdate(rowID, second, updateMatch(0.7))

	cs := b.Build()
	if len(cs.Ops) != 1 {
		t.Fatalf("expected merged single op, got %d", len(cs.Ops))
	}
	op := cs.Ops[0]
	if op.Fields["Status"] != "Complete" {
		t.Errorf("status = %q, want the more advanced Complete", op.Fields["Status"])
	}
	if op.Fields["Effort"] != "2.5" {
		t.Errorf("later effort must override, got %q", op.Fields["Effort"])
	}
	if op.Confidence != 0.7 {
		t.Errorf("merged confidence = %v, want the lower score", op.Confidence)
	}
	if op.HasFlag(FlagStatusRegression) {
		t.Errorf("forward progress must not be flagged")
	}
}

func TestAddUpdate_RegressionAcrossMentions(t *testing.T) {
	snap := testSnapshot()
	rowID := snap.Rows()[0].ID
	b := NewBuilder(snap)

	done := snap.Rows()[0].Row
	done.Status = model.StatusComplete
	b.AddUpdate(rowID, done, updateMatch(0.9))

	// later mention tries to move the same row backwards
	back := snap.Rows()[0].Row
	back.Status = model.StatusInProgress
	b.AddUpdate(rowID, back, updateMatch(0.9))

	op := b.Build().Ops[0]
	if op.Fields["Status"] != "Complete" {
		t.Errorf("status = %q, the advanced status must win", op.Fields["Status"])
	}
	if !op.HasFlag(FlagStatusRegression) {
		t.Errorf("regression must be flagged")
	}
	if op.Confidence != ConfidenceLow {
		t.Errorf("confidence = %v, want floored at %v", op.Confidence, ConfidenceLow)
	}
}

func TestAddUpdate_RegressionAgainstStoredStatus(t *testing.T) {
	snap := testSnapshot()
	rowID := snap.Rows()[0].ID
	b := NewBuilder(snap)

	// a single blocked mention must still be able to put the row on hold
	proposed := snap.Rows()[0].Row
	proposed.Status = model.StatusOnHold
	b.AddUpdate(rowID, proposed, updateMatch(0.9))

	op := b.Build().Ops[0]
	if op.Fields["Status"] != "On Hold" {
		t.Errorf("Status field = %q, the proposed status must stay applyable", op.Fields["Status"])
	}
	if !op.HasFlag(FlagStatusRegression) {
		t.Errorf("regression against the stored row must be flagged")
	}
	if op.Confidence != ConfidenceLow {
		t.Errorf("confidence = %v, want floored at %v", op.Confidence, ConfidenceLow)
	}
}

func TestAddUpdate_RegressionFromComplete(t *testing.T) {
	snap := store.New([]model.TaskRow{
		{Task: "Release notes", Status: model.StatusComplete, Priority: model.PriorityMedium},
	})
	rowID := snap.Rows()[0].ID
	b := NewBuilder(snap)

	proposed := snap.Rows()[0].Row
	proposed.Status = model.StatusInProgress
	b.AddUpdate(rowID, proposed, updateMatch(0.9))

	op := b.Build().Ops[0]
	if op.Fields["Status"] != "In Progress" {
		t.Errorf("Status field = %q, want the proposed In Progress", op.Fields["Status"])
	}
	if !op.HasFlag(FlagStatusRegression) {
		t.Errorf("regression against the stored row must be flagged")
	}
}

func TestAddUpdate_AdvanceBackToStored(t *testing.T) {
	snap := store.New([]model.TaskRow{
		{Task: "Release notes", Status: model.StatusComplete, Priority: model.PriorityMedium},
	})
	rowID := snap.Rows()[0].ID
	b := NewBuilder(snap)

	// first mention regresses, second re-confirms the stored Complete
	first := snap.Rows()[0].Row
	first.Status = model.StatusInProgress
	b.AddUpdate(rowID, first, updateMatch(0.9))

	second := snap.Rows()[0].Row
	second.Status = model.StatusComplete
	b.AddUpdate(rowID, second, updateMatch(0.9))

	op := b.Build().Ops[0]
	if _, ok := op.Fields["Status"]; ok {
		t.Errorf("status equal to the stored value must not be written, got %v", op.Fields)
	}
}

func TestBuild_PinsSnapshotVersion(t *testing.T) {
	snap := testSnapshot()
	cs := NewBuilder(snap).Build()

	if cs.SnapshotVersion != snap.Version() {
		t.Errorf("changeset version %q does not pin snapshot version %q", cs.SnapshotVersion, snap.Version())
	}
	if cs.ID == "" {
		t.Errorf("changeset must carry an id")
	}
	if !cs.Empty() {
		t.Errorf("no ops added, changeset should be empty")
	}
}

func TestApplyTo_RejectsMalformedValue(t *testing.T) {
	op := Op{
		Kind:        KindUpdate,
		TargetRowID: "row",
		Fields:      map[string]string{"Effort": "a lot"},
	}

	base := model.TaskRow{Task: "Release notes", Status: model.StatusComplete, Priority: model.PriorityMedium}
	if _, err := op.ApplyTo(base); err == nil {
		t.Fatalf("expected parse error for non-numeric effort")
	}
}

func TestApplyTo_OverlaysFields(t *testing.T) {
	base := model.TaskRow{
		Task:      "Release notes",
		StartDate: date(2026, 3, 10),
		EndDate:   date(2026, 3, 12),
		Effort:    1,
		Status:    model.StatusInProgress,
		Priority:  model.PriorityMedium,
	}
	op := Op{
		Kind:        KindUpdate,
		TargetRowID: "row",
		Fields:      map[string]string{"Status": "Complete", "Effort": "1.5"},
	}

	row, err := op.ApplyTo(base)
	if err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if row.Status != model.StatusComplete || row.Effort != 1.5 {
		t.Errorf("overlay failed: %+v", row)
	}
	if row.Task != "Release notes" {
		t.Errorf("untouched columns must survive, got %q", row.Task)
	}
}
