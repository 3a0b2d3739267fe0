package changeset

import (
	"github.com/google/uuid"

	"internship-journey-agent/internal/matcher"
	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
)

// Builder accumulates per-mention results for one update cycle and emits
// the deduplicated op list. Ops keep mention order; two mentions that
// resolve to the same row merge into one Update op.
type Builder struct {
	snap     *store.Snapshot
	ops      []Op
	byTarget map[string]int // row id → index into ops
}

func NewBuilder(snap *store.Snapshot) *Builder {
	return &Builder{
		snap:     snap,
		byTarget: make(map[string]int),
	}
}

// AddCreate records a new-row operation.
func (b *Builder) AddCreate(proposed model.TaskRow, match matcher.MatchResult) {
	op := Op{
		ID:         uuid.NewString(),
		Kind:       KindCreate,
		Fields:     FieldsFromRow(proposed),
		Confidence: ConfidenceCreate,
	}
	if match.Ambiguous {
		op.Flags = append(op.Flags, FlagAmbiguousMatch)
		op.Confidence = ConfidenceLow
	}
	b.ops = append(b.ops, op)
}

// AddUpdate records an update to an existing row, merging with any earlier
// op that targets the same row: later columns override earlier ones, and
// between mentions status only ever advances. A later mention attempting a
// regression keeps the advanced status but flags the op for manual review.
func (b *Builder) AddUpdate(rowID string, proposed model.TaskRow, match matcher.MatchResult) {
	existing, ok := b.snap.Row(rowID)
	if !ok {
		return
	}

	if idx, merged := b.byTarget[rowID]; merged {
		b.mergeInto(idx, existing.Row, proposed, match)
		return
	}

	fields := DiffFields(existing.Row, proposed)
	op := Op{
		ID:          uuid.NewString(),
		Kind:        KindUpdate,
		TargetRowID: rowID,
		Fields:      fields,
		Confidence:  match.Score,
	}

	// a lone mention moving the row backwards (Complete back to In
	// Progress, In Progress to On Hold) keeps its proposed status so the
	// transition stays applyable, but is flagged for manual review
	if model.StatusRank(proposed.Status) < model.StatusRank(existing.Row.Status) {
		op.Flags = append(op.Flags, FlagStatusRegression)
		if op.Confidence > ConfidenceLow {
			op.Confidence = ConfidenceLow
		}
	}

	b.byTarget[rowID] = len(b.ops)
	b.ops = append(b.ops, op)
}

func (b *Builder) mergeInto(idx int, stored, proposed model.TaskRow, match matcher.MatchResult) {
	op := &b.ops[idx]

	for col, value := range DiffFields(stored, proposed) {
		if col != "Status" {
			op.Fields[col] = value
		}
	}
	b.mergeStatus(op, proposed.Status)

	if match.Score < op.Confidence {
		op.Confidence = match.Score
	}
}

// mergeStatus keeps the most advanced status seen for the row within this
// update (Upcoming < On Hold < In Progress < Complete). The incoming
// status is compared against what the op would currently leave the row
// with, so a later mention regressing an earlier Complete is caught even
// when it agrees with the stored row.
func (b *Builder) mergeStatus(op *Op, newStatus model.Status) {
	current, haveCurrent := b.currentStatus(op)
	if !haveCurrent || model.StatusRank(newStatus) > model.StatusRank(current) {
		if row, ok := b.snap.Row(op.TargetRowID); ok && row.Row.Status == newStatus {
			// advancing back to the stored value: nothing to write
			delete(op.Fields, "Status")
		} else {
			op.Fields["Status"] = string(newStatus)
		}
		return
	}
	if model.StatusRank(newStatus) < model.StatusRank(current) {
		// a later mention tried to move the row backwards
		if !op.HasFlag(FlagStatusRegression) {
			op.Flags = append(op.Flags, FlagStatusRegression)
		}
		if op.Confidence > ConfidenceLow {
			op.Confidence = ConfidenceLow
		}
	}
}

// currentStatus is the status the op would leave the row with: the pending
// field value if set, else the stored row's status.
func (b *Builder) currentStatus(op *Op) (model.Status, bool) {
	if raw, ok := op.Fields["Status"]; ok {
		return model.ParseStatus(raw)
	}
	row, ok := b.snap.Row(op.TargetRowID)
	if !ok {
		return "", false
	}
	return row.Row.Status, true
}

// Build emits the changeset pinned to the builder's snapshot version.
func (b *Builder) Build() Changeset {
	return Changeset{
		ID:              uuid.NewString(),
		SnapshotVersion: b.snap.Version(),
		Ops:             b.ops,
	}
}
