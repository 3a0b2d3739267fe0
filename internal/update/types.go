package update

import (
	"internship-journey-agent/internal/changeset"
	"internship-journey-agent/internal/store"
)

// InterpretInput is one raw daily update plus the snapshot to reconcile
// against.
type InterpretInput struct {
	RawText  string
	Snapshot *store.Snapshot
}

// FieldChange is one column diff in a preview card.
type FieldChange struct {
	Column string `json:"column"`
	Old    string `json:"old"`
	New    string `json:"new"`
}

// PreviewCard is the human-readable rendering of one proposed operation.
type PreviewCard struct {
	OpID       string           `json:"op_id"`
	Action     string           `json:"action"` // "create" or "update"
	Workstream string           `json:"workstream"`
	Task       string           `json:"task"`
	Confidence float64          `json:"confidence"`
	Flags      []changeset.Flag `json:"flags,omitempty"`
	Changes    []FieldChange    `json:"changes"`
}

// InterpretOutput carries the pending changeset, its preview rendering and
// the snapshot it was derived from. An update with no extractable mentions
// yields an empty changeset, not an error.
type InterpretOutput struct {
	Changeset    changeset.Changeset
	Cards        []PreviewCard
	Snapshot     *store.Snapshot
	MentionCount int
}

// ApplyInput is an approved changeset plus the snapshot it was built from.
type ApplyInput struct {
	Changeset changeset.Changeset
	Snapshot  *store.Snapshot
}

// ApplyOutput reports the applied changeset and the successor snapshot.
type ApplyOutput struct {
	Snapshot *store.Snapshot
	Created  int
	Updated  int
	// SkippedDuplicates counts Create ops whose identical row already
	// existed at apply time (idempotent re-apply).
	SkippedDuplicates int
	BackupFile        string
}
