// Package changeset assembles matched mentions into an ordered,
// deduplicated list of proposed row operations, each previewable as a
// per-column diff, and applies field maps back onto rows.
package changeset

// Kind distinguishes the two operation types.
type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
)

// Flag marks an operation for manual attention in the preview.
type Flag string

const (
	// FlagAmbiguousMatch: the matcher found a tie and fell back to Create.
	FlagAmbiguousMatch Flag = "ambiguous_match"
	// FlagStatusRegression: merging two mentions of the same row would
	// have moved its status backwards; the advanced status was kept and
	// the op demoted to low confidence instead of silently dropping the
	// conflict.
	FlagStatusRegression Flag = "status_regression"
)

// Confidence levels assigned by the builder.
const (
	ConfidenceCreate = 0.9
	ConfidenceLow    = 0.3
)

// Op is one proposed change. Fields maps sheet column names to new cell
// values: the full record for a Create, only changed columns for an
// Update.
type Op struct {
	ID          string            `json:"id"`
	Kind        Kind              `json:"kind"`
	TargetRowID string            `json:"target_row_id,omitempty"`
	Fields      map[string]string `json:"fields"`
	Confidence  float64           `json:"confidence"`
	Flags       []Flag            `json:"flags,omitempty"`
}

// HasFlag reports whether the op carries the given flag.
func (o Op) HasFlag(f Flag) bool {
	for _, have := range o.Flags {
		if have == f {
			return true
		}
	}
	return false
}

// Changeset is the ordered op list pending approval, pinned to the
// snapshot version it was derived from.
type Changeset struct {
	ID              string `json:"id"`
	SnapshotVersion string `json:"snapshot_version"`
	Ops             []Op   `json:"ops"`
}

// Empty reports whether there is nothing to apply.
func (c Changeset) Empty() bool {
	return len(c.Ops) == 0
}
