package store

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"internship-journey-agent/internal/model"
)

// StoredRow is a task row together with its surrogate id. Ids are assigned
// when a snapshot is first built from backing-store rows and preserved
// across successor snapshots, so a pending changeset can address rows
// without relying on sheet positions.
type StoredRow struct {
	ID  string
	Row model.TaskRow
}

// Snapshot is an immutable view of the tracking sheet at a point in time.
// All mutation goes through WithRows, which returns a successor snapshot;
// the original stays valid for any in-flight preview.
type Snapshot struct {
	rows    []StoredRow
	version string
}

// New builds a snapshot from freshly loaded rows, assigning surrogate ids.
func New(rows []model.TaskRow) *Snapshot {
	stored := make([]StoredRow, 0, len(rows))
	for _, r := range rows {
		r.Tags = model.NormalizeTags(r.Tags)
		stored = append(stored, StoredRow{ID: uuid.NewString(), Row: r})
	}
	return fromStored(stored)
}

// FromStored builds a snapshot from rows that already carry surrogate ids.
func FromStored(rows []StoredRow) *Snapshot {
	stored := make([]StoredRow, len(rows))
	copy(stored, rows)
	for i := range stored {
		stored[i].Row.Tags = model.NormalizeTags(stored[i].Row.Tags)
	}
	return fromStored(stored)
}

func fromStored(rows []StoredRow) *Snapshot {
	return &Snapshot{rows: rows, version: fingerprint(rows)}
}

// Version is a content fingerprint of the row set. Two snapshots with the
// same version hold identical rows, which is what stale-state detection
// compares at apply time.
func (s *Snapshot) Version() string {
	return s.version
}

// Rows returns a copy of the row set in sheet order.
func (s *Snapshot) Rows() []StoredRow {
	out := make([]StoredRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of rows.
func (s *Snapshot) Len() int {
	return len(s.rows)
}

// Row looks up a row by surrogate id.
func (s *Snapshot) Row(id string) (StoredRow, bool) {
	for _, r := range s.rows {
		if r.ID == id {
			return r, true
		}
	}
	return StoredRow{}, false
}

// Workstreams returns the distinct workstream names in first-seen order.
func (s *Snapshot) Workstreams() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range s.rows {
		ws := strings.TrimSpace(r.Row.Workstream)
		if ws == "" {
			continue
		}
		key := strings.ToLower(ws)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ws)
	}
	return out
}

// FindWorkstream resolves a workstream name case-insensitively, returning
// the stored casing.
func (s *Snapshot) FindWorkstream(name string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return "", false
	}
	for _, r := range s.rows {
		if strings.ToLower(strings.TrimSpace(r.Row.Workstream)) == want {
			return strings.TrimSpace(r.Row.Workstream), true
		}
	}
	return "", false
}

// SharedWorkstreamTags returns tags carried by at least two rows of the
// given workstream. These are candidates for reuse on new rows created
// under that workstream.
func (s *Snapshot) SharedWorkstreamTags(workstream string) []string {
	want := strings.ToLower(strings.TrimSpace(workstream))
	counts := make(map[string]int)
	casing := make(map[string]string)
	order := make([]string, 0)

	for _, r := range s.rows {
		if strings.ToLower(strings.TrimSpace(r.Row.Workstream)) != want {
			continue
		}
		for _, tag := range r.Row.Tags {
			key := strings.ToLower(tag)
			if counts[key] == 0 {
				casing[key] = tag
				order = append(order, key)
			}
			counts[key]++
		}
	}

	out := make([]string, 0)
	for _, key := range order {
		if counts[key] >= 2 {
			out = append(out, casing[key])
		}
	}
	return out
}

// WithRows returns the successor snapshot holding the given row set.
func (s *Snapshot) WithRows(rows []StoredRow) *Snapshot {
	return FromStored(rows)
}

func fingerprint(rows []StoredRow) string {
	h := sha256.New()
	for _, r := range rows {
		cells := FormatRow(r.Row)
		h.Write([]byte(strings.Join(cells, "\x1f")))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
