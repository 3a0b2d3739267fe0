package store

import (
	"strings"
	"testing"
	"time"

	"internship-journey-agent/internal/model"
)

func date(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleRows() []model.TaskRow {
	return []model.TaskRow{
		{
			Workstream: "Platform",
			Task:       "User authentication module",
			StartDate:  date(2026, 3, 10),
			EndDate:    date(2026, 3, 20),
			Effort:     2,
			Status:     model.StatusInProgress,
			Priority:   model.PriorityHigh,
			Tags:       []string{"backend", "security"},
		},
		{
			Workstream: "Platform",
			Task:       "Billing integration",
			Status:     model.StatusUpcoming,
			Priority:   model.PriorityMedium,
			Tags:       []string{"backend"},
		},
	}
}

func TestSnapshot_VersionIsContentBased(t *testing.T) {
	a := New(sampleRows())
	b := New(sampleRows())

	if a.Version() != b.Version() {
		t.Errorf("fresh loads of identical content must share a version")
	}

	rows := sampleRows()
	rows[0].Status = model.StatusComplete
	c := New(rows)
	if c.Version() == a.Version() {
		t.Errorf("different content must produce a different version")
	}
}

func TestSnapshot_IDsAssignedAndPreserved(t *testing.T) {
	snap := New(sampleRows())

	seen := make(map[string]bool)
	for _, r := range snap.Rows() {
		if r.ID == "" {
			t.Fatalf("row without surrogate id: %+v", r.Row)
		}
		if seen[r.ID] {
			t.Fatalf("duplicate surrogate id %s", r.ID)
		}
		seen[r.ID] = true
	}

	rows := snap.Rows()
	rows[0].Row.Status = model.StatusComplete
	next := snap.WithRows(rows)

	if next.Rows()[0].ID != snap.Rows()[0].ID {
		t.Errorf("surrogate ids must survive into successor snapshots")
	}
	if next.Version() == snap.Version() {
		t.Errorf("successor with changed content must carry a new version")
	}
}

func TestSnapshot_RowsIsACopy(t *testing.T) {
	snap := New(sampleRows())

	rows := snap.Rows()
	rows[0].Row.Task = "mutated"

	if snap.Rows()[0].Row.Task == "mutated" {
		t.Errorf("Rows() must return a copy")
	}
}

func TestSnapshot_FindWorkstream(t *testing.T) {
	snap := New(sampleRows())

	if ws, ok := snap.FindWorkstream("platform"); !ok || ws != "Platform" {
		t.Errorf("FindWorkstream(platform) = %q, %v", ws, ok)
	}
	if _, ok := snap.FindWorkstream("nonexistent"); ok {
		t.Errorf("unknown workstream must not resolve")
	}
	if _, ok := snap.FindWorkstream(""); ok {
		t.Errorf("empty name must not resolve")
	}
}

func TestSnapshot_SharedWorkstreamTags(t *testing.T) {
	snap := New(sampleRows())

	got := snap.SharedWorkstreamTags("Platform")
	if len(got) != 1 || got[0] != "backend" {
		t.Errorf("SharedWorkstreamTags = %v, want [backend]", got)
	}
}

func TestValidateHeader(t *testing.T) {
	if err := ValidateHeader(Columns); err != nil {
		t.Errorf("canonical header rejected: %v", err)
	}

	extra := append([]string{"Notes"}, Columns...)
	if err := ValidateHeader(extra); err != nil {
		t.Errorf("extra columns must be tolerated: %v", err)
	}

	err := ValidateHeader([]string{"Workstream", "Task"})
	if err == nil || !strings.Contains(err.Error(), "Status") {
		t.Errorf("missing columns must be named, got %v", err)
	}
}

func TestParseRow(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		row, err := ParseRow([]string{
			"Platform", "Billing integration", "Stripe setup",
			"03/10/2026", "03/20/2026", "1.5", "In Progress", "High", "backend, api, Backend",
		})
		if err != nil {
			t.Fatalf("ParseRow: %v", err)
		}
		if row.Effort != 1.5 || row.Status != model.StatusInProgress || row.Priority != model.PriorityHigh {
			t.Errorf("unexpected row: %+v", row)
		}
		if len(row.Tags) != 2 {
			t.Errorf("tags must be deduplicated case-insensitively, got %v", row.Tags)
		}
	})

	t.Run("legacy deferred status", func(t *testing.T) {
		row, err := ParseRow([]string{"", "Old task", "", "", "", "", "Deferred", "", ""})
		if err != nil {
			t.Fatalf("ParseRow: %v", err)
		}
		if row.Status != model.StatusOnHold {
			t.Errorf("Deferred should load as On Hold, got %q", row.Status)
		}
	})

	t.Run("empty priority defaults to medium", func(t *testing.T) {
		row, err := ParseRow([]string{"", "Task", "", "", "", "", "Upcoming", "", ""})
		if err != nil {
			t.Fatalf("ParseRow: %v", err)
		}
		if row.Priority != model.PriorityMedium {
			t.Errorf("priority = %q, want Medium", row.Priority)
		}
	})

	t.Run("end before start rejected", func(t *testing.T) {
		_, err := ParseRow([]string{"", "Task", "", "03/20/2026", "03/10/2026", "", "Upcoming", "", ""})
		if err == nil {
			t.Fatalf("expected date order error")
		}
	})

	t.Run("negative effort rejected", func(t *testing.T) {
		_, err := ParseRow([]string{"", "Task", "", "", "", "-1", "Upcoming", "", ""})
		if err == nil {
			t.Fatalf("expected negative effort error")
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := ParseRow([]string{"", "Task", "", "", "", "", "Doing", "", ""})
		if err == nil {
			t.Fatalf("expected unknown status error")
		}
	})
}

func TestFormatRow_RoundTrip(t *testing.T) {
	original := model.TaskRow{
		Workstream: "Platform",
		Task:       "Billing integration",
		SubTask:    "Stripe setup",
		StartDate:  date(2026, 3, 10),
		EndDate:    date(2026, 3, 20),
		Effort:     0.25,
		Status:     model.StatusComplete,
		Priority:   model.PriorityLow,
		Tags:       []string{"backend", "api"},
	}

	parsed, err := ParseRow(FormatRow(original))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if parsed.Effort != original.Effort || parsed.Status != original.Status {
		t.Errorf("round trip changed the row: %+v", parsed)
	}
	if !parsed.StartDate.Equal(*original.StartDate) || !parsed.EndDate.Equal(*original.EndDate) {
		t.Errorf("round trip changed the dates: %+v", parsed)
	}
}
