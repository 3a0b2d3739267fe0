package model

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a tracked task row.
type Status string

const (
	StatusUpcoming   Status = "Upcoming"
	StatusInProgress Status = "In Progress"
	StatusComplete   Status = "Complete"
	StatusOnHold     Status = "On Hold"
)

// StatusRank orders statuses by progress: Upcoming < On Hold < In Progress < Complete.
// Used when two mentions of the same row disagree within one update.
func StatusRank(s Status) int {
	switch s {
	case StatusUpcoming:
		return 0
	case StatusOnHold:
		return 1
	case StatusInProgress:
		return 2
	case StatusComplete:
		return 3
	}
	return -1
}

// ParseStatus maps a sheet cell to a Status. Legacy "Deferred" rows are
// treated as On Hold instead of being rejected at load time.
func ParseStatus(raw string) (Status, bool) {
	switch strings.TrimSpace(raw) {
	case string(StatusUpcoming):
		return StatusUpcoming, true
	case string(StatusInProgress):
		return StatusInProgress, true
	case string(StatusComplete):
		return StatusComplete, true
	case string(StatusOnHold), "Deferred":
		return StatusOnHold, true
	}
	return "", false
}

// Priority is the row priority column value.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority maps a sheet cell to a Priority. Empty cells default to Medium.
func ParsePriority(raw string) (Priority, bool) {
	switch strings.TrimSpace(raw) {
	case string(PriorityLow):
		return PriorityLow, true
	case string(PriorityMedium), "":
		return PriorityMedium, true
	case string(PriorityHigh):
		return PriorityHigh, true
	}
	return "", false
}

// TaskRow is one row of the journey tracking sheet.
type TaskRow struct {
	Workstream string
	Task       string
	SubTask    string
	StartDate  *time.Time
	EndDate    *time.Time
	Effort     float64 // man-days
	Status     Status
	Priority   Priority
	Tags       []string
}

// NormalizeTags trims, drops empties and deduplicates case-insensitively,
// keeping the casing of the first occurrence.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
