package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"internship-journey-agent/internal/model"
)

// DateFormat is the sheet's date cell layout.
const DateFormat = "01/02/2006"

// Columns is the fixed header of the tracking sheet, in order.
var Columns = []string{
	"Workstream", "Task", "Sub Task", "Start Date",
	"End Date", "Effort", "Status", "Priority", "Tags",
}

// ValidateHeader checks that a loaded header row carries every expected
// column. Extra columns are tolerated; missing ones are not.
func ValidateHeader(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = true
	}
	missing := make([]string, 0)
	for _, col := range Columns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("sheet is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseRow decodes one sheet row (cells in Columns order) into a TaskRow.
func ParseRow(cells []string) (model.TaskRow, error) {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	row := model.TaskRow{
		Workstream: get(0),
		Task:       get(1),
		SubTask:    get(2),
	}

	var err error
	if row.StartDate, err = parseDate(get(3)); err != nil {
		return model.TaskRow{}, fmt.Errorf("bad start date %q: %w", get(3), err)
	}
	if row.EndDate, err = parseDate(get(4)); err != nil {
		return model.TaskRow{}, fmt.Errorf("bad end date %q: %w", get(4), err)
	}
	if row.StartDate != nil && row.EndDate != nil && row.EndDate.Before(*row.StartDate) {
		return model.TaskRow{}, fmt.Errorf("end date %s before start date %s", get(4), get(3))
	}

	if raw := get(5); raw != "" {
		effort, convErr := strconv.ParseFloat(raw, 64)
		if convErr != nil {
			return model.TaskRow{}, fmt.Errorf("bad effort %q: %w", raw, convErr)
		}
		if effort < 0 {
			return model.TaskRow{}, fmt.Errorf("negative effort %q", raw)
		}
		row.Effort = effort
	}

	status, ok := model.ParseStatus(get(6))
	if !ok {
		return model.TaskRow{}, fmt.Errorf("unknown status %q", get(6))
	}
	row.Status = status

	priority, ok := model.ParsePriority(get(7))
	if !ok {
		return model.TaskRow{}, fmt.Errorf("unknown priority %q", get(7))
	}
	row.Priority = priority

	if tags := get(8); tags != "" {
		row.Tags = model.NormalizeTags(strings.Split(tags, ","))
	}

	return row, nil
}

// FormatRow encodes a TaskRow back into sheet cells, Columns order.
func FormatRow(row model.TaskRow) []string {
	return []string{
		row.Workstream,
		row.Task,
		row.SubTask,
		formatDate(row.StartDate),
		formatDate(row.EndDate),
		formatEffort(row.Effort),
		string(row.Status),
		string(row.Priority),
		strings.Join(row.Tags, ","),
	}
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateFormat)
}

func formatEffort(effort float64) string {
	if effort == 0 {
		return "0"
	}
	return strconv.FormatFloat(effort, 'f', -1, 64)
}
