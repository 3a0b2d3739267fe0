package usecase

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"internship-journey-agent/internal/changeset"
	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
	"internship-journey-agent/internal/update"
)

// proposeCreate builds the full record for a brand-new row.
func (uc *implUseCase) proposeCreate(snap *store.Snapshot, m model.Mention, status model.Status, effort float64) model.TaskRow {
	workstream := uc.match.ResolveWorkstream(m, snap)
	start, end := uc.dates.SpanForStatus(m.CandidateTask, string(status), uc.now())

	// an explicit calendar phrase in the mention beats the inferred span
	if hint := uc.resolveDateHint(m); hint != nil {
		if status == model.StatusComplete {
			end = *hint
			if start.After(end) {
				start = end.AddDate(0, 0, -1)
			}
		} else {
			start = *hint
			if end.Before(start) {
				end = start.AddDate(0, 0, 2)
			}
		}
	}

	return model.TaskRow{
		Workstream: workstream,
		Task:       m.CandidateTask,
		SubTask:    m.CandidateSubTask,
		StartDate:  &start,
		EndDate:    &end,
		Effort:     effort,
		Status:     status,
		Priority:   model.PriorityMedium,
		Tags:       uc.match.SuggestTags(m, snap, workstream),
	}
}

// proposeUpdate derives the updated shape of an existing row from a
// mention. The row's own labels are kept: a partial mention must not
// rewrite the task text it happened to match.
func (uc *implUseCase) proposeUpdate(existing model.TaskRow, m model.Mention, status model.Status, effort float64) model.TaskRow {
	proposed := existing
	proposed.Status = status

	// effort: an explicit hint re-estimates, otherwise the stored figure
	// stands unless the row never had one
	if m.EffortHint != "" || existing.Effort == 0 {
		proposed.Effort = effort
	}

	start, end := uc.dates.SpanForStatus(existing.Task, string(status), uc.now())
	if proposed.StartDate == nil {
		proposed.StartDate = &start
	}
	if status == model.StatusComplete || proposed.EndDate == nil {
		proposed.EndDate = &end
	}
	if hint := uc.resolveDateHint(m); hint != nil {
		// "finished X yesterday" pins the end; a stated date on anything
		// still open moves the start
		if status == model.StatusComplete {
			proposed.EndDate = hint
			if proposed.StartDate != nil && proposed.StartDate.After(*hint) {
				proposed.StartDate = hint
			}
		} else {
			proposed.StartDate = hint
		}
	}
	if proposed.StartDate != nil && proposed.EndDate.Before(*proposed.StartDate) {
		proposed.EndDate = proposed.StartDate
	}

	return proposed
}

// resolveDateHint turns a mention's calendar phrase into an absolute date,
// or nil when there is no phrase or it does not parse.
func (uc *implUseCase) resolveDateHint(m model.Mention) *time.Time {
	if m.DateHint == "" {
		return nil
	}
	t, err := uc.dates.Parse(m.DateHint, uc.now())
	if err != nil {
		return nil
	}
	return &t
}

// previewCards renders one card per op, with old/new values per column.
func (uc *implUseCase) previewCards(cs changeset.Changeset, snap *store.Snapshot) ([]update.PreviewCard, error) {
	cards := make([]update.PreviewCard, 0, len(cs.Ops))

	for _, op := range cs.Ops {
		var base model.TaskRow
		if op.Kind == changeset.KindUpdate {
			row, ok := snap.Row(op.TargetRowID)
			if !ok {
				return nil, fmt.Errorf("op %s targets unknown row %s", op.ID, op.TargetRowID)
			}
			base = row.Row
		}

		oldCells := store.FormatRow(base)
		changes := make([]update.FieldChange, 0, len(op.Fields))
		for i, col := range store.Columns {
			value, ok := op.Fields[col]
			if !ok || value == oldCells[i] {
				continue
			}
			old := ""
			if op.Kind == changeset.KindUpdate {
				old = oldCells[i]
			}
			changes = append(changes, update.FieldChange{Column: col, Old: old, New: value})
		}

		result, err := op.ApplyTo(base)
		if err != nil {
			return nil, err
		}

		cards = append(cards, update.PreviewCard{
			OpID:       op.ID,
			Action:     string(op.Kind),
			Workstream: result.Workstream,
			Task:       result.Task,
			Confidence: op.Confidence,
			Flags:      op.Flags,
			Changes:    changes,
		})
	}

	return cards, nil
}

// writeBackup dumps the row set being replaced to a timestamped JSON file.
// Best effort; a failed backup logs a warning and does not block apply.
func (uc *implUseCase) writeBackup(rows []store.StoredRow) (string, error) {
	if uc.backupDir == "" {
		return "", nil
	}

	type backupRow struct {
		Cells []string `json:"cells"`
	}
	dump := make([]backupRow, 0, len(rows))
	for _, r := range rows {
		dump = append(dump, backupRow{Cells: store.FormatRow(r.Row)})
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(uc.backupDir, 0o755); err != nil {
		return "", err
	}

	name := filepath.Join(uc.backupDir, fmt.Sprintf("backup_sheet_%s.json", uc.now().Format("20060102_150405")))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return "", err
	}
	return name, nil
}
