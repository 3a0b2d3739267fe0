package http

import (
	"errors"

	"internship-journey-agent/internal/store"
	"internship-journey-agent/internal/update"
)

// --- Request DTOs ---

type interpretReq struct {
	Text   string `json:"text" binding:"required"`
	UserID string `json:"user_id"`
}

func (r interpretReq) validate() error {
	if len(r.Text) > 10000 {
		return errors.New("text exceeds 10000 characters")
	}
	return nil
}

// --- Response DTOs ---

type fieldChangeResp struct {
	Column string `json:"column"`
	Old    string `json:"old"`
	New    string `json:"new"`
}

type cardResp struct {
	OpID       string            `json:"op_id"`
	Action     string            `json:"action"`
	Workstream string            `json:"workstream"`
	Task       string            `json:"task"`
	Confidence float64           `json:"confidence"`
	Flags      []string          `json:"flags,omitempty"`
	Changes    []fieldChangeResp `json:"changes"`
}

type interpretResp struct {
	ChangesetID  string     `json:"changeset_id"`
	Version      string     `json:"version"`
	MentionCount int        `json:"mention_count"`
	Cards        []cardResp `json:"cards"`
}

func (h *handler) newInterpretResp(out update.InterpretOutput) interpretResp {
	cards := make([]cardResp, len(out.Cards))
	for i, card := range out.Cards {
		changes := make([]fieldChangeResp, len(card.Changes))
		for j, ch := range card.Changes {
			changes[j] = fieldChangeResp{Column: ch.Column, Old: ch.Old, New: ch.New}
		}
		flags := make([]string, len(card.Flags))
		for j, f := range card.Flags {
			flags[j] = string(f)
		}
		cards[i] = cardResp{
			OpID:       card.OpID,
			Action:     card.Action,
			Workstream: card.Workstream,
			Task:       card.Task,
			Confidence: card.Confidence,
			Flags:      flags,
			Changes:    changes,
		}
	}
	return interpretResp{
		ChangesetID:  out.Changeset.ID,
		Version:      out.Changeset.SnapshotVersion,
		MentionCount: out.MentionCount,
		Cards:        cards,
	}
}

type applyResp struct {
	ChangesetID       string `json:"changeset_id"`
	Created           int    `json:"created"`
	Updated           int    `json:"updated"`
	SkippedDuplicates int    `json:"skipped_duplicates"`
	RowCount          int    `json:"row_count"`
	Version           string `json:"version"`
	BackupFile        string `json:"backup_file,omitempty"`
}

func (h *handler) newApplyResp(changesetID string, out update.ApplyOutput) applyResp {
	return applyResp{
		ChangesetID:       changesetID,
		Created:           out.Created,
		Updated:           out.Updated,
		SkippedDuplicates: out.SkippedDuplicates,
		RowCount:          out.Snapshot.Len(),
		Version:           out.Snapshot.Version(),
		BackupFile:        out.BackupFile,
	}
}

type sheetRowResp struct {
	ID         string   `json:"id"`
	Workstream string   `json:"workstream"`
	Task       string   `json:"task"`
	SubTask    string   `json:"sub_task,omitempty"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	Effort     float64  `json:"effort"`
	Status     string   `json:"status"`
	Priority   string   `json:"priority"`
	Tags       []string `json:"tags,omitempty"`
}

type sheetInfoResp struct {
	RowCount    int            `json:"row_count"`
	Workstreams []string       `json:"workstreams"`
	Statuses    map[string]int `json:"statuses"`
	Version     string         `json:"version"`
	Rows        []sheetRowResp `json:"rows"`
}

func (h *handler) newSheetInfoResp(snap *store.Snapshot) sheetInfoResp {
	statuses := make(map[string]int)
	rows := make([]sheetRowResp, 0, snap.Len())
	for _, sr := range snap.Rows() {
		statuses[string(sr.Row.Status)]++
		rr := sheetRowResp{
			ID:         sr.ID,
			Workstream: sr.Row.Workstream,
			Task:       sr.Row.Task,
			SubTask:    sr.Row.SubTask,
			Effort:     sr.Row.Effort,
			Status:     string(sr.Row.Status),
			Priority:   string(sr.Row.Priority),
			Tags:       sr.Row.Tags,
		}
		if sr.Row.StartDate != nil {
			rr.StartDate = sr.Row.StartDate.Format(store.DateFormat)
		}
		if sr.Row.EndDate != nil {
			rr.EndDate = sr.Row.EndDate.Format(store.DateFormat)
		}
		rows = append(rows, rr)
	}

	return sheetInfoResp{
		RowCount:    snap.Len(),
		Workstreams: snap.Workstreams(),
		Statuses:    statuses,
		Version:     snap.Version(),
		Rows:        rows,
	}
}
