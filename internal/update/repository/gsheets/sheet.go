package gsheets

import (
	"context"
	"fmt"

	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
	"internship-journey-agent/pkg/gsheets"
	pkgLog "internship-journey-agent/pkg/log"
)

// Repository backs the task store with a Google Sheets tab.
type Repository struct {
	client *gsheets.Client
	l      pkgLog.Logger
}

func New(client *gsheets.Client, l pkgLog.Logger) *Repository {
	return &Repository{client: client, l: l}
}

// Load reads and decodes all rows, validating the sheet header first.
func (r *Repository) Load(ctx context.Context) ([]model.TaskRow, error) {
	header, raw, err := r.client.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("gsheets load: %w", err)
	}
	if header == nil {
		// brand-new empty sheet
		return nil, nil
	}
	if err := store.ValidateHeader(header); err != nil {
		return nil, fmt.Errorf("gsheets load: %w", err)
	}

	rows := make([]model.TaskRow, 0, len(raw))
	for i, cells := range raw {
		row, parseErr := store.ParseRow(cells)
		if parseErr != nil {
			// tolerate hand-edited junk rows on read; they must not
			// brick the whole pipeline
			r.l.Warnf(ctx, "gsheets: skipping unparseable row %d: %v", i+2, parseErr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Replace rewrites the whole tab: header plus encoded rows.
func (r *Repository) Replace(ctx context.Context, rows []model.TaskRow) error {
	encoded := make([][]string, 0, len(rows))
	for _, row := range rows {
		encoded = append(encoded, store.FormatRow(row))
	}
	if err := r.client.ReplaceRows(ctx, store.Columns, encoded); err != nil {
		return fmt.Errorf("gsheets replace: %w", err)
	}
	return nil
}
