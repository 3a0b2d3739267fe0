// Package csvfile is the local development substitute for the Google
// Sheets backing store: the same fixed columns in a CSV file. Used when no
// Google credentials are configured.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
)

// Repository stores task rows in a local CSV file.
type Repository struct {
	path string
}

func New(path string) *Repository {
	return &Repository{path: path}
}

// Load reads all rows. A missing file is an empty sheet, not an error.
func (r *Repository) Load(ctx context.Context) ([]model.TaskRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("csvfile load: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvfile load: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	if err := store.ValidateHeader(records[0]); err != nil {
		return nil, fmt.Errorf("csvfile load: %w", err)
	}

	rows := make([]model.TaskRow, 0, len(records)-1)
	for i, cells := range records[1:] {
		row, parseErr := store.ParseRow(cells)
		if parseErr != nil {
			return nil, fmt.Errorf("csvfile load: row %d: %w", i+2, parseErr)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Replace atomically rewrites the file via a temp file and rename, so a
// failed write never leaves a half-written sheet behind.
func (r *Repository) Replace(ctx context.Context, rows []model.TaskRow) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".journey-*.csv")
	if err != nil {
		return fmt.Errorf("csvfile replace: %w", err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(store.Columns)
	for _, row := range rows {
		if writeErr != nil {
			break
		}
		writeErr = writer.Write(store.FormatRow(row))
	}
	writer.Flush()
	if writeErr == nil {
		writeErr = writer.Error()
	}

	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("csvfile replace: %w", writeErr)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("csvfile replace: %w", err)
	}
	return nil
}
