package repository

import (
	"context"

	"internship-journey-agent/internal/model"
)

// SheetRepository abstracts the backing tabular store. The store is not
// assumed to support partial-row locking, so every write is a full
// replacement of the row set.
type SheetRepository interface {
	// Load reads all task rows from the backing store.
	Load(ctx context.Context) ([]model.TaskRow, error)

	// Replace overwrites the backing store's row set.
	Replace(ctx context.Context, rows []model.TaskRow) error
}
