package update

import (
	"context"

	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
)

// UseCase defines the business logic interface for the daily-update domain.
type UseCase interface {
	// LoadSnapshot reads the backing sheet into a fresh immutable snapshot.
	LoadSnapshot(ctx context.Context) (*store.Snapshot, error)

	// Interpret turns one raw daily update into a previewable changeset
	// against the given snapshot. It is pure apart from the mention
	// extraction call and never touches the backing store.
	Interpret(ctx context.Context, sc model.Scope, input InterpretInput) (InterpretOutput, error)

	// Apply validates a changeset against the live store and applies it
	// all-or-nothing, returning the successor snapshot. Never called
	// without prior human approval.
	Apply(ctx context.Context, sc model.Scope, input ApplyInput) (ApplyOutput, error)
}
