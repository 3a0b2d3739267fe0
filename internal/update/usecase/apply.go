package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"internship-journey-agent/internal/changeset"
	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/store"
	"internship-journey-agent/internal/update"
)

// Apply validates an approved changeset against the live store and applies
// it all-or-nothing. The sequence per changeset is Pending → Validated →
// Applied, or Pending → Rejected with nothing written.
func (uc *implUseCase) Apply(ctx context.Context, sc model.Scope, input update.ApplyInput) (update.ApplyOutput, error) {
	uc.applyMu.Lock()
	defer uc.applyMu.Unlock()

	if input.Snapshot == nil {
		return update.ApplyOutput{}, fmt.Errorf("%w: nil snapshot", update.ErrValidation)
	}
	if input.Changeset.SnapshotVersion != input.Snapshot.Version() {
		return update.ApplyOutput{}, fmt.Errorf("%w: changeset was built from a different snapshot", update.ErrStaleState)
	}

	// detect concurrent external writes: the live store must still hold
	// exactly the rows the changeset was derived from
	liveRows, err := uc.repo.Load(ctx)
	if err != nil {
		return update.ApplyOutput{}, fmt.Errorf("failed to reload sheet: %w", err)
	}
	if store.New(liveRows).Version() != input.Snapshot.Version() {
		return update.ApplyOutput{}, fmt.Errorf("%w: store changed since interpret", update.ErrStaleState)
	}

	next, created, updated, skipped, err := uc.applyOps(input.Changeset, input.Snapshot)
	if err != nil {
		return update.ApplyOutput{}, err
	}

	backupFile, backupErr := uc.writeBackup(input.Snapshot.Rows())
	if backupErr != nil {
		uc.l.Warnf(ctx, "Apply: backup failed (non-fatal): %v", backupErr)
	}

	plain := make([]model.TaskRow, 0, len(next))
	for _, r := range next {
		plain = append(plain, r.Row)
	}
	if err := uc.repo.Replace(ctx, plain); err != nil {
		return update.ApplyOutput{}, fmt.Errorf("%w: %v", update.ErrCommit, err)
	}

	newSnap := input.Snapshot.WithRows(next)

	uc.l.Infof(ctx, "Apply: user=%s changeset=%s created=%d updated=%d skipped=%d rows=%d",
		sc.UserID, input.Changeset.ID, created, updated, skipped, newSnap.Len())

	return update.ApplyOutput{
		Snapshot:          newSnap,
		Created:           created,
		Updated:           updated,
		SkippedDuplicates: skipped,
		BackupFile:        backupFile,
	}, nil
}

// applyOps builds the successor row set in memory. Any validation failure
// rejects the whole changeset before a single row is written.
func (uc *implUseCase) applyOps(cs changeset.Changeset, snap *store.Snapshot) ([]store.StoredRow, int, int, int, error) {
	next := snap.Rows()
	index := make(map[string]int, len(next))
	for i, r := range next {
		index[r.ID] = i
	}

	var created, updated, skipped int
	seenTargets := make(map[string]bool)

	for _, op := range cs.Ops {
		switch op.Kind {
		case changeset.KindUpdate:
			if op.TargetRowID == "" {
				return nil, 0, 0, 0, fmt.Errorf("%w: update op %s has no target row", update.ErrValidation, op.ID)
			}
			if seenTargets[op.TargetRowID] {
				return nil, 0, 0, 0, fmt.Errorf("%w: two operations target row %s", update.ErrValidation, op.TargetRowID)
			}
			seenTargets[op.TargetRowID] = true

			idx, ok := index[op.TargetRowID]
			if !ok {
				return nil, 0, 0, 0, fmt.Errorf("%w: row %s no longer exists", update.ErrStaleState, op.TargetRowID)
			}

			row, err := op.ApplyTo(next[idx].Row)
			if err != nil {
				return nil, 0, 0, 0, fmt.Errorf("%w: op %s: %v", update.ErrValidation, op.ID, err)
			}
			next[idx].Row = row
			updated++

		case changeset.KindCreate:
			if op.TargetRowID != "" {
				return nil, 0, 0, 0, fmt.Errorf("%w: create op %s carries a target row", update.ErrValidation, op.ID)
			}

			row, err := op.ApplyTo(model.TaskRow{})
			if err != nil {
				return nil, 0, 0, 0, fmt.Errorf("%w: op %s: %v", update.ErrValidation, op.ID, err)
			}

			// re-applying the same changeset must not duplicate rows:
			// a final equality pass catches Creates that already landed
			if containsIdentical(next, row) {
				skipped++
				continue
			}

			next = append(next, store.StoredRow{ID: newRowID(), Row: row})
			created++

		default:
			return nil, 0, 0, 0, fmt.Errorf("%w: op %s has unknown kind %q", update.ErrValidation, op.ID, op.Kind)
		}
	}

	return next, created, updated, skipped, nil
}

func newRowID() string {
	return uuid.NewString()
}

func containsIdentical(rows []store.StoredRow, candidate model.TaskRow) bool {
	want := store.FormatRow(candidate)
	for _, r := range rows {
		have := store.FormatRow(r.Row)
		if equalCells(have, want) {
			return true
		}
	}
	return false
}

func equalCells(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
