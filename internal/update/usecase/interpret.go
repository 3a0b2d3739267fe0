package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"internship-journey-agent/internal/changeset"
	"internship-journey-agent/internal/matcher"
	"internship-journey-agent/internal/model"
	"internship-journey-agent/internal/segment"
	"internship-journey-agent/internal/store"
	"internship-journey-agent/internal/update"
)

// LoadSnapshot reads the backing sheet into a fresh snapshot.
func (uc *implUseCase) LoadSnapshot(ctx context.Context) (*store.Snapshot, error) {
	rows, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheet: %w", err)
	}
	return store.New(rows), nil
}

// Interpret runs the full pipeline for one update: segment → infer →
// match → build. The store is never touched; the result is a preview.
func (uc *implUseCase) Interpret(ctx context.Context, sc model.Scope, input update.InterpretInput) (update.InterpretOutput, error) {
	if strings.TrimSpace(input.RawText) == "" {
		return update.InterpretOutput{}, update.ErrEmptyInput
	}
	if input.Snapshot == nil {
		return update.InterpretOutput{}, fmt.Errorf("%w: nil snapshot", update.ErrValidation)
	}

	uc.l.Infof(ctx, "Interpret: user=%s input_length=%d store_rows=%d",
		sc.UserID, len(input.RawText), input.Snapshot.Len())

	mentions, err := uc.extractor.Extract(ctx, input.RawText)
	if err != nil {
		if errors.Is(err, segment.ErrUnavailable) {
			return update.InterpretOutput{}, fmt.Errorf("%w: %v", update.ErrInferenceUnavailable, err)
		}
		return update.InterpretOutput{}, fmt.Errorf("failed to extract mentions: %w", err)
	}

	builder := changeset.NewBuilder(input.Snapshot)

	for _, m := range mentions {
		status := uc.inf.Status(m.TemporalCue)
		effort := uc.inf.Effort(m)
		match := uc.match.Match(m, input.Snapshot)

		if match.Decision == matcher.DecisionUpdate {
			existing, ok := input.Snapshot.Row(match.RowID)
			if !ok {
				continue
			}
			builder.AddUpdate(match.RowID, uc.proposeUpdate(existing.Row, m, status, effort), match)
			continue
		}

		builder.AddCreate(uc.proposeCreate(input.Snapshot, m, status, effort), match)
	}

	cs := builder.Build()

	uc.l.Infof(ctx, "Interpret: %d mentions produced %d ops (changeset %s)",
		len(mentions), len(cs.Ops), cs.ID)

	cards, err := uc.previewCards(cs, input.Snapshot)
	if err != nil {
		return update.InterpretOutput{}, fmt.Errorf("%w: %v", update.ErrValidation, err)
	}

	return update.InterpretOutput{
		Changeset:    cs,
		Cards:        cards,
		Snapshot:     input.Snapshot,
		MentionCount: len(mentions),
	}, nil
}
