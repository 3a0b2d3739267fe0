// Package segment splits a raw daily update into task mentions. Extraction
// may be delegated to an external model; the Extractor seam keeps the rest
// of the pipeline deterministic and testable offline.
package segment

import (
	"context"
	"errors"

	"internship-journey-agent/internal/model"
)

// ErrUnavailable reports that the external inference call failed or timed
// out. The caller may retry the whole update; no store state was touched.
var ErrUnavailable = errors.New("inference service unavailable")

// Extractor turns one raw update into ordered task mentions. Degenerate
// input (no verb-bearing clause) yields zero mentions and a nil error.
type Extractor interface {
	Extract(ctx context.Context, rawText string) ([]model.Mention, error)
}
