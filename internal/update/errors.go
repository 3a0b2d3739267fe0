package update

import "errors"

// Domain-specific errors for the update package. All of these come back as
// typed results from Interpret/Apply rather than leaking transport faults.
var (
	// ErrEmptyInput: the update text is blank.
	ErrEmptyInput = errors.New("update text is empty")

	// ErrInferenceUnavailable: the external extraction call failed or
	// timed out. Nothing was mutated; the caller may retry.
	ErrInferenceUnavailable = errors.New("inference service unavailable")

	// ErrStaleState: the store changed between interpret and apply, or
	// the changeset targets a row the snapshot does not hold. The whole
	// changeset is rejected; re-derive from a fresh snapshot.
	ErrStaleState = errors.New("store snapshot is stale")

	// ErrValidation: the changeset carries a malformed value or violates
	// a structural invariant. Rejected before any row is touched.
	ErrValidation = errors.New("changeset failed validation")

	// ErrCommit: the backing store rejected the replacement write.
	ErrCommit = errors.New("failed to commit rows to backing store")
)
