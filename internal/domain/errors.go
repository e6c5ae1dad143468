package domain

import "errors"

// Per-region failure kinds. All three are caught at the region boundary,
// logged, and retried implicitly on the next tick.
var (
	// ErrFetch marks a transport failure or non-2xx response from the
	// spreadsheet export.
	ErrFetch = errors.New("fetch failed")

	// ErrParse marks malformed CSV input.
	ErrParse = errors.New("parse failed")

	// ErrValidation marks a normalization pass that produced zero teams,
	// treated as a fetch/format anomaly rather than a mass removal.
	ErrValidation = errors.New("no valid data processed")
)
