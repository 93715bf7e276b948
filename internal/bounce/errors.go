package bounce

import "errors"

// Sentinel errors for the bounce registry.
var (
	// ErrStoreUnavailable indicates the bounce table is configured but a
	// store call failed. Callers must treat this as a hard failure, never
	// as "not suppressed".
	ErrStoreUnavailable = errors.New("bounce store unavailable")
)
