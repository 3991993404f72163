package api

import "errors"

// The three fatal error classes of the decoders.  Every fatal error
// returned by the cf packages wraps exactly one of them, so callers can
// sort failures with errors.Is without matching message text.
var (
	// ErrConfig is returned at descriptor construction time for
	// inconsistent or unrecognised compression metadata.
	ErrConfig = errors.New("configuration error")

	// ErrGeometry is returned before any decode work begins when an
	// auxiliary structure contradicts the array geometry.
	ErrGeometry = errors.New("geometry error")

	// ErrAccess is returned when the physical data cannot be read.
	// It surfaces only after every backend strategy has been tried.
	ErrAccess = errors.New("access error")
)
