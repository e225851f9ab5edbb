package dao

import "errors"

// Sentinel errors shared by every store implementation so that callers can
// branch with errors.Is instead of matching message text.

var (
	// ErrNotFound signals that no entity exists under the requested key.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID signals an empty or otherwise unusable key.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity signals an attempt to persist a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
