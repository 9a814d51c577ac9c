package sqlite

import "errors"

var (
	// ErrSnapshotNotFound indicates that no snapshot (or no snapshot with
	// the requested revision) has been saved.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrInvalidSnapshot indicates a snapshot that fails domain validation.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
