package lifecycle

import "errors"

var (
	// ErrNotFound means the referenced donation record does not exist.
	ErrNotFound = errors.New("donation not found")

	// ErrConflict means a precondition failed because the record is no longer
	// in the expected state, typically after a concurrent or prior transition.
	// Conflicts are not retriable: the caller must re-fetch and re-decide.
	ErrConflict = errors.New("donation is not in the expected state")
)
