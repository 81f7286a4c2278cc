package screen

import (
	"errors"
	"fmt"
)

// EntryError reports a single feed entry that could not become a Screen.
// It never invalidates the rest of the snapshot.
type EntryError struct {
	Index  int    // Position of the entry in the feed response
	ID     int    // Offending id, when one was present
	Reason string // Why the entry was dropped
}

// Error implements the error interface
func (e *EntryError) Error() string {
	return fmt.Sprintf("invalid screen entry at index %d (id %d): %s", e.Index, e.ID, e.Reason)
}

// IsEntryError reports whether err is (or wraps) an *EntryError
func IsEntryError(err error) bool {
	var entryErr *EntryError
	return errors.As(err, &entryErr)
}
