package engine

import (
	"errors"
	"fmt"
)

// ErrRenderTargetMissing is returned by a Surface that has nothing to draw on.
// The engine skips the frame and tries again on the next render.
var ErrRenderTargetMissing = errors.New("render target missing")

// UnknownTransitionError describes an event with no matching rule in the
// current view. It is logged at debug level and never returned to the host.
type UnknownTransitionError struct {
	Event  string
	State  State
	Reason string
}

// Error implements the error interface
func (e *UnknownTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("no transition for %s in %s: %s", e.Event, e.State, e.Reason)
	}
	return fmt.Sprintf("no transition for %s in %s", e.Event, e.State)
}

// IsUnknownTransition reports whether err is an *UnknownTransitionError
func IsUnknownTransition(err error) bool {
	var ute *UnknownTransitionError
	return errors.As(err, &ute)
}
