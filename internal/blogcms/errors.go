package blogcms

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a referenced post, category or tag does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for malformed input such as an empty
	// suggestion field list or an empty patch.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState is returned when an operation is not allowed in the
	// post's current lifecycle state or a transition guard fails.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrPermission is returned when the actor lacks a required capability.
	ErrPermission = errors.New("missing required capability")
)

// InvalidTransitionError is returned when no edge for the event exists from
// the post's current state.
type InvalidTransitionError struct {
	From  State
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("no transition %q from state %q", e.Event, e.From)
}

// ConflictError is returned when the revision the caller last observed is no
// longer the post's current revision. The caller must re-fetch and retry.
type ConflictError struct {
	PostID   uuid.UUID
	Expected int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("post %s: expected revision %d is stale", e.PostID, e.Expected)
}
