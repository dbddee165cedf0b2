package blogcms

import "fmt"

// State is a post's lifecycle state. Archived is terminal.
type State string

const (
	StateDraft     State = "draft"
	StateInReview  State = "in_review"
	StatePublished State = "published"
	StateArchived  State = "archived"
)

// Event moves a post along an edge of the lifecycle state machine.
type Event string

const (
	EventSubmitForReview Event = "submit_for_review"
	EventApprove         Event = "approve"
	EventReject          Event = "reject"
	EventUnpublish       Event = "unpublish"
	EventArchive         Event = "archive"
)

// transitions is the full lifecycle edge table. The state machine is plain
// data plus the Next lookup; no process-wide state tracks posts.
var transitions = map[State]map[Event]State{
	StateDraft: {
		EventSubmitForReview: StateInReview,
		EventArchive:         StateArchived,
	},
	StateInReview: {
		EventApprove: StatePublished,
		EventReject:  StateDraft,
		EventArchive: StateArchived,
	},
	StatePublished: {
		EventUnpublish: StateDraft,
		EventArchive:   StateArchived,
	},
}

// Next returns the state reached by applying event in state, or an
// InvalidTransitionError when no such edge exists.
func Next(state State, event Event) (State, error) {
	if next, ok := transitions[state][event]; ok {
		return next, nil
	}

	return "", &InvalidTransitionError{From: state, Event: event}
}

// ParseEvent validates an event name received from a caller.
func ParseEvent(s string) (Event, error) {
	switch Event(s) {
	case EventSubmitForReview, EventApprove, EventReject, EventUnpublish, EventArchive:
		return Event(s), nil
	}

	return "", fmt.Errorf("%w: unknown event %q", ErrInvalidArgument, s)
}
