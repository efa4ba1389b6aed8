package quest

import "errors"

// Sentinel errors for store operations. All are caller-recoverable: the
// expected reaction is to re-query current state, not to abort the session.
// Wrap sites attach the quest id and attempted transition; match with
// errors.Is.
var (
	// ErrDuplicateQuest indicates an offer for an id already registered in a
	// non-terminal status.
	ErrDuplicateQuest = errors.New("quest already on offer")

	// ErrInvalidTransition indicates a transition the lifecycle does not
	// permit from the quest's current status.
	ErrInvalidTransition = errors.New("invalid quest transition")

	// ErrNotFound indicates an unknown quest id.
	ErrNotFound = errors.New("quest not found")
)
