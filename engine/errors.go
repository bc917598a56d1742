package engine

import "errors"

var (
	// ErrNotYourTurn is returned when the acting player is not the one whose
	// turn it is.
	ErrNotYourTurn = errors.New("not this player's turn to act")

	// ErrPlayerCannotAct is returned when the player is folded, all-in or
	// sitting out.
	ErrPlayerCannotAct = errors.New("player cannot act in this hand")

	// ErrHandEnded is returned when an action arrives after the hand has
	// reached showdown.
	ErrHandEnded = errors.New("hand already ended")
)

// IllegalActionError reports an action that is invalid in the current betting
// state. It is a validation error: the state is never mutated.
type IllegalActionError struct {
	Reason string
}

func (e *IllegalActionError) Error() string {
	return "illegal action: " + e.Reason
}

func errIllegal(reason string) error {
	return &IllegalActionError{Reason: reason}
}
