package session

import (
	"errors"
	"fmt"
)

// ErrorCode classifies state errors.
type ErrorCode string

const (
	// IllegalTransition marks an event the current phase does not accept, or
	// one whose guard did not hold (Cause is set then).
	IllegalTransition ErrorCode = "ILLEGAL_TRANSITION"
)

// StateError is returned for rejected events. The machine is unchanged when
// one is returned; callers log it and carry on.
type StateError struct {
	Code  ErrorCode
	Event string
	From  Phase
	Cause string
}

func (e *StateError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("session: %s: %s from %s: %s", e.Code, e.Event, e.From, e.Cause)
	}
	return fmt.Sprintf("session: %s: %s from %s", e.Code, e.Event, e.From)
}

// IsStateError reports whether err is a *StateError.
func IsStateError(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

func illegal(event string, from Phase) error {
	return &StateError{Code: IllegalTransition, Event: event, From: from}
}

func guard(event string, from Phase, cause string) error {
	return &StateError{Code: IllegalTransition, Event: event, From: from, Cause: cause}
}
