package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("transition needs from, to and event")
	ErrInvalidEvent      = errors.New("event is nil")
	ErrInvalidState      = errors.New("state is nil")
)

// ErrNoTransitionAvailable reports that nothing leaves StateName on EventName.
type ErrNoTransitionAvailable struct {
	StateName string
	EventName string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("statemachine: %q has no transition on %q", e.StateName, e.EventName)
}

// ErrTransitionRejected reports that every candidate transition failed a guard.
type ErrTransitionRejected struct {
	StateName string
	EventName string
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("statemachine: guards rejected %q from %q", e.EventName, e.StateName)
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}
