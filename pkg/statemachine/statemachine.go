package statemachine

import (
	"context"
)

// State represents a state in the machine.
type State interface {
	Name() string
}

// Event represents an input that can trigger a transition.
type Event interface {
	Name() string
}

// Action executes side effects during a transition. Returning an error
// prevents the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard evaluates whether a transition is allowed for the given input.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Transition defines a state change triggered by an event.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // All must pass for transition to proceed
	Actions []Action // Executed in order before the new state is returned
}

// Machine evaluates transitions for a state that lives elsewhere, typically
// a persisted record. It holds no current state of its own, so a single
// Machine can be shared by concurrent requests.
type Machine interface {
	// Fire runs the first matching transition out of from and returns the
	// resulting state. On error the caller keeps from.
	Fire(ctx context.Context, from State, event Event, data any) (State, error)
}

// StringState is a string-backed State.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent is a string-backed Event.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}
