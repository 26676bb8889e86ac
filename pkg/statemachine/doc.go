// Package statemachine evaluates finite-state transitions for entities whose
// state is stored outside the machine.
//
// A Machine is an immutable transition table built once with New and shared
// freely. Fire takes the entity's current state, finds the first transition
// for the event whose guards pass, runs its actions and returns the target
// state. Persisting the result is the caller's job; an action can do it so
// that a failed write aborts the transition.
//
//	const (
//	    Draft  = statemachine.StringState("draft")
//	    Review = statemachine.StringState("review")
//	    Submit = statemachine.StringEvent("submit")
//	)
//
//	m := statemachine.MustNew(
//	    statemachine.WithTransition(Draft, Review, Submit),
//	)
//	next, err := m.Fire(ctx, doc.State, Submit, nil)
//
// # Errors
//
// IsNoTransitionAvailableError reports an undefined state/event pair and
// IsTransitionRejectedError reports that guards vetoed every candidate.
// Action failures are wrapped and returned unchanged otherwise.
package statemachine
