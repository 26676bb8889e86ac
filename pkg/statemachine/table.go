package statemachine

import (
	"context"
	"fmt"
)

// Table is an immutable transition table keyed by [from][event].
// Transitions are registered only while the table is built by New.
type Table struct {
	transitions map[string]map[string][]Transition
}

func newTable() *Table {
	return &Table{transitions: make(map[string]map[string][]Transition)}
}

func (t *Table) add(tr Transition) error {
	if tr.From == nil || tr.To == nil || tr.Event == nil {
		return ErrInvalidTransition
	}

	from, event := tr.From.Name(), tr.Event.Name()
	if _, ok := t.transitions[from]; !ok {
		t.transitions[from] = make(map[string][]Transition)
	}

	// several transitions per from/event allow guard-based branching
	t.transitions[from][event] = append(t.transitions[from][event], tr)
	return nil
}

func (t *Table) match(ctx context.Context, from State, event Event, data any) (*Transition, error) {
	if from == nil {
		return nil, ErrInvalidState
	}
	if event == nil {
		return nil, ErrInvalidEvent
	}

	candidates := t.transitions[from.Name()][event.Name()]
	if len(candidates) == 0 {
		return nil, &ErrNoTransitionAvailable{StateName: from.Name(), EventName: event.Name()}
	}

	for i := range candidates {
		if guardsPass(ctx, candidates[i].Guards, from, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &ErrTransitionRejected{StateName: from.Name(), EventName: event.Name()}
}

func guardsPass(ctx context.Context, guards []Guard, from State, event Event, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}

func (t *Table) Fire(ctx context.Context, from State, event Event, data any) (State, error) {
	tr, err := t.match(ctx, from, event, data)
	if err != nil {
		return from, err
	}

	for _, action := range tr.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, from, tr.To, event, data); err != nil {
			return from, fmt.Errorf("action failed: %w", err)
		}
	}
	return tr.To, nil
}
