package twofactor

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/twofactor/pkg/statemachine"
)

// State is an enrollment state.
type State = statemachine.StringState

const (
	StateUnset   State = "unset"
	StatePending State = "pending"
	StateEnabled State = "enabled"
)

const (
	EventBegin   = statemachine.StringEvent("begin")
	EventConfirm = statemachine.StringEvent("confirm")
	EventDisable = statemachine.StringEvent("disable")
)

// step carries one credential write through the machine.
type step struct {
	user     *User
	next     Credential
	at       time.Time
	verified bool
}

func newEnrollmentMachine(persist statemachine.Action) statemachine.Machine {
	codeAccepted := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		s, ok := data.(*step)
		return ok && s.verified
	}

	return statemachine.MustNew(
		statemachine.WithTransition(StateUnset, StatePending, EventBegin,
			statemachine.WithAction(persist)),
		statemachine.WithTransition(StatePending, StatePending, EventBegin,
			statemachine.WithAction(persist)),
		statemachine.WithTransition(StatePending, StateEnabled, EventConfirm,
			statemachine.WithGuard(codeAccepted),
			statemachine.WithAction(persist)),
		statemachine.WithTransition(StateEnabled, StateUnset, EventDisable,
			statemachine.WithAction(persist)),
	)
}

// stateError maps a rejected event to the package error for it.
func stateError(event statemachine.Event, err error) error {
	if !statemachine.IsNoTransitionAvailableError(err) {
		return err
	}
	switch event {
	case EventBegin:
		return ErrAlreadyEnabled
	case EventConfirm:
		return ErrNotPending
	case EventDisable:
		return ErrNotEnabled
	}
	return errors.Join(ErrInvalidState, err)
}
