package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
)

// ErrStateTransitionNotAllowed is the unwrap target for StateTransitionError.
var ErrStateTransitionNotAllowed = errors.New("state transition is not allowed")

// ErrInsufficientBalance is the unwrap target for InsufficientBalanceError.
var ErrInsufficientBalance = errors.New("insufficient loyalty balance")

// StateTransitionError reports a rejected state change. A structural violation
// (the edge is absent from the transition table) carries no Cause; a
// business-rule violation (the edge exists but a domain precondition for the
// target state fails) carries the rule as Cause, so the two are
// distinguishable from the message alone.
type StateTransitionError struct {
	OrderID        kernel.UUID
	CurrentState   OrderState
	AttemptedState OrderState
	Cause          error
}

// NewStateTransitionError creates a structural StateTransitionError: the
// requested edge does not exist in the transition table.
func NewStateTransitionError(orderID kernel.UUID, current, attempted OrderState) *StateTransitionError {
	return &StateTransitionError{OrderID: orderID, CurrentState: current, AttemptedState: attempted}
}

// NewStateTransitionErrorWithCause creates a business-rule StateTransitionError:
// the edge is structurally valid but a domain precondition for the target
// state does not hold.
func NewStateTransitionErrorWithCause(orderID kernel.UUID, current, attempted OrderState, cause error) *StateTransitionError {
	return &StateTransitionError{OrderID: orderID, CurrentState: current, AttemptedState: attempted, Cause: cause}
}

func (e *StateTransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: order %s cannot move from %s to %s (cause: %s)",
			ErrStateTransitionNotAllowed, e.OrderID, e.CurrentState, e.AttemptedState, e.Cause)
	}
	return fmt.Sprintf("%s: order %s cannot move from %s to %s",
		ErrStateTransitionNotAllowed, e.OrderID, e.CurrentState, e.AttemptedState)
}

func (e *StateTransitionError) Unwrap() error {
	return ErrStateTransitionNotAllowed
}

// InsufficientBalanceError reports a loyalty burn that would drive the
// order's ledger balance negative.
type InsufficientBalanceError struct {
	OrderID   kernel.UUID
	Balance   int64
	Requested int64
}

// NewInsufficientBalanceError creates an InsufficientBalanceError for the
// given order, current balance and requested burn.
func NewInsufficientBalanceError(orderID kernel.UUID, balance, requested int64) *InsufficientBalanceError {
	return &InsufficientBalanceError{OrderID: orderID, Balance: balance, Requested: requested}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: order %s has %d points, requested %d",
		ErrInsufficientBalance, e.OrderID, e.Balance, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
