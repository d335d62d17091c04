package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// OrderState represents the business lifecycle state of an order.
// It implements a state machine whose allowed transitions are declared in a
// single static table; adding a state only requires adding edges there.
//
// State transitions:
//
//	Initial ──> Pending ──┬──> Paid ──┬──> Completed ──> Cancelled
//	    ^          │      │           └──> Refunded ───> Cancelled
//	    │          └──────┴──> Cancelled ──> Pending
//	    │                          │
//	    └──────────────────────────┘
//	          (reopening a cancelled order)
//
// OrderState is a value object that provides string representations for
// persistence and display. Transition validation lives in IsValidTransition.
type OrderState int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized OrderState values.
	Unknown OrderState = iota

	// Initial is the state of a freshly created order, before its
	// lifecycle run has picked it up.
	Initial

	// Pending indicates the order is awaiting payment or cancellation.
	Pending

	// Paid indicates the order has a completed payment covering its total.
	Paid

	// Completed indicates the order has been fulfilled.
	Completed

	// Refunded indicates a paid order whose payment has been returned.
	Refunded

	// Cancelled indicates the order was withdrawn. A cancelled order may be
	// reopened back into Pending.
	Cancelled
)

// stateTransition is a directed edge in the order state machine.
type stateTransition struct {
	from OrderState
	to   OrderState
}

// getTransitionRules returns the set of allowed state transitions.
// This table is the single declarative source of truth for the order state
// machine; no other code decides whether an edge exists.
func getTransitionRules() map[stateTransition]struct{} {
	return map[stateTransition]struct{}{
		{Initial, Pending}:    {},
		{Pending, Paid}:       {},
		{Pending, Cancelled}:  {},
		{Paid, Completed}:     {},
		{Paid, Refunded}:      {},
		{Refunded, Cancelled}: {},
		{Completed, Cancelled}: {},
		{Cancelled, Pending}:  {},
	}
}

// IsValidTransition reports whether the directed edge (from, to) exists in the
// transition table. It is a pure, total function over the finite state set and
// has no side effects. A self-transition (from == to) is not an edge: the
// aggregate layer treats it as an idempotent no-op before consulting the table.
func IsValidTransition(from, to OrderState) bool {
	_, ok := getTransitionRules()[stateTransition{from: from, to: to}]
	return ok
}

// getStateStrings returns a map of OrderState values to their string representations.
func getStateStrings() map[OrderState]string {
	return map[OrderState]string{
		Unknown:   "Unknown",
		Initial:   "Initial",
		Pending:   "Pending",
		Paid:      "Paid",
		Completed: "Completed",
		Refunded:  "Refunded",
		Cancelled: "Cancelled",
	}
}

// getValidStateStrings returns a map of only valid OrderState values.
func getValidStateStrings() map[OrderState]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[OrderState]string{
		Initial:   "Initial",
		Pending:   "Pending",
		Paid:      "Paid",
		Completed: "Completed",
		Refunded:  "Refunded",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the OrderState value is a member of the enumerated set.
// Unknown (0) and any other values are invalid.
func (s OrderState) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid order state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
// It implements the fmt.Stringer interface and is safe to call on any
// OrderState value, including invalid ones.
func (s OrderState) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// OrderStateFromString parses a state name as produced by String.
// Used when reconstructing orders from persistence or external input.
func OrderStateFromString(s string) (OrderState, error) {
	for state, str := range getValidStateStrings() {
		if str == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%q is not a valid order state", s))
}
