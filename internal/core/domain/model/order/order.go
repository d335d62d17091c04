package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrWorkflowIDAlreadySet is returned when attempting to overwrite the
	// workflow identity an order is already bound to. The binding is set once
	// at first workflow start and never changes.
	ErrWorkflowIDAlreadySet = errors.New("order is already bound to a workflow")
)

// Order is the persisted entity at the root of the order aggregate.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - State transitions only along edges of the transition table (enforced by Aggregate)
//   - Version strictly increases with every mutating operation
//   - UpdatedAt never precedes CreatedAt
//   - WorkflowID is set once and never overwritten
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through the Aggregate, which owns the transition and business-rule logic.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// referenceID is the externally supplied idempotency key; optional,
	// unique when present
	referenceID string

	// state is the current business lifecycle state
	state OrderState

	// stateReason records why the last transition happened, for audit
	stateReason string

	// totalAmount is the order total in minor currency units (e.g. cents)
	totalAmount int64

	// currency is the ISO 4217 code the total is denominated in
	currency string

	// workflowID is the back-reference to the durable run driving this order;
	// empty until the first workflow start
	workflowID string

	// version is the optimistic-concurrency counter, bumped on every mutation
	version int64

	// persistedVersion is the version this instance was loaded at; the
	// repository compares against it when committing an update
	persistedVersion int64

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order in the Initial state.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - referenceID: external idempotency key; may be empty, uniqueness is
//     enforced by the caller when present
//   - totalAmount: order total in minor units (must be positive)
//   - currency: ISO 4217 code (must not be empty)
//   - now: creation instant, supplied by the caller's clock
//
// The new order starts at version 1 with no persisted predecessor.
func NewOrder(id kernel.UUID, referenceID string, totalAmount int64, currency string, now time.Time) (*Order, error) {
	order := &Order{
		state:         Initial,
		referenceID:   referenceID,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setTotalAmount(totalAmount),
		order.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. All invariants are
// revalidated; persistence is not trusted to hold a valid state.
func RestoreOrder(
	id kernel.UUID,
	referenceID string,
	totalAmount int64,
	currency string,
	state OrderState,
	stateReason string,
	workflowID string,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		referenceID:   referenceID,
		stateReason:   stateReason,
		workflowID:    workflowID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setTotalAmount(totalAmount),
		order.setCurrency(currency),
		order.setState(state),
		order.setVersion(version),
	); err != nil {
		return nil, err
	}

	if updatedAt.Before(createdAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause("updatedAt",
			fmt.Errorf("updatedAt %s precedes createdAt %s", updatedAt, createdAt))
	}

	order.persistedVersion = version
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ReferenceID returns the external idempotency key, or "" when absent.
func (o *Order) ReferenceID() string {
	return o.referenceID
}

// State returns the current lifecycle state of the order.
func (o *Order) State() OrderState {
	return o.state
}

// StateReason returns the reason recorded with the last transition.
func (o *Order) StateReason() string {
	return o.stateReason
}

// TotalAmount returns the order total in minor currency units.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// Currency returns the ISO 4217 currency code of the order total.
func (o *Order) Currency() string {
	return o.currency
}

// WorkflowID returns the identity of the durable run driving this order,
// or "" when no run has been started yet.
func (o *Order) WorkflowID() string {
	return o.workflowID
}

// Version returns the current optimistic-concurrency counter.
func (o *Order) Version() int64 {
	return o.version
}

// PersistedVersion returns the version this instance was loaded at.
// The repository uses it as the optimistic-lock predicate when updating.
func (o *Order) PersistedVersion() int64 {
	return o.persistedVersion
}

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the instant of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// MarkPersisted records that the current version has been written out.
// The repository calls it after a successful insert or update so that a later
// write of the same instance predicates on the version actually stored.
func (o *Order) MarkPersisted() {
	o.persistedVersion = o.version
}

// BindWorkflow records the identity of the durable run driving this order.
// The binding is written exactly once: rebinding to the same identity is an
// idempotent no-op, rebinding to a different identity fails with
// ErrWorkflowIDAlreadySet.
func (o *Order) BindWorkflow(workflowID string, now time.Time) error {
	if workflowID == "" {
		return errs.NewValueIsRequiredError("workflowID")
	}
	if o.workflowID == workflowID {
		return nil
	}
	if o.workflowID != "" {
		return ErrWorkflowIDAlreadySet
	}

	o.workflowID = workflowID
	o.touch(now)
	return nil
}

// applyState moves the order to next and records the reason.
// Callers (the Aggregate) are responsible for having validated the edge.
func (o *Order) applyState(next OrderState, reason string, now time.Time) {
	o.state = next
	o.stateReason = reason
	o.touch(now)
}

// touch bumps the version and advances updatedAt. UpdatedAt stays monotonic
// even if the supplied clock went backwards.
func (o *Order) touch(now time.Time) {
	o.version++
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setTotalAmount validates and sets the order total.
// The total must be positive.
func (o *Order) setTotalAmount(totalAmount int64) error {
	if totalAmount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount",
			fmt.Errorf("%d is not greater than 0", totalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}

// setCurrency validates and sets the currency code.
func (o *Order) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	o.currency = currency
	return nil
}

// setState validates and sets the lifecycle state.
func (o *Order) setState(state OrderState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	o.state = state
	return nil
}

// setVersion validates and sets the optimistic-concurrency counter.
func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	return nil
}
