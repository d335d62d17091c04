package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// MarkOrderPendingCommandHandler moves an order along the edge into Pending.
// Redelivered commands find the order already Pending and succeed as no-ops.
type MarkOrderPendingCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewMarkOrderPendingCommandHandler creates a handler for the pending transition.
func NewMarkOrderPendingCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) MarkOrderPendingCommandHandler {
	return MarkOrderPendingCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle loads the order, applies the Pending transition and persists it.
// A version conflict on the write surfaces as errs.ConcurrencyConflictError
// for the caller to retry.
func (h *MarkOrderPendingCommandHandler) Handle(ctx context.Context, cmd MarkOrderPendingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	aggregate, err := order.NewAggregate(o, nil, nil, nil, h.clock)
	if err != nil {
		return err
	}

	if err = aggregate.TransitionState(order.Pending, "awaiting payment"); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
