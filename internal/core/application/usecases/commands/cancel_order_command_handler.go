package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order and releases its open stock
// reservations in the same transaction. The structural transition table is
// the authority on whether cancellation is reachable from the current state.
type CancelOrderCommandHandler struct {
	uowFactory OrderStockUoWFactory
	clock      kernel.Clock
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderStockUoWFactory, clock kernel.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle loads the order with its reservations, applies the Cancelled
// transition and releases every reservation still held.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	reservations, err := uow.StockRepository().GetByOrderID(ctx, o.ID())
	if err != nil {
		return err
	}

	aggregate, err := order.NewAggregate(o, nil, nil, reservations, h.clock)
	if err != nil {
		return err
	}

	if err = aggregate.TransitionState(order.Cancelled, cmd.Reason()); err != nil {
		return err
	}

	released, err := aggregate.ReleaseStock()
	if err != nil {
		return err
	}

	for _, r := range released {
		if err = uow.StockRepository().Update(ctx, r); err != nil {
			return err
		}
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
