package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ReserveStockCommandHandler records a stock hold against an order.
type ReserveStockCommandHandler struct {
	uowFactory OrderStockUoWFactory
	clock      kernel.Clock
}

// NewReserveStockCommandHandler creates a handler for stock reservation.
func NewReserveStockCommandHandler(uowFactory OrderStockUoWFactory, clock kernel.Clock) ReserveStockCommandHandler {
	return ReserveStockCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle loads the order, appends a Reserved row and persists both.
func (h *ReserveStockCommandHandler) Handle(ctx context.Context, cmd ReserveStockCommand) error {
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

	reservation, err := aggregate.ReserveStock(cmd.Sku(), cmd.Quantity())
	if err != nil {
		return err
	}

	if err = uow.StockRepository().Add(ctx, reservation); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
