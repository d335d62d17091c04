package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// BurnLoyaltyCommandHandler appends a negative entry to the order's loyalty
// ledger. The aggregate rejects redemptions exceeding the current balance.
type BurnLoyaltyCommandHandler struct {
	uowFactory OrderLoyaltyUoWFactory
	clock      kernel.Clock
}

// NewBurnLoyaltyCommandHandler creates a handler for loyalty redemptions.
func NewBurnLoyaltyCommandHandler(uowFactory OrderLoyaltyUoWFactory, clock kernel.Clock) BurnLoyaltyCommandHandler {
	return BurnLoyaltyCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle loads the order with its ledger, appends the redemption and persists both.
func (h *BurnLoyaltyCommandHandler) Handle(ctx context.Context, cmd BurnLoyaltyCommand) error {
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

	ledger, err := uow.LoyaltyRepository().GetByOrderID(ctx, o.ID())
	if err != nil {
		return err
	}

	aggregate, err := order.NewAggregate(o, nil, ledger, nil, h.clock)
	if err != nil {
		return err
	}

	entry, err := aggregate.BurnLoyalty(cmd.Points(), cmd.Reason())
	if err != nil {
		return err
	}

	if err = uow.LoyaltyRepository().Add(ctx, entry); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
