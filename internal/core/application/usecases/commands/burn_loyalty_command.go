package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrBurnLoyaltyCommandIsNotConstructed = errors.New(
	"BurnLoyaltyCommand must be created via NewBurnLoyaltyCommand constructor",
)

// BurnLoyaltyCommand represents a request to redeem loyalty points earned on
// an order. Redemption never drives the ledger balance below zero.
type BurnLoyaltyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	points  int64
	reason  string

	guard guard.ConstructorGuard
}

// NewBurnLoyaltyCommand creates a command to redeem loyalty points.
func NewBurnLoyaltyCommand(orderID kernel.UUID, points int64, reason string) (BurnLoyaltyCommand, error) {
	loyaltyCommand := BurnLoyaltyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loyaltyCommand.setOrderID(orderID),
		loyaltyCommand.setPoints(points),
		loyaltyCommand.setReason(reason),
	); err != nil {
		return BurnLoyaltyCommand{}, err
	}

	return loyaltyCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c BurnLoyaltyCommand) Validate() error {
	return c.guard.Validate(ErrBurnLoyaltyCommandIsNotConstructed)
}

// OrderID returns the identifier of the order redeeming points.
func (c BurnLoyaltyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Points returns the number of points to redeem.
func (c BurnLoyaltyCommand) Points() int64 {
	return c.points
}

// Reason returns the audit reason for the redemption.
func (c BurnLoyaltyCommand) Reason() string {
	return c.reason
}

func (c *BurnLoyaltyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *BurnLoyaltyCommand) setPoints(points int64) error {
	if points <= 0 {
		return ErrPointsAreInvalid
	}

	c.points = points
	return nil
}

func (c *BurnLoyaltyCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
