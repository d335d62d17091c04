package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrEarnLoyaltyCommandIsNotConstructed = errors.New(
		"EarnLoyaltyCommand must be created via NewEarnLoyaltyCommand constructor",
	)
	ErrPointsAreInvalid = errors.New("points must be greater than 0")
)

// EarnLoyaltyCommand represents a request to credit loyalty points to an order.
type EarnLoyaltyCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	points  int64
	reason  string

	guard guard.ConstructorGuard
}

// NewEarnLoyaltyCommand creates a command to credit loyalty points.
func NewEarnLoyaltyCommand(orderID kernel.UUID, points int64, reason string) (EarnLoyaltyCommand, error) {
	loyaltyCommand := EarnLoyaltyCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loyaltyCommand.setOrderID(orderID),
		loyaltyCommand.setPoints(points),
		loyaltyCommand.setReason(reason),
	); err != nil {
		return EarnLoyaltyCommand{}, err
	}

	return loyaltyCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c EarnLoyaltyCommand) Validate() error {
	return c.guard.Validate(ErrEarnLoyaltyCommandIsNotConstructed)
}

// OrderID returns the identifier of the order earning points.
func (c EarnLoyaltyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Points returns the number of points to credit.
func (c EarnLoyaltyCommand) Points() int64 {
	return c.points
}

// Reason returns the audit reason for the credit.
func (c EarnLoyaltyCommand) Reason() string {
	return c.reason
}

func (c *EarnLoyaltyCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *EarnLoyaltyCommand) setPoints(points int64) error {
	if points <= 0 {
		return ErrPointsAreInvalid
	}

	c.points = points
	return nil
}

func (c *EarnLoyaltyCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
