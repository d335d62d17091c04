package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrMarkOrderPendingCommandIsNotConstructed = errors.New(
	"MarkOrderPendingCommand must be created via NewMarkOrderPendingCommand constructor",
)

// MarkOrderPendingCommand represents a request to move an order into the
// Pending state, where it awaits payment or cancellation. The workflow issues
// it right after starting, and again when a cancelled order is retried.
type MarkOrderPendingCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderPendingCommand creates a command to mark an order as pending.
func NewMarkOrderPendingCommand(orderID kernel.UUID) (MarkOrderPendingCommand, error) {
	pendingCommand := MarkOrderPendingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := pendingCommand.setOrderID(orderID); err != nil {
		return MarkOrderPendingCommand{}, err
	}

	return pendingCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderPendingCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderPendingCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to move.
func (c MarkOrderPendingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkOrderPendingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
