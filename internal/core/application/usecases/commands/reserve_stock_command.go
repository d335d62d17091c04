package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrReserveStockCommandIsNotConstructed = errors.New(
		"ReserveStockCommand must be created via NewReserveStockCommand constructor",
	)
	ErrSkuIsRequired     = errors.New("sku is required")
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// ReserveStockCommand represents a request to hold stock for an order.
type ReserveStockCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	sku      string
	quantity int

	guard guard.ConstructorGuard
}

// NewReserveStockCommand creates a command to reserve stock for an order.
// Validates that the order ID is valid, the SKU is not empty and the quantity
// is positive.
func NewReserveStockCommand(orderID kernel.UUID, sku string, quantity int) (ReserveStockCommand, error) {
	stockCommand := ReserveStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		stockCommand.setOrderID(orderID),
		stockCommand.setSku(sku),
		stockCommand.setQuantity(quantity),
	); err != nil {
		return ReserveStockCommand{}, err
	}

	return stockCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReserveStockCommand) Validate() error {
	return c.guard.Validate(ErrReserveStockCommandIsNotConstructed)
}

// OrderID returns the identifier of the order holding the stock.
func (c ReserveStockCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Sku returns the stock keeping unit being reserved.
func (c ReserveStockCommand) Sku() string {
	return c.sku
}

// Quantity returns the number of units to hold.
func (c ReserveStockCommand) Quantity() int {
	return c.quantity
}

func (c *ReserveStockCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ReserveStockCommand) setSku(sku string) error {
	if sku == "" {
		return ErrSkuIsRequired
	}

	c.sku = sku
	return nil
}

func (c *ReserveStockCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}
