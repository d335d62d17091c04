package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrProcessPaymentCommandIsNotConstructed = errors.New(
		"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
	)
	ErrTransactionRefIsRequired = errors.New("transaction reference is required")
)

// ProcessPaymentCommand represents a confirmation that the order's pending
// payment settled externally. Carries the provider's transaction reference
// for the audit trail.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	transactionRef string

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command to settle an order's payment.
// Validates that the order ID is valid and the transaction reference is not empty.
func NewProcessPaymentCommand(orderID kernel.UUID, transactionRef string) (ProcessPaymentCommand, error) {
	paymentCommand := ProcessPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paymentCommand.setOrderID(orderID),
		paymentCommand.setTransactionRef(transactionRef),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return paymentCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being paid.
func (c ProcessPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TransactionRef returns the external settlement reference.
func (c ProcessPaymentCommand) TransactionRef() string {
	return c.transactionRef
}

func (c *ProcessPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessPaymentCommand) setTransactionRef(transactionRef string) error {
	if transactionRef == "" {
		return ErrTransactionRefIsRequired
	}

	c.transactionRef = transactionRef
	return nil
}
