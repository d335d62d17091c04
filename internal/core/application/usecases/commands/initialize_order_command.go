package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrInitializeOrderCommandIsNotConstructed = errors.New(
		"InitializeOrderCommand must be created via NewInitializeOrderCommand constructor",
	)
	ErrReferenceIDIsRequired = errors.New("reference ID is required")
	ErrAmountIsInvalid       = errors.New("amount must be greater than 0")
	ErrCurrencyIsRequired    = errors.New("currency is required")
)

// InitializeOrderCommand represents a request to register a new order together
// with its initial pending payment. The reference ID is the caller's
// idempotency key: replaying the same command returns the already initialized
// order instead of creating a duplicate.
//
// Example:
//
//	cmd, err := NewInitializeOrderCommand("ref-123", "cash", 10000, "USD")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewInitializeOrderCommandHandler(uowFactory, kernel.SystemClock{})
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to initialize order: %w", err)
//	}
//	fmt.Printf("Order %s initialized, payment %s is %s", result.OrderID, result.PaymentID, result.PaymentStatus)
type InitializeOrderCommand struct { //nolint:recvcheck //using for validation
	referenceID   string
	paymentMethod order.PaymentMethod
	amount        int64
	currency      string

	guard guard.ConstructorGuard
}

// NewInitializeOrderCommand creates a command to initialize a new order.
// Validates that the reference ID and currency are not empty, the payment
// method names a known method, and the amount is positive.
// Returns an error if any validation fails.
func NewInitializeOrderCommand(referenceID string, paymentMethod string, amount int64, currency string) (InitializeOrderCommand, error) {
	orderCommand := InitializeOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setReferenceID(referenceID),
		orderCommand.setPaymentMethod(paymentMethod),
		orderCommand.setAmount(amount),
		orderCommand.setCurrency(currency),
	); err != nil {
		return InitializeOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrInitializeOrderCommandIsNotConstructed if validation fails.
func (c InitializeOrderCommand) Validate() error {
	return c.guard.Validate(ErrInitializeOrderCommandIsNotConstructed)
}

// ReferenceID returns the caller-supplied idempotency key.
func (c InitializeOrderCommand) ReferenceID() string {
	return c.referenceID
}

// PaymentMethod returns the parsed payment method.
func (c InitializeOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Amount returns the order total in minor currency units.
func (c InitializeOrderCommand) Amount() int64 {
	return c.amount
}

// Currency returns the ISO currency code of the order total.
func (c InitializeOrderCommand) Currency() string {
	return c.currency
}

func (c *InitializeOrderCommand) setReferenceID(referenceID string) error {
	if referenceID == "" {
		return ErrReferenceIDIsRequired
	}

	c.referenceID = referenceID
	return nil
}

func (c *InitializeOrderCommand) setPaymentMethod(paymentMethod string) error {
	method, err := order.PaymentMethodFromString(paymentMethod)
	if err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}

func (c *InitializeOrderCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}

func (c *InitializeOrderCommand) setCurrency(currency string) error {
	if currency == "" {
		return ErrCurrencyIsRequired
	}

	c.currency = currency
	return nil
}
