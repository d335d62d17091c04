package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not created
// through the NewPayment or RestorePayment factory functions.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// PaymentMethod enumerates the recognized ways an order can be paid.
// Methods arriving from external input are parsed with PaymentMethodFromString;
// anything outside the whitelist is rejected, never silently coerced.
type PaymentMethod int

const (
	// MethodUnknown represents an invalid or undefined payment method.
	MethodUnknown PaymentMethod = iota

	// MethodCash is payment in cash on handover.
	MethodCash

	// MethodCard is payment by debit or credit card.
	MethodCard

	// MethodWallet is payment from a stored-value wallet.
	MethodWallet
)

// getPaymentMethodStrings returns a map of valid PaymentMethod values to their
// wire representations.
func getPaymentMethodStrings() map[PaymentMethod]string {
	//nolint:exhaustive // MethodUnknown is intentionally excluded as it's invalid
	return map[PaymentMethod]string{
		MethodCash:   "cash",
		MethodCard:   "card",
		MethodWallet: "wallet",
	}
}

// Validate checks if the PaymentMethod is a member of the whitelist.
func (m PaymentMethod) Validate() error {
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a recognized payment method", m))
	}
	return nil
}

// String returns the wire representation of the method, or "unknown".
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentMethodFromString parses a payment method from its wire representation.
// An unrecognized method fails with a precise validation error.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a recognized payment method", s))
}

// PaymentStatus represents the settlement state of a payment.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentPending is the initial status of a freshly created payment.
	PaymentPending

	// PaymentCompleted indicates the payment has settled; PaidAt is stamped
	// on the transition into this status.
	PaymentCompleted

	// PaymentRefunded indicates a completed payment that has been returned.
	PaymentRefunded
)

// getPaymentStatusStrings returns a map of PaymentStatus values to their
// string representations.
func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "Unknown",
		PaymentPending:       "Pending",
		PaymentCompleted:     "Completed",
		PaymentRefunded:      "Refunded",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentCompleted && s != PaymentRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// PaymentStatusFromString parses a payment status from its stored representation.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a recognized payment status", s))
}

// Payment is one payment attempt against an order. An order accumulates
// payments historically, but at most one is active (Pending) at a time.
type Payment struct {
	// id is the unique identifier for the payment
	id kernel.UUID

	// orderID is the back-reference to the owning order
	orderID kernel.UUID

	method PaymentMethod

	// amount is in minor currency units
	amount   int64
	currency string

	status PaymentStatus

	// transactionRef is the external settlement reference, recorded when the
	// payment completes
	transactionRef string

	// paidAt is set only on the transition into PaymentCompleted
	paidAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPayment creates a new Payment in Pending status.
func NewPayment(id, orderID kernel.UUID, method PaymentMethod, amount int64, currency string, now time.Time) (*Payment, error) {
	payment := &Payment{
		status:        PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		payment.setID(id),
		payment.setOrderID(orderID),
		payment.setMethod(method),
		payment.setAmount(amount),
		payment.setCurrency(currency),
	); err != nil {
		return nil, err
	}

	return payment, nil
}

// RestorePayment reconstructs a Payment from persistence.
func RestorePayment(
	id, orderID kernel.UUID,
	method PaymentMethod,
	amount int64,
	currency string,
	status PaymentStatus,
	transactionRef string,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	payment := &Payment{
		transactionRef: transactionRef,
		paidAt:         paidAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		payment.setID(id),
		payment.setOrderID(orderID),
		payment.setMethod(method),
		payment.setAmount(amount),
		payment.setCurrency(currency),
		payment.setStatus(status),
	); err != nil {
		return nil, err
	}

	return payment, nil
}

// Validate ensures the Payment instance was properly constructed through a
// factory function.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the owning order.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Method returns the payment method.
func (p *Payment) Method() PaymentMethod {
	return p.method
}

// Amount returns the payment amount in minor currency units.
func (p *Payment) Amount() int64 {
	return p.amount
}

// Currency returns the ISO 4217 currency code.
func (p *Payment) Currency() string {
	return p.currency
}

// Status returns the settlement status.
func (p *Payment) Status() PaymentStatus {
	return p.status
}

// TransactionRef returns the external settlement reference, or "" before completion.
func (p *Payment) TransactionRef() string {
	return p.transactionRef
}

// PaidAt returns the settlement instant, or nil while the payment is not completed.
func (p *Payment) PaidAt() *time.Time {
	return p.paidAt
}

// CreatedAt returns the creation instant.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the instant of the last mutation.
func (p *Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsActive reports whether this payment is the order's active (Pending) payment.
func (p *Payment) IsActive() bool {
	return p.status == PaymentPending
}

// Complete settles the payment and stamps PaidAt. Completing an
// already-completed payment is an idempotent no-op, so a redelivered payment
// confirmation does not fail. Completing a refunded payment is an error.
func (p *Payment) Complete(transactionRef string, now time.Time) error {
	if p.status == PaymentCompleted {
		return nil
	}
	if p.status != PaymentPending {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%s is not a valid status to complete a payment from", p.status))
	}

	p.status = PaymentCompleted
	p.transactionRef = transactionRef
	paidAt := now
	p.paidAt = &paidAt
	p.updatedAt = now
	return nil
}

// Refund marks a completed payment as returned.
func (p *Payment) Refund(now time.Time) error {
	if p.status == PaymentRefunded {
		return nil
	}
	if p.status != PaymentCompleted {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%s is not a valid status to refund a payment from", p.status))
	}

	p.status = PaymentRefunded
	p.updatedAt = now
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	p.currency = currency
	return nil
}

func (p *Payment) setStatus(status PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
