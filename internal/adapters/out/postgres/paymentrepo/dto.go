// Package paymentrepo persists payment records belonging to orders.
package paymentrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for persisting payments.
type PaymentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	Method         string
	Amount         int64
	Currency       string
	Status         string
	TransactionRef string
	PaidAt         *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *order.Payment) PaymentDTO {
	var paidAt *time.Time
	if settledAt := p.PaidAt(); settledAt != nil {
		utc := settledAt.UTC()
		paidAt = &utc
	}

	return PaymentDTO{
		ID:             p.ID().Bytes(),
		OrderID:        p.OrderID().Bytes(),
		Method:         p.Method().String(),
		Amount:         p.Amount(),
		Currency:       p.Currency(),
		Status:         p.Status().String(),
		TransactionRef: p.TransactionRef(),
		PaidAt:         paidAt,
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	method, err := order.PaymentMethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}

	status, err := order.PaymentStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var paidAt *time.Time
	if dto.PaidAt != nil {
		utc := dto.PaidAt.UTC()
		paidAt = &utc
	}

	return order.RestorePayment(
		id,
		orderID,
		method,
		dto.Amount,
		dto.Currency,
		status,
		dto.TransactionRef,
		paidAt,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
