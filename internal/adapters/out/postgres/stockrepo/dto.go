// Package stockrepo persists stock reservations held for orders.
package stockrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StockReservationDTO represents the database structure for one reservation.
type StockReservationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Sku       string
	Quantity  int
	Status    string
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// TableName specifies the database table name for reservations.
func (StockReservationDTO) TableName() string {
	return "stock_reservations"
}

func fromDomain(r *order.StockReservation) StockReservationDTO {
	return StockReservationDTO{
		ID:        r.ID().Bytes(),
		OrderID:   r.OrderID().Bytes(),
		Sku:       r.Sku(),
		Quantity:  r.Quantity(),
		Status:    r.Status().String(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

func toDomain(dto StockReservationDTO) (*order.StockReservation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StockStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreStockReservation(id, orderID, dto.Sku, dto.Quantity, status,
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
