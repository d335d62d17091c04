// Package loyaltyrepo persists the append-only loyalty ledger.
package loyaltyrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// LoyaltyEntryDTO represents the database structure for one ledger entry.
type LoyaltyEntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	PointsDelta int64
	Reason      string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

// TableName specifies the database table name for ledger entries.
func (LoyaltyEntryDTO) TableName() string {
	return "loyalty_entries"
}

func fromDomain(e *order.LoyaltyEntry) LoyaltyEntryDTO {
	return LoyaltyEntryDTO{
		ID:          e.ID().Bytes(),
		OrderID:     e.OrderID().Bytes(),
		PointsDelta: e.PointsDelta(),
		Reason:      e.Reason(),
		CreatedAt:   e.CreatedAt(),
	}
}

func toDomain(dto LoyaltyEntryDTO) (*order.LoyaltyEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreLoyaltyEntry(id, orderID, dto.PointsDelta, dto.Reason, dto.CreatedAt.UTC())
}
