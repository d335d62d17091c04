package loyaltyrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormLoyaltyRepository implements LoyaltyRepository using GORM.
// The ledger is append-only, so no Update exists.
type GormLoyaltyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLoyaltyRepository creates a new GORM loyalty repository.
func NewGormLoyaltyRepository(db *gorm.DB, tracker aggregateTracker) *GormLoyaltyRepository {
	return &GormLoyaltyRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a new ledger entry.
func (r *GormLoyaltyRepository) Add(ctx context.Context, e *order.LoyaltyEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	dto := fromDomain(e)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(e.ID(), e)
	return nil
}

// GetByOrderID retrieves all ledger entries recorded for the given order, oldest first.
func (r *GormLoyaltyRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*order.LoyaltyEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []LoyaltyEntryDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*order.LoyaltyEntry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
