package stockrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB, tracker aggregateTracker) *GormStockRepository {
	return &GormStockRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new reservation to the database.
func (r *GormStockRepository) Add(ctx context.Context, reservation *order.StockReservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}

	dto := fromDomain(reservation)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(reservation.ID(), reservation)
	return nil
}

// Update saves an existing reservation to the database.
func (r *GormStockRepository) Update(ctx context.Context, reservation *order.StockReservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}

	dto := fromDomain(reservation)
	result := r.db.WithContext(ctx).
		Model(&StockReservationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stock reservation", reservation.ID().String())
	}

	r.tracker.TrackAggregate(reservation.ID(), reservation)
	return nil
}

// GetByOrderID retrieves all reservations held for the given order, oldest first.
func (r *GormStockRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*order.StockReservation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StockReservationDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	reservations := make([]*order.StockReservation, 0, len(dtos))
	for _, dto := range dtos {
		reservation, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}
