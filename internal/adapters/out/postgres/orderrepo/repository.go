package orderrepo

import (
	"context"
	"errors"
	"math"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	o.MarkPersisted()
	r.tracker.TrackAggregate(o.ID(), o)
	return nil
}

// Update saves an existing order to the database.
// The write is predicated on the version the order was loaded with: a row
// moved on by another transaction matches zero rows, which surfaces as
// errs.ConcurrencyConflictError so the caller can reload and retry.
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	dto := fromDomain(o)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, o.PersistedVersion()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("order", o.ID().String(), o.PersistedVersion())
	}

	o.MarkPersisted()
	r.tracker.TrackAggregate(o.ID(), o)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByReferenceID retrieves the order initialized under the given idempotency reference.
func (r *GormOrderRepository) GetByReferenceID(ctx context.Context, referenceID string) (*order.Order, error) {
	if referenceID == "" {
		return nil, errs.NewValueIsRequiredError("referenceID")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "reference_id = ?", referenceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", referenceID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByWorkflowID retrieves the order bound to the given workflow identity.
func (r *GormOrderRepository) GetByWorkflowID(ctx context.Context, workflowID string) (*order.Order, error) {
	if workflowID == "" {
		return nil, errs.NewValueIsRequiredError("workflowID")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "workflow_id = ?", workflowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", workflowID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnattached retrieves orders that have no workflow binding yet.
func (r *GormOrderRepository) GetAllUnattached(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "workflow_id = ''").Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// List retrieves a page of orders ordered by creation time.
func (r *GormOrderRepository) List(ctx context.Context, skip int, take int) ([]*order.Order, error) {
	if skip < 0 {
		return nil, errs.NewValueIsOutOfRangeError("skip", skip, 0, math.MaxInt)
	}
	if take <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("take", take, 1, math.MaxInt)
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Offset(skip).
		Limit(take).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
