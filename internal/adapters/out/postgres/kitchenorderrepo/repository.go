package kitchenorderrepo

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormKitchenOrderRepository implements KitchenOrderRepository using GORM.
type GormKitchenOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormKitchenOrderRepository creates a new GORM kitchen order repository.
func NewGormKitchenOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormKitchenOrderRepository {
	return &GormKitchenOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new kitchen order to the database.
func (r *GormKitchenOrderRepository) Add(ctx context.Context, aggregate *kitchenorder.KitchenOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing kitchen order to the database, including item
// state and newly appended status log entries.
func (r *GormKitchenOrderRepository) Update(ctx context.Context, aggregate *kitchenorder.KitchenOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// FullSaveAssociations upserts items by id and status log entries by
	// (order id, seq), so re-saving never duplicates log history.
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a kitchen order by ID, complete with items and status log.
func (r *GormKitchenOrderRepository) Get(ctx context.Context, id kernel.UUID) (*kitchenorder.KitchenOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto KitchenOrderDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("kitchenOrder", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByContract retrieves the kitchen order derived from the given contract.
// Returns (nil, nil) when no kitchen order exists for the contract.
func (r *GormKitchenOrderRepository) GetByContract(ctx context.Context, contractID kernel.UUID) (*kitchenorder.KitchenOrder, error) {
	if err := contractID.Validate(); err != nil {
		return nil, err
	}

	var dto KitchenOrderDTO
	if err := r.preloaded(ctx).First(&dto, "contract_id = ?", contractID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every non-terminal kitchen order for a tenant.
// Terminal orders (ready for pickup or cancelled) stay out of the active
// production view.
func (r *GormKitchenOrderRepository) GetAllActive(ctx context.Context, tenantID kernel.UUID) ([]*kitchenorder.KitchenOrder, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []KitchenOrderDTO
	err := r.preloaded(ctx).
		Where("tenant_id = ? AND status NOT IN ?", tenantID.Bytes(),
			[]int{int(kitchenorder.StatusReadyForPickup), int(kitchenorder.StatusCancelled)}).
		Order("estimated_completion").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*kitchenorder.KitchenOrder, 0, len(dtos))
	for _, dto := range dtos {
		ko, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, ko)
	}

	return orders, nil
}

func (r *GormKitchenOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusLog", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq")
		})
}
