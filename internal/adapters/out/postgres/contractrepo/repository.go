package contractrepo

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormContractRepository implements ContractRepository using GORM.
type GormContractRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormContractRepository creates a new GORM contract repository.
func NewGormContractRepository(db *gorm.DB, tracker aggregateTracker) *GormContractRepository {
	return &GormContractRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new contract to the database.
func (r *GormContractRepository) Add(ctx context.Context, aggregate *contract.Contract) error {
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

// Get retrieves a contract by ID.
func (r *GormContractRepository) Get(ctx context.Context, id kernel.UUID) (*contract.Contract, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ContractDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("contract", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderAndVersion retrieves the contract generated for one
// (orderID, version) pair. Returns (nil, nil) when no contract exists, which
// is the normal case for a first-time order confirmation.
func (r *GormContractRepository) GetByOrderAndVersion(
	ctx context.Context,
	orderID kernel.UUID,
	version int,
) (*contract.Contract, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto ContractDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "order_id = ? AND order_version = ?", orderID.Bytes(), version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}
