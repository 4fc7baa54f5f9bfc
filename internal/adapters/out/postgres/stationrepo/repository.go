package stationrepo

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStationRepository implements StationRepository using GORM.
type GormStationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStationRepository creates a new GORM station repository.
func NewGormStationRepository(db *gorm.DB, tracker aggregateTracker) *GormStationRepository {
	return &GormStationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new station to the database.
func (r *GormStationRepository) Add(ctx context.Context, aggregate *station.Station) error {
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

// Update saves station changes under the optimistic version check. The write
// only applies when the stored version still equals the version the aggregate
// was loaded with, and it bumps the stored version by one. A lost race
// surfaces as ports.ErrVersionConflict so the caller can reload and retry.
func (r *GormStationRepository) Update(ctx context.Context, aggregate *station.Station) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version++

	result := r.db.WithContext(ctx).
		Model(&StationDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrVersionConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a station by ID.
func (r *GormStationRepository) Get(ctx context.Context, id kernel.UUID) (*station.Station, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("station", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByTenant retrieves the full station roster for a tenant, ordered by
// name for stable output.
func (r *GormStationRepository) GetAllByTenant(ctx context.Context, tenantID kernel.UUID) ([]*station.Station, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StationDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID.Bytes()).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	stations := make([]*station.Station, 0, len(dtos))
	for _, dto := range dtos {
		s, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		stations = append(stations, s)
	}

	return stations, nil
}
