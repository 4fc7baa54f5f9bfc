// Package stationrepo provides data transfer objects and mapping functions
// for preparation station persistence. Stations carry a version column used
// for optimistic concurrency control on workload updates.
package stationrepo

import (
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/station"

	"github.com/google/uuid"
)

// StationDTO represents the database structure for persisting stations.
// The version column guards concurrent workload changes: updates only apply
// when the stored version matches the one the aggregate was loaded with.
type StationDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"type:varchar(255);not null"`
	StationType     string    `gorm:"type:varchar(32);not null"`
	Capacity        int       `gorm:"type:int;not null"`
	Workload        int       `gorm:"type:int;not null"`
	Specializations []string  `gorm:"serializer:json;type:jsonb"`
	Equipment       []string  `gorm:"serializer:json;type:jsonb"`
	Staff           []string  `gorm:"serializer:json;type:jsonb"`
	Status          int       `gorm:"type:int;not null"`
	AvgMinutes      int       `gorm:"type:int;not null"`
	Version         int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for station entities.
func (StationDTO) TableName() string {
	return "stations"
}

// fromDomain converts a station aggregate to its database representation.
func fromDomain(s *station.Station) StationDTO {
	return StationDTO{
		ID:              s.ID().Bytes(),
		TenantID:        s.TenantID().Bytes(),
		Name:            s.Name(),
		StationType:     string(s.StationType()),
		Capacity:        s.Capacity(),
		Workload:        s.Workload(),
		Specializations: s.Specializations(),
		Equipment:       s.Equipment(),
		Staff:           s.Staff(),
		Status:          int(s.Status()),
		AvgMinutes:      s.AvgProcessingMinutes(),
		Version:         s.Version(),
	}
}

// toDomain converts a database DTO back into a station aggregate.
func toDomain(dto StationDTO) (*station.Station, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}

	return station.RestoreStation(
		id,
		tenantID,
		dto.Name,
		station.Type(dto.StationType),
		dto.Capacity,
		dto.Workload,
		dto.Specializations,
		dto.Equipment,
		dto.Staff,
		station.Status(dto.Status),
		dto.AvgMinutes,
		dto.Version,
	)
}
