package queries

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/station"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStationWorkloadsQueryHandler retrieves station load snapshots from the
// database for dashboards and the assignment proposal view.
type GetStationWorkloadsQueryHandler struct {
	db *gorm.DB
}

// NewGetStationWorkloadsQueryHandler creates a handler for station workload queries.
func NewGetStationWorkloadsQueryHandler(db *gorm.DB) GetStationWorkloadsQueryHandler {
	return GetStationWorkloadsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by name for consistent output.
func (h GetStationWorkloadsQueryHandler) Handle(
	ctx context.Context,
	query GetStationWorkloadsQuery,
) ([]GetStationWorkloadsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stations := make([]GetStationWorkloadsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			station_type,
			status,
			capacity,
			workload,
			avg_minutes
		FROM stations
		WHERE tenant_id = ?
		ORDER BY name
	`, query.TenantID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetStationWorkloadsQueryResponse
		var id uuid.UUID
		var status, avgMinutes int

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.StationType,
			&status,
			&resp.Capacity,
			&resp.Workload,
			&avgMinutes,
		)
		if err != nil {
			return nil, err
		}

		stationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = stationID

		resp.Status = station.Status(status).String()
		if resp.Capacity > 0 {
			resp.Utilization = float64(resp.Workload) / float64(resp.Capacity)
		}
		resp.EstimatedWaitMinutes = resp.Workload * avgMinutes

		stations = append(stations, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}
