package ports

import (
	"context"
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/station"
)

// ErrVersionConflict is returned by StationRepository.Update when the
// station's persisted version no longer matches the loaded aggregate's.
// Callers reload, re-validate headroom, and retry.
var ErrVersionConflict = errors.New("station was modified concurrently")

// StationRepository defines the persistence contract for preparation stations.
//
// Update must enforce optimistic locking on the version column: the row is
// only written when the stored version equals the aggregate's loaded version,
// and the write bumps it. Two concurrent reservations of a station's last
// open slot therefore cannot both commit; the loser gets ErrVersionConflict.
type StationRepository interface {
	// Add persists a new station.
	Add(ctx context.Context, aggregate *station.Station) error

	// Update persists station changes under the optimistic version check.
	Update(ctx context.Context, aggregate *station.Station) error

	// Get retrieves a station by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*station.Station, error)

	// GetAllByTenant retrieves the full station roster for a tenant.
	GetAllByTenant(ctx context.Context, tenantID kernel.UUID) ([]*station.Station, error)
}
