package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var (
	ErrGetStationWorkloadsQueryIsNotConstructed = errors.New(
		"GetStationWorkloadsQuery must be created via NewGetStationWorkloadsQuery constructor",
	)
)

// GetStationWorkloadsQuery retrieves the current workload picture of every
// station in one tenant's kitchen.
type GetStationWorkloadsQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStationWorkloadsQuery creates a query scoped to one tenant.
func NewGetStationWorkloadsQuery(tenantID kernel.UUID) (GetStationWorkloadsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetStationWorkloadsQuery{}, err
	}

	return GetStationWorkloadsQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStationWorkloadsQuery) Validate() error {
	return q.guard.Validate(ErrGetStationWorkloadsQueryIsNotConstructed)
}

// TenantID returns the tenant whose stations the query covers.
func (q GetStationWorkloadsQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// GetStationWorkloadsQueryResponse represents one station's load snapshot.
// Utilization is workload over capacity; the wait estimate is the backlog
// times the station's average processing minutes.
type GetStationWorkloadsQueryResponse struct {
	ID                   kernel.UUID
	Name                 string
	StationType          string
	Status               string
	Capacity             int
	Workload             int
	Utilization          float64
	EstimatedWaitMinutes int
}
