// Package queries contains read-side operations of the CQRS split. List
// queries read projection rows straight from the database; advisory queries
// load aggregates and run the domain services over them, never writing
// anything back.
package queries

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var (
	ErrGetActiveKitchenOrdersQueryIsNotConstructed = errors.New(
		"GetActiveKitchenOrdersQuery must be created via NewGetActiveKitchenOrdersQuery constructor",
	)
)

// GetActiveKitchenOrdersQuery retrieves every kitchen order still in
// production for one tenant, with item progress counts for the board view.
type GetActiveKitchenOrdersQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveKitchenOrdersQuery creates a query scoped to one tenant.
func NewGetActiveKitchenOrdersQuery(tenantID kernel.UUID) (GetActiveKitchenOrdersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetActiveKitchenOrdersQuery{}, err
	}

	return GetActiveKitchenOrdersQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveKitchenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveKitchenOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant whose production the query covers.
func (q GetActiveKitchenOrdersQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// GetActiveKitchenOrdersQueryResponse represents one in-production kitchen
// order row for display: identity, lifecycle position, and item progress.
type GetActiveKitchenOrdersQueryResponse struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	Status              string
	Priority            string
	EstimatedCompletion time.Time
	ActualStart         *time.Time
	TotalItems          int
	CompletedItems      int
}
