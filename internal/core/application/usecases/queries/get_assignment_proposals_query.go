package queries

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/pkg/guard"
)

var (
	ErrGetAssignmentProposalsQueryIsNotConstructed = errors.New(
		"GetAssignmentProposalsQuery must be created via NewGetAssignmentProposalsQuery constructor",
	)
)

// GetAssignmentProposalsQuery asks the assignment engine for a fresh advisory
// pass over one tenant's pending items and station roster.
type GetAssignmentProposalsQuery struct {
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAssignmentProposalsQuery creates a query scoped to one tenant.
func NewGetAssignmentProposalsQuery(tenantID kernel.UUID) (GetAssignmentProposalsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAssignmentProposalsQuery{}, err
	}

	return GetAssignmentProposalsQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignmentProposalsQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignmentProposalsQueryIsNotConstructed)
}

// TenantID returns the tenant whose kitchen the proposal pass covers.
func (q GetAssignmentProposalsQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// GetAssignmentProposalsQueryResponse carries the full advisory output of the
// assignment engine: suggestions, items needing manual routing, overload
// warnings, and the redistribution and cross-training advice. ItemOrders maps
// each proposed item back to its kitchen order so acceptances can be routed.
type GetAssignmentProposalsQueryResponse struct {
	GeneratedAt time.Time
	Result      services.AssignmentResult
	ItemOrders  map[string]kernel.UUID
}
