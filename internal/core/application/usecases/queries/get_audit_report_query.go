package queries

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/pkg/guard"
)

var (
	ErrGetAuditReportQueryIsNotConstructed = errors.New(
		"GetAuditReportQuery must be created via NewGetAuditReportQuery constructor",
	)
)

// GetAuditReportQuery runs the combined consistency validation against one
// kitchen order's current data and reference sources.
type GetAuditReportQuery struct {
	kitchenOrderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAuditReportQuery creates an audit query for one kitchen order.
func NewGetAuditReportQuery(kitchenOrderID kernel.UUID) (GetAuditReportQuery, error) {
	if err := kitchenOrderID.Validate(); err != nil {
		return GetAuditReportQuery{}, err
	}

	return GetAuditReportQuery{
		kitchenOrderID: kitchenOrderID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAuditReportQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditReportQueryIsNotConstructed)
}

// KitchenOrderID returns the audited kitchen order.
func (q GetAuditReportQuery) KitchenOrderID() kernel.UUID {
	return q.kitchenOrderID
}

// GetAuditReportQueryResponse is a consistency audit outcome: the report with
// its blocking errors and advisory warnings, and the time the snapshot was
// checked. Warnings alone never make the order invalid.
type GetAuditReportQueryResponse struct {
	KitchenOrderID kernel.UUID
	IsValid        bool
	Report         services.ValidationReport
	CheckedAt      time.Time
}
