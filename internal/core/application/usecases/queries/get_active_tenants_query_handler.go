package queries

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveTenantsQueryHandler reads the distinct tenants with active kitchen
// orders straight from the database.
type GetActiveTenantsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveTenantsQueryHandler creates a handler over the given database.
func NewGetActiveTenantsQueryHandler(db *gorm.DB) GetActiveTenantsQueryHandler {
	return GetActiveTenantsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetActiveTenantsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveTenantsQuery,
) ([]kernel.UUID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tenants := make([]kernel.UUID, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT tenant_id
		FROM kitchen_orders
		WHERE status NOT IN (?, ?)
	`,
		int(kitchenorder.StatusReadyForPickup),
		int(kitchenorder.StatusCancelled),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		tenantID, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenantID)
	}

	return tenants, rows.Err()
}
