package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
)

// KitchenOrderRepository defines the persistence contract for kitchen orders.
type KitchenOrderRepository interface {
	// Add persists a new kitchen order aggregate with all its items.
	Add(ctx context.Context, aggregate *kitchenorder.KitchenOrder) error

	// Update persists changes to an existing kitchen order, including item
	// state and the appended status log entries.
	Update(ctx context.Context, aggregate *kitchenorder.KitchenOrder) error

	// Get retrieves a kitchen order by its unique identifier, complete with
	// items and status log.
	Get(ctx context.Context, id kernel.UUID) (*kitchenorder.KitchenOrder, error)

	// GetByContract retrieves the kitchen order derived from the given
	// contract, if one exists.
	GetByContract(ctx context.Context, contractID kernel.UUID) (*kitchenorder.KitchenOrder, error)

	// GetAllActive retrieves every non-terminal kitchen order for a tenant.
	GetAllActive(ctx context.Context, tenantID kernel.UUID) ([]*kitchenorder.KitchenOrder, error)
}
