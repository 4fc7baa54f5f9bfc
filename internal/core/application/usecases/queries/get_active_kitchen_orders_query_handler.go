package queries

import (
	"context"
	"database/sql"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveKitchenOrdersQueryHandler retrieves in-production kitchen orders
// from the database. Terminal orders (ready for pickup, cancelled) are
// excluded so the board only shows work the kitchen still owes.
type GetActiveKitchenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveKitchenOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveKitchenOrdersQueryHandler(db *gorm.DB) GetActiveKitchenOrdersQueryHandler {
	return GetActiveKitchenOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by estimated completion so
// the most pressing orders come first.
func (h GetActiveKitchenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveKitchenOrdersQuery,
) ([]GetActiveKitchenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveKitchenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			ko.id,
			ko.order_id,
			ko.status,
			ko.priority,
			ko.estimated_completion,
			ko.actual_start,
			COUNT(ki.id),
			COUNT(ki.id) FILTER (WHERE ki.status = ?)
		FROM kitchen_orders ko
		LEFT JOIN kitchen_items ki ON ki.kitchen_order_id = ko.id
		WHERE ko.tenant_id = ? AND ko.status NOT IN (?, ?)
		GROUP BY ko.id, ko.order_id, ko.status, ko.priority, ko.estimated_completion, ko.actual_start
		ORDER BY ko.estimated_completion
	`,
		int(kitchenorder.ItemStatusCompleted),
		query.TenantID().Bytes(),
		int(kitchenorder.StatusReadyForPickup),
		int(kitchenorder.StatusCancelled),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveKitchenOrdersQueryResponse
		var id, orderID uuid.UUID
		var status int
		var actualStart sql.NullTime

		err = rows.Scan(
			&id,
			&orderID,
			&status,
			&resp.Priority,
			&resp.EstimatedCompletion,
			&actualStart,
			&resp.TotalItems,
			&resp.CompletedItems,
		)
		if err != nil {
			return nil, err
		}

		koID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = koID

		commercialID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = commercialID

		resp.Status = kitchenorder.Status(status).String()
		if actualStart.Valid {
			start := actualStart.Time
			resp.ActualStart = &start
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
