package queries

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

// GetAssignmentProposalsQueryHandler runs the assignment engine over the
// tenant's current production snapshot. The pass is read-only: stations and
// orders are loaded, scored, and left untouched. Nothing is committed until
// an acceptance command arrives for one of the suggestions.
type GetAssignmentProposalsQueryHandler struct {
	orders   ports.KitchenOrderRepository
	stations ports.StationRepository
	assigner services.StationAssigner
}

// NewGetAssignmentProposalsQueryHandler creates a handler over the order and
// station repositories and the given assignment engine.
func NewGetAssignmentProposalsQueryHandler(
	orders ports.KitchenOrderRepository,
	stations ports.StationRepository,
	assigner services.StationAssigner,
) GetAssignmentProposalsQueryHandler {
	return GetAssignmentProposalsQueryHandler{
		orders:   orders,
		stations: stations,
		assigner: assigner,
	}
}

// Handle collects every pending item across the tenant's active orders,
// loads the station roster, and returns the engine's advisory result.
func (h GetAssignmentProposalsQueryHandler) Handle(
	ctx context.Context,
	query GetAssignmentProposalsQuery,
) (GetAssignmentProposalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAssignmentProposalsQueryResponse{}, err
	}

	activeOrders, err := h.orders.GetAllActive(ctx, query.TenantID())
	if err != nil {
		return GetAssignmentProposalsQueryResponse{}, err
	}

	roster, err := h.stations.GetAllByTenant(ctx, query.TenantID())
	if err != nil {
		return GetAssignmentProposalsQueryResponse{}, err
	}

	var pending []*kitchenorder.Item
	itemOrders := make(map[string]kernel.UUID)
	for _, ko := range activeOrders {
		for _, item := range ko.PendingItems() {
			pending = append(pending, item)
			itemOrders[item.ID().String()] = ko.ID()
		}
	}

	return GetAssignmentProposalsQueryResponse{
		GeneratedAt: time.Now().UTC(),
		Result:      h.assigner.Propose(pending, roster),
		ItemOrders:  itemOrders,
	}, nil
}
