package queries

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

// GetAuditReportQueryHandler assembles the richest snapshot the reference
// sources can provide for one kitchen order and runs every consistency check
// over it: contract traceability, recipe resolution, station assignments,
// ingredient availability, and timing sanity. Reference data a provider
// cannot supply right now leaves the corresponding checks out of the report
// rather than failing the audit.
type GetAuditReportQueryHandler struct {
	orders    ports.KitchenOrderRepository
	contracts ports.ContractRepository
	stations  ports.StationRepository
	recipes   ports.RecipeProvider
	inventory ports.InventoryProvider
	sources   ports.SourceOrderProvider
	validator services.ConsistencyValidator
}

// NewGetAuditReportQueryHandler wires the handler to the repositories and
// reference data providers the audit reads from.
func NewGetAuditReportQueryHandler(
	orders ports.KitchenOrderRepository,
	contracts ports.ContractRepository,
	stations ports.StationRepository,
	recipes ports.RecipeProvider,
	inventory ports.InventoryProvider,
	sources ports.SourceOrderProvider,
) GetAuditReportQueryHandler {
	return GetAuditReportQueryHandler{
		orders:    orders,
		contracts: contracts,
		stations:  stations,
		recipes:   recipes,
		inventory: inventory,
		sources:   sources,
		validator: services.NewConsistencyValidator(),
	}
}

// Handle runs the audit. Only the kitchen order itself is mandatory; every
// other input is attached when its source can deliver it.
func (h GetAuditReportQueryHandler) Handle(
	ctx context.Context,
	query GetAuditReportQuery,
) (GetAuditReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAuditReportQueryResponse{}, err
	}

	order, err := h.orders.Get(ctx, query.KitchenOrderID())
	if err != nil {
		return GetAuditReportQueryResponse{}, err
	}

	in := services.ValidationInput{
		Order: order,
		Now:   time.Now().UTC(),
	}

	if c, contractErr := h.contracts.Get(ctx, order.ContractID()); contractErr == nil {
		in.Contract = c
	}

	if roster, stationErr := h.stations.GetAllByTenant(ctx, order.TenantID()); stationErr == nil {
		in.Stations = roster
	}

	recipes := make(services.RecipeSet)
	for _, item := range order.Items() {
		ref := services.Ref(item.RecipeID(), item.RecipeVersion())
		if _, ok := recipes[ref]; ok {
			continue
		}
		rec, recipeErr := h.recipes.ResolveRecipe(ctx, item.RecipeID(), item.RecipeVersion())
		if recipeErr != nil {
			continue // the item_recipe check reports the unresolved reference
		}
		recipes[ref] = rec
	}
	if len(recipes) > 0 {
		in.Recipes = recipes

		if stock, stockErr := h.inventory.StockLevels(ctx, order.TenantID(), ingredientIDsOf(recipes)); stockErr == nil {
			in.Stock = stock
		}
	}

	if source, sourceErr := h.sources.SourceOrder(ctx, order.OrderID()); sourceErr == nil && source != nil {
		in.Source = source
	}

	report := h.validator.ValidateKitchenOrder(in)

	return GetAuditReportQueryResponse{
		KitchenOrderID: order.ID(),
		IsValid:        report.IsValid(),
		Report:         report,
		CheckedAt:      in.Now,
	}, nil
}

// ingredientIDsOf collects the distinct ingredient ids referenced by a recipe
// set, for one batched stock lookup.
func ingredientIDsOf(recipes services.RecipeSet) []kernel.UUID {
	seen := make(map[string]bool)
	var ids []kernel.UUID
	for _, rec := range recipes {
		for _, ing := range rec.Ingredients {
			if !seen[ing.ID.String()] {
				seen[ing.ID.String()] = true
				ids = append(ids, ing.ID)
			}
		}
	}
	return ids
}
