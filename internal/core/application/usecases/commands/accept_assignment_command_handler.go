package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/station"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
)

var (
	// ErrManualAssignmentRequired is returned when the capacity race could not
	// be won within the retry budget or the station lost its headroom; the
	// item stays pending and a human routes it.
	ErrManualAssignmentRequired = errors.New("assignment needs manual routing")
	// ErrAssignmentBlocked is returned when the pre-commit validation found
	// blocking errors.
	ErrAssignmentBlocked = errors.New("assignment blocked by validation")
)

// acceptRetries bounds the optimistic-lock retry loop.
const acceptRetries = 3

// AcceptAssignmentCommandHandler commits an accepted assignment suggestion.
//
// The commit is an optimistic check-and-increment on the station: headroom is
// re-validated on freshly loaded state inside each attempt, and a concurrent
// workload change surfaces as a version conflict on update, which rolls the
// attempt back and retries with re-read state. Two concurrent acceptances of
// a station's last open slot therefore never both commit.
type AcceptAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	validator  services.ConsistencyValidator
	recipes    ports.RecipeProvider
	inventory  ports.InventoryProvider
	sources    ports.SourceOrderProvider
	publisher  ports.EventPublisher
	locks      *OrderLocks
}

// NewAcceptAssignmentCommandHandler wires the handler to its unit of work
// factory, validation data sources, publisher, and the shared per-order locks.
func NewAcceptAssignmentCommandHandler(
	uowFactory AssignmentUoWFactory,
	recipes ports.RecipeProvider,
	inventory ports.InventoryProvider,
	sources ports.SourceOrderProvider,
	publisher ports.EventPublisher,
	locks *OrderLocks,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		validator:  services.NewConsistencyValidator(),
		recipes:    recipes,
		inventory:  inventory,
		sources:    sources,
		publisher:  publisher,
		locks:      locks,
	}
}

// Handle accepts the suggestion. Validation errors block the commit; a
// cancelled order rejects the acceptance outright, since terminality
// invalidates every pending suggestion.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.KitchenOrderID().String())
	defer unlock()

	var lastErr error
	for attempt := 0; attempt < acceptRetries; attempt++ {
		err := h.tryAccept(ctx, cmd)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrVersionConflict) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: %d conflicting attempts: %w", ErrManualAssignmentRequired, acceptRetries, lastErr)
}

// tryAccept runs one full attempt inside its own transaction.
func (h AcceptAssignmentCommandHandler) tryAccept(ctx context.Context, cmd AcceptAssignmentCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.KitchenOrderRepository()
	stationRepo := uow.StationRepository()

	order, err := orderRepo.Get(ctx, cmd.KitchenOrderID())
	if err != nil {
		return err
	}
	target, err := stationRepo.Get(ctx, cmd.StationID())
	if err != nil {
		return err
	}

	if report := h.validate(ctx, order, target); !report.IsValid() {
		return fmt.Errorf("%w: %s", ErrAssignmentBlocked, report.Errors[0].Message)
	}

	if err := order.AssignItem(cmd.ItemID(), cmd.StationID()); err != nil {
		return err
	}
	if err := target.Reserve(); err != nil {
		// Headroom vanished between scoring and acceptance. Not a race we
		// can win by retrying this same station.
		if errors.Is(err, station.ErrStationAtCapacity) || errors.Is(err, station.ErrStationNotAssignable) {
			return fmt.Errorf("%w: %w", ErrManualAssignmentRequired, err)
		}
		return err
	}

	if err := orderRepo.Update(ctx, order); err != nil {
		return err
	}
	if err := stationRepo.Update(ctx, target); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, events.SubjectStationAssignmentAccepted, events.StationAssignmentAccepted{
		KitchenOrderID: order.ID().String(),
		ItemID:         cmd.ItemID().String(),
		StationID:      cmd.StationID().String(),
		AcceptedBy:     cmd.Actor(),
		OccurredAt:     time.Now().UTC(),
	})
}

// validate runs the combined consistency validation with whatever reference
// data the providers can supply.
func (h AcceptAssignmentCommandHandler) validate(
	ctx context.Context,
	order *kitchenorder.KitchenOrder,
	target *station.Station,
) services.ValidationReport {
	in := services.ValidationInput{
		Order:    order,
		Stations: []*station.Station{target},
		Now:      time.Now().UTC(),
	}

	recipes := make(services.RecipeSet)
	for _, item := range order.Items() {
		ref := services.Ref(item.RecipeID(), item.RecipeVersion())
		if _, ok := recipes[ref]; ok {
			continue
		}
		rec, err := h.recipes.ResolveRecipe(ctx, item.RecipeID(), item.RecipeVersion())
		if err != nil {
			continue // unresolvable recipes are caught by the audit job
		}
		recipes[ref] = rec
	}
	if len(recipes) > 0 {
		in.Recipes = recipes

		ingredientIDs := ingredientIDsOf(recipes)
		if stock, err := h.inventory.StockLevels(ctx, order.TenantID(), ingredientIDs); err == nil {
			in.Stock = stock
		}
	}

	if source, err := h.sources.SourceOrder(ctx, order.OrderID()); err == nil && source != nil {
		in.Source = source
	}

	return h.validator.ValidateKitchenOrder(in)
}
