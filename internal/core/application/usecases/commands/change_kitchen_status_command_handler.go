package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/ports"
)

// ChangeKitchenStatusCommandHandler applies order-level transitions.
//
// Side effects ride on specific transitions: first entry into in_preparation
// stamps the actual start and announces the start plus the ingredient
// consumption facts for the Inventory collaborator; ready_for_pickup stamps
// completion and announces it; cancellation releases every station the
// order's items were holding.
type ChangeKitchenStatusCommandHandler struct {
	uowFactory AssignmentUoWFactory
	recipes    ports.RecipeProvider
	publisher  ports.EventPublisher
	locks      *OrderLocks
}

// NewChangeKitchenStatusCommandHandler wires the handler to its unit of work
// factory, recipe source, publisher, and the shared per-order locks.
func NewChangeKitchenStatusCommandHandler(
	uowFactory AssignmentUoWFactory,
	recipes ports.RecipeProvider,
	publisher ports.EventPublisher,
	locks *OrderLocks,
) ChangeKitchenStatusCommandHandler {
	return ChangeKitchenStatusCommandHandler{
		uowFactory: uowFactory,
		recipes:    recipes,
		publisher:  publisher,
		locks:      locks,
	}
}

// Handle applies the transition. An illegal move is rejected with a
// TransitionError naming both states and nothing changes.
func (h ChangeKitchenStatusCommandHandler) Handle(ctx context.Context, cmd ChangeKitchenStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.KitchenOrderID().String())
	defer unlock()

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.KitchenOrderRepository()
	order, err := orderRepo.Get(ctx, cmd.KitchenOrderID())
	if err != nil {
		return err
	}

	startedNow := order.ActualStart() == nil && cmd.Target() == kitchenorder.StatusInPreparation

	if err := order.TransitionTo(cmd.Target(), cmd.Actor(), cmd.DelayEstimateMinutes(), now); err != nil {
		return err
	}

	if cmd.Target() == kitchenorder.StatusCancelled {
		if err := h.releaseStations(ctx, uow.StationRepository(), order); err != nil {
			return err
		}
	}

	if err := orderRepo.Update(ctx, order); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return h.publishTransition(ctx, order, startedNow, now)
}

// releaseStations returns the workload slots held by the order's items.
func (h ChangeKitchenStatusCommandHandler) releaseStations(
	ctx context.Context,
	stationRepo ports.StationRepository,
	order *kitchenorder.KitchenOrder,
) error {
	held := make(map[string]int)
	for _, item := range order.Items() {
		if sid := item.AssignedStationID(); sid != nil && item.Status() != kitchenorder.ItemStatusCompleted {
			held[sid.String()]++
		}
	}

	for _, stationID := range order.AssignedStationIDs() {
		count, ok := held[stationID.String()]
		if !ok {
			continue
		}

		s, err := stationRepo.Get(ctx, stationID)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := s.Release(); err != nil {
				break // already at zero; nothing left to give back
			}
		}
		if err := stationRepo.Update(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (h ChangeKitchenStatusCommandHandler) publishTransition(
	ctx context.Context,
	order *kitchenorder.KitchenOrder,
	startedNow bool,
	now time.Time,
) error {
	switch {
	case startedNow:
		if err := h.publisher.Publish(ctx, events.SubjectPreparationStarted, events.PreparationStarted{
			KitchenOrderID:   order.ID().String(),
			StartedAt:        now,
			CommercialStatus: string(order.Status().CommercialStatus()),
		}); err != nil {
			return err
		}
		return h.publishConsumption(ctx, order, now)

	case order.Status() == kitchenorder.StatusReadyForPickup:
		return h.publisher.Publish(ctx, events.SubjectPreparationCompleted, events.PreparationCompleted{
			KitchenOrderID:   order.ID().String(),
			CompletedAt:      now,
			CommercialStatus: string(order.Status().CommercialStatus()),
		})
	}
	return nil
}

// publishConsumption emits one IngredientConsumed fact per recipe ingredient,
// scaled by item quantity. The Inventory collaborator applies them; the core
// never decrements stock itself.
func (h ChangeKitchenStatusCommandHandler) publishConsumption(
	ctx context.Context,
	order *kitchenorder.KitchenOrder,
	now time.Time,
) error {
	consumed := make(map[string]*events.IngredientConsumed)

	for _, item := range order.Items() {
		rec, err := h.recipes.ResolveRecipe(ctx, item.RecipeID(), item.RecipeVersion())
		if err != nil {
			continue // missing recipe surfaces in the audit, not here
		}
		for _, ing := range rec.Ingredients {
			key := ing.ID.String()
			if consumed[key] == nil {
				consumed[key] = &events.IngredientConsumed{
					KitchenOrderID: order.ID().String(),
					IngredientID:   key,
					Unit:           ing.Unit,
					OccurredAt:     now,
				}
			}
			consumed[key].Quantity += ing.RequiredFor(item.Quantity())
		}
	}

	for _, fact := range consumed {
		if err := h.publisher.Publish(ctx, events.SubjectIngredientConsumed, *fact); err != nil {
			return err
		}
	}
	return nil
}
