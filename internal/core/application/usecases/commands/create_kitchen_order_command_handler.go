package commands

import (
	"context"
	"errors"
	"time"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
)

// CreateKitchenOrderCommandHandler turns a confirmed commercial order into a
// production contract and its kitchen order.
//
// The operation is idempotent by (orderID, version): a redelivered
// confirmation finds the already-generated contract and returns success
// without writing anything or republishing events. A bumped order version is
// a correction and mints a fresh contract under a new deterministic id.
type CreateKitchenOrderCommandHandler struct {
	uowFactory CreationUoWFactory
	generator  services.ContractGenerator
	publisher  ports.EventPublisher
}

// NewCreateKitchenOrderCommandHandler creates a handler wired to the given
// unit of work factory, contract generator, and event publisher.
func NewCreateKitchenOrderCommandHandler(
	uowFactory CreationUoWFactory,
	generator services.ContractGenerator,
	publisher ports.EventPublisher,
) CreateKitchenOrderCommandHandler {
	return CreateKitchenOrderCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		publisher:  publisher,
	}
}

// Handle processes the confirmation fact. Contract generation fails atomically
// when any pinned recipe cannot be resolved: nothing is persisted and no event
// is published, and the caller may retry safely.
func (h CreateKitchenOrderCommandHandler) Handle(ctx context.Context, cmd CreateKitchenOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	fact := cmd.Fact()
	orderID, err := kernel.UUIDFromString(fact.OrderID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	contractRepo := uow.ContractRepository()

	existing, err := contractRepo.GetByOrderAndVersion(ctx, orderID, fact.Version)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		// Redelivery: the contract exists, so the whole creation already
		// committed once. Nothing to do.
		return nil
	}

	c, err := h.generator.Generate(ctx, fact, now)
	if err != nil {
		return err
	}

	order, err := h.generator.DeriveKitchenOrder(ctx, c, now)
	if err != nil {
		return err
	}

	if err := contractRepo.Add(ctx, c); err != nil {
		return err
	}
	if err := uow.KitchenOrderRepository().Add(ctx, order); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return h.publishCreated(ctx, c, order, now)
}

func (h CreateKitchenOrderCommandHandler) publishCreated(
	ctx context.Context,
	c *contract.Contract,
	order *kitchenorder.KitchenOrder,
	now time.Time,
) error {
	items := make([]events.ContractItem, 0, c.ItemCount())
	for _, item := range c.Items() {
		items = append(items, events.ContractItem{
			ItemID:        item.ID().String(),
			RecipeID:      item.RecipeID().String(),
			RecipeVersion: item.RecipeVersion(),
			ProductID:     item.ProductID().String(),
			Quantity:      item.Quantity(),
			Modifications: item.Modifications(),
			Allergens:     item.Allergens(),
		})
	}

	if err := h.publisher.Publish(ctx, events.SubjectContractCreated, events.ProductionContractCreated{
		ContractID:          c.ID().String(),
		OrderID:             c.OrderID().String(),
		TenantID:            c.TenantID().String(),
		Version:             c.Version(),
		Priority:            string(c.Priority()),
		SpecialInstructions: c.SpecialInstructions(),
		EstimatedCompletion: c.EstimatedCompletion(),
		Items:               items,
		OccurredAt:          now,
	}); err != nil {
		return err
	}

	return h.publisher.Publish(ctx, events.SubjectKitchenOrderCreated, events.KitchenOrderCreated{
		KitchenOrderID:   order.ID().String(),
		ContractID:       c.ID().String(),
		TenantID:         c.TenantID().String(),
		CommercialStatus: string(order.Status().CommercialStatus()),
		OccurredAt:       now,
	})
}
