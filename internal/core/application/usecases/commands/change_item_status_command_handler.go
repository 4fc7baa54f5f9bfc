package commands

import (
	"context"
	"time"
)

// ChangeItemStatusCommandHandler applies item-level transitions inside one
// kitchen order.
type ChangeItemStatusCommandHandler struct {
	uowFactory KitchenOrderUoWFactory
	locks      *OrderLocks
}

// NewChangeItemStatusCommandHandler creates a handler over the kitchen-order
// unit of work.
func NewChangeItemStatusCommandHandler(uowFactory KitchenOrderUoWFactory, locks *OrderLocks) ChangeItemStatusCommandHandler {
	return ChangeItemStatusCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle applies the item transition. Illegal moves, items foreign to the
// order, and transitions inconsistent with the parent status are all rejected
// by the aggregate and nothing is persisted.
func (h ChangeItemStatusCommandHandler) Handle(ctx context.Context, cmd ChangeItemStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.KitchenOrderID().String())
	defer unlock()

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

	if err := order.ChangeItemStatus(cmd.ItemID(), cmd.Target(), time.Now().UTC()); err != nil {
		return err
	}

	if err := orderRepo.Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
