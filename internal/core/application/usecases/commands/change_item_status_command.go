package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var ErrChangeItemStatusCommandIsNotConstructed = errors.New(
	"ChangeItemStatusCommand must be created via NewChangeItemStatusCommand constructor",
)

// ChangeItemStatusCommand requests an item-level transition, checked against
// both the item table and the parent order's status.
type ChangeItemStatusCommand struct { //nolint:recvcheck //using for validation
	kitchenOrderID kernel.UUID
	itemID         kernel.UUID
	target         kitchenorder.ItemStatus

	guard guard.ConstructorGuard
}

// NewChangeItemStatusCommand creates a validated item transition request.
func NewChangeItemStatusCommand(
	kitchenOrderID kernel.UUID,
	itemID kernel.UUID,
	target kitchenorder.ItemStatus,
) (ChangeItemStatusCommand, error) {
	cmd := ChangeItemStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKitchenOrderID(kitchenOrderID),
		cmd.setItemID(itemID),
		cmd.setTarget(target),
	); err != nil {
		return ChangeItemStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeItemStatusCommandIsNotConstructed)
}

// KitchenOrderID returns the parent order.
func (c ChangeItemStatusCommand) KitchenOrderID() kernel.UUID { return c.kitchenOrderID }

// ItemID returns the item to transition.
func (c ChangeItemStatusCommand) ItemID() kernel.UUID { return c.itemID }

// Target returns the requested item status.
func (c ChangeItemStatusCommand) Target() kitchenorder.ItemStatus { return c.target }

func (c *ChangeItemStatusCommand) setKitchenOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("kitchenOrderID", err)
	}
	c.kitchenOrderID = id
	return nil
}

func (c *ChangeItemStatusCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemID", err)
	}
	c.itemID = id
	return nil
}

func (c *ChangeItemStatusCommand) setTarget(target kitchenorder.ItemStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
