package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand accepts one advisory assignment suggestion:
// it asks the kitchen to commit the given item onto the given station.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	kitchenOrderID kernel.UUID
	itemID         kernel.UUID
	stationID      kernel.UUID
	actor          string

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a validated acceptance command.
// The actor identifies who accepted the suggestion for the status log.
func NewAcceptAssignmentCommand(kitchenOrderID, itemID, stationID kernel.UUID, actor string) (AcceptAssignmentCommand, error) {
	cmd := AcceptAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKitchenOrderID(kitchenOrderID),
		cmd.setItemID(itemID),
		cmd.setStationID(stationID),
		cmd.setActor(actor),
	); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// KitchenOrderID returns the order whose item is being assigned.
func (c AcceptAssignmentCommand) KitchenOrderID() kernel.UUID { return c.kitchenOrderID }

// ItemID returns the item being assigned.
func (c AcceptAssignmentCommand) ItemID() kernel.UUID { return c.itemID }

// StationID returns the accepting station.
func (c AcceptAssignmentCommand) StationID() kernel.UUID { return c.stationID }

// Actor returns who accepted the suggestion.
func (c AcceptAssignmentCommand) Actor() string { return c.actor }

func (c *AcceptAssignmentCommand) setKitchenOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("kitchenOrderID", err)
	}
	c.kitchenOrderID = id
	return nil
}

func (c *AcceptAssignmentCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("itemID", err)
	}
	c.itemID = id
	return nil
}

func (c *AcceptAssignmentCommand) setStationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("stationID", err)
	}
	c.stationID = id
	return nil
}

func (c *AcceptAssignmentCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = actor
	return nil
}
