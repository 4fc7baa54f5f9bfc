package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var ErrChangeKitchenStatusCommandIsNotConstructed = errors.New(
	"ChangeKitchenStatusCommand must be created via NewChangeKitchenStatusCommand constructor",
)

// ChangeKitchenStatusCommand requests an order-level transition through the
// kitchen state machine. An optional delay estimate accompanies holds.
type ChangeKitchenStatusCommand struct { //nolint:recvcheck //using for validation
	kitchenOrderID       kernel.UUID
	target               kitchenorder.Status
	actor                string
	delayEstimateMinutes *int

	guard guard.ConstructorGuard
}

// NewChangeKitchenStatusCommand creates a validated transition request.
func NewChangeKitchenStatusCommand(
	kitchenOrderID kernel.UUID,
	target kitchenorder.Status,
	actor string,
	delayEstimateMinutes *int,
) (ChangeKitchenStatusCommand, error) {
	cmd := ChangeKitchenStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setKitchenOrderID(kitchenOrderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return ChangeKitchenStatusCommand{}, err
	}

	cmd.delayEstimateMinutes = delayEstimateMinutes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeKitchenStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeKitchenStatusCommandIsNotConstructed)
}

// KitchenOrderID returns the order to transition.
func (c ChangeKitchenStatusCommand) KitchenOrderID() kernel.UUID { return c.kitchenOrderID }

// Target returns the requested status.
func (c ChangeKitchenStatusCommand) Target() kitchenorder.Status { return c.target }

// Actor returns who requested the transition.
func (c ChangeKitchenStatusCommand) Actor() string { return c.actor }

// DelayEstimateMinutes returns the optional delay estimate for holds.
func (c ChangeKitchenStatusCommand) DelayEstimateMinutes() *int { return c.delayEstimateMinutes }

func (c *ChangeKitchenStatusCommand) setKitchenOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("kitchenOrderID", err)
	}
	c.kitchenOrderID = id
	return nil
}

func (c *ChangeKitchenStatusCommand) setTarget(target kitchenorder.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ChangeKitchenStatusCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = actor
	return nil
}
