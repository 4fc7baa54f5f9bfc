package commands

import (
	"errors"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/pkg/guard"
)

var (
	ErrCreateKitchenOrderCommandIsNotConstructed = errors.New(
		"CreateKitchenOrderCommand must be created via NewCreateKitchenOrderCommand constructor",
	)
	ErrOrderIDIsRequired  = errors.New("order id is required")
	ErrTenantIDIsRequired = errors.New("tenant id is required")
	ErrOrderVersionIsInvalid = errors.New("order version must be greater than 0")
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// CreateKitchenOrderCommand carries a confirmed commercial order into the
// kitchen: it requests contract generation and derivation of the kitchen
// order that will track preparation.
type CreateKitchenOrderCommand struct { //nolint:recvcheck //using for validation
	fact events.OrderConfirmed

	guard guard.ConstructorGuard
}

// NewCreateKitchenOrderCommand creates the command from a confirmation fact.
// Validates that the fact identifies an order and tenant, carries a positive
// version, and has at least one line.
func NewCreateKitchenOrderCommand(fact events.OrderConfirmed) (CreateKitchenOrderCommand, error) {
	cmd := CreateKitchenOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFact(fact),
	); err != nil {
		return CreateKitchenOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateKitchenOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateKitchenOrderCommandIsNotConstructed)
}

// Fact returns the confirmation fact this command was built from.
func (c CreateKitchenOrderCommand) Fact() events.OrderConfirmed {
	return c.fact
}

func (c *CreateKitchenOrderCommand) setFact(fact events.OrderConfirmed) error {
	var errList []error
	if fact.OrderID == "" {
		errList = append(errList, ErrOrderIDIsRequired)
	}
	if fact.TenantID == "" {
		errList = append(errList, ErrTenantIDIsRequired)
	}
	if fact.Version <= 0 {
		errList = append(errList, ErrOrderVersionIsInvalid)
	}
	if len(fact.Lines) == 0 {
		errList = append(errList, ErrOrderLinesAreRequired)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.fact = fact
	return nil
}
