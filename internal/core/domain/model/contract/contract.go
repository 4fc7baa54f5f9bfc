// Package contract defines the Production Contract: the immutable, kitchen-only
// translation of a confirmed commercial order. The contract is the formal
// boundary between the commercial and production domains: it carries the
// source order id for traceability only, and nothing in this core ever
// dereferences it to mutate commercial state.
package contract

import (
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

// ErrContractIsNotConstructed is returned when using an improperly initialized Contract.
var ErrContractIsNotConstructed = errors.New("Contract must be created via NewContract constructor")

// Contract is an immutable production order expressed entirely in kitchen
// vocabulary. Once created it is never edited: a correction produces a new
// contract with a new id and a bumped version, and the old one is retired.
//
// Invariants:
//   - At least one production item
//   - Version is positive
//   - Item recipe versions are pinned at creation, so later recipe edits do
//     not retroactively change in-flight work
type Contract struct {
	id                  kernel.UUID
	tenantID            kernel.UUID
	orderID             kernel.UUID
	items               []Item
	priority            Priority
	specialInstructions string
	estimatedCompletion time.Time
	createdAt           time.Time
	version             int
	guard               guard.ConstructorGuard
}

// NewContract creates a validated, immutable Contract.
func NewContract(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	items []Item,
	priority Priority,
	specialInstructions string,
	estimatedCompletion time.Time,
	createdAt time.Time,
	version int,
) (*Contract, error) {
	c := &Contract{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setTenantID(tenantID),
		c.setOrderID(orderID),
		c.setItems(items),
		c.setPriority(priority),
		c.setVersion(version),
	); err != nil {
		return nil, err
	}

	c.specialInstructions = specialInstructions
	c.estimatedCompletion = estimatedCompletion
	c.createdAt = createdAt
	return c, nil
}

// RestoreContract reconstructs a Contract from persistence. Because contracts
// are immutable the rules are identical to NewContract.
func RestoreContract(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	items []Item,
	priority Priority,
	specialInstructions string,
	estimatedCompletion time.Time,
	createdAt time.Time,
	version int,
) (*Contract, error) {
	return NewContract(id, tenantID, orderID, items, priority,
		specialInstructions, estimatedCompletion, createdAt, version)
}

// Validate ensures the Contract was created through its constructor.
func (c *Contract) Validate() error {
	if c == nil {
		return ErrContractIsNotConstructed
	}
	return c.guard.Validate(ErrContractIsNotConstructed)
}

// IsEqual compares two contracts by identity.
func (c *Contract) IsEqual(other *Contract) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Contract) ID() kernel.UUID                { return c.id }
func (c *Contract) TenantID() kernel.UUID          { return c.tenantID }
func (c *Contract) OrderID() kernel.UUID           { return c.orderID }
func (c *Contract) Priority() Priority             { return c.priority }
func (c *Contract) SpecialInstructions() string    { return c.specialInstructions }
func (c *Contract) EstimatedCompletion() time.Time { return c.estimatedCompletion }
func (c *Contract) CreatedAt() time.Time           { return c.createdAt }
func (c *Contract) Version() int                   { return c.version }

// Items returns a copy of the production items, preserving immutability.
func (c *Contract) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// ItemCount returns the number of production items.
func (c *Contract) ItemCount() int {
	return len(c.items)
}

func (c *Contract) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Contract) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	c.tenantID = id
	return nil
}

func (c *Contract) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *Contract) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	c.items = make([]Item, len(items))
	copy(c.items, items)
	return nil
}

func (c *Contract) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	c.priority = priority
	return nil
}

func (c *Contract) setVersion(version int) error {
	if version <= 0 {
		return errs.NewVersionIsInvalidError("contract version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	c.version = version
	return nil
}
