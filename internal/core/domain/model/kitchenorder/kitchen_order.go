package kitchenorder

import (
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

// Domain errors for kitchen order operations.
var (
	// ErrKitchenOrderIsNotConstructed is returned when using an improperly initialized KitchenOrder.
	ErrKitchenOrderIsNotConstructed = errors.New("KitchenOrder must be created via NewKitchenOrder constructor")
	// ErrItemNotFound is returned when an item id does not belong to the order.
	ErrItemNotFound = errors.New("item not found in kitchen order")
	// ErrItemCountMismatch is returned when the derived items do not cover the contract 1:1.
	ErrItemCountMismatch = errors.New("kitchen order items must match contract items one to one")
	// ErrOrderIsTerminal is returned when mutating an order in a terminal status.
	ErrOrderIsTerminal = errors.New("kitchen order is in a terminal status")
)

// KitchenOrder is the mutable, stateful production unit derived 1:1 from a
// Production Contract. It is the aggregate root for the preparation lifecycle:
// all order- and item-level transitions go through it, every transition is
// checked against the fixed tables, and every applied transition is appended
// to the status log.
type KitchenOrder struct {
	id                  kernel.UUID
	contractID          kernel.UUID
	tenantID            kernel.UUID
	orderID             kernel.UUID
	items               []*Item
	status              Status
	priority            contract.Priority
	allergenAlerts      []string
	estimatedStart      time.Time
	estimatedCompletion time.Time
	actualStart         *time.Time
	actualCompletion    *time.Time
	statusLog           []StatusChange
	guard               guard.ConstructorGuard
}

// NewKitchenOrder derives a kitchen order from a production contract.
// The supplied items must trace 1:1 to the contract's production items:
// same count and every production item covered exactly once.
func NewKitchenOrder(id kernel.UUID, c *contract.Contract, items []*Item, now time.Time) (*KitchenOrder, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ko := &KitchenOrder{
		status: StatusReceived,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ko.setID(id),
		ko.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := checkTraceability(c, items); err != nil {
		return nil, err
	}

	ko.contractID = c.ID()
	ko.tenantID = c.TenantID()
	ko.orderID = c.OrderID()
	ko.priority = c.Priority()
	ko.allergenAlerts = collectAllergens(items)
	ko.estimatedStart = now
	ko.estimatedCompletion = c.EstimatedCompletion()
	return ko, nil
}

// RestoreKitchenOrder reconstructs a KitchenOrder from persistence.
// Traceability against the contract was enforced at creation time and is not
// re-checked here; the consistency validator re-verifies it during audits.
func RestoreKitchenOrder(
	id kernel.UUID,
	contractID kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	items []*Item,
	status Status,
	priority contract.Priority,
	estimatedStart time.Time,
	estimatedCompletion time.Time,
	actualStart *time.Time,
	actualCompletion *time.Time,
	statusLog []StatusChange,
) (*KitchenOrder, error) {
	ko := &KitchenOrder{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ko.setID(id),
		ko.setItems(items),
		status.Validate(),
		priority.Validate(),
		contractID.Validate(),
		tenantID.Validate(),
		orderID.Validate(),
	); err != nil {
		return nil, err
	}

	ko.contractID = contractID
	ko.tenantID = tenantID
	ko.orderID = orderID
	ko.status = status
	ko.priority = priority
	ko.allergenAlerts = collectAllergens(items)
	ko.estimatedStart = estimatedStart
	ko.estimatedCompletion = estimatedCompletion
	ko.actualStart = actualStart
	ko.actualCompletion = actualCompletion
	ko.statusLog = statusLog
	return ko, nil
}

// Validate ensures the KitchenOrder was created through a constructor.
func (ko *KitchenOrder) Validate() error {
	if ko == nil {
		return ErrKitchenOrderIsNotConstructed
	}
	return ko.guard.Validate(ErrKitchenOrderIsNotConstructed)
}

// IsEqual compares two kitchen orders by identity.
func (ko *KitchenOrder) IsEqual(other *KitchenOrder) bool {
	return other != nil && ko.id.IsEqual(other.id)
}

func (ko *KitchenOrder) ID() kernel.UUID                { return ko.id }
func (ko *KitchenOrder) ContractID() kernel.UUID        { return ko.contractID }
func (ko *KitchenOrder) TenantID() kernel.UUID          { return ko.tenantID }
func (ko *KitchenOrder) OrderID() kernel.UUID           { return ko.orderID }
func (ko *KitchenOrder) Status() Status                 { return ko.status }
func (ko *KitchenOrder) Priority() contract.Priority    { return ko.priority }
func (ko *KitchenOrder) AllergenAlerts() []string       { return ko.allergenAlerts }
func (ko *KitchenOrder) EstimatedStart() time.Time      { return ko.estimatedStart }
func (ko *KitchenOrder) EstimatedCompletion() time.Time { return ko.estimatedCompletion }
func (ko *KitchenOrder) ActualStart() *time.Time        { return ko.actualStart }
func (ko *KitchenOrder) ActualCompletion() *time.Time   { return ko.actualCompletion }

// Items returns the order's items. The slice is shared; callers mutate items
// only through the aggregate's methods.
func (ko *KitchenOrder) Items() []*Item {
	return ko.items
}

// Item returns the item with the given id, or ErrItemNotFound.
func (ko *KitchenOrder) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range ko.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// PendingItems returns the items still awaiting a station assignment.
func (ko *KitchenOrder) PendingItems() []*Item {
	var pending []*Item
	for _, item := range ko.items {
		if item.Status() == ItemStatusPending {
			pending = append(pending, item)
		}
	}
	return pending
}

// StatusLog returns a copy of the append-only transition log.
func (ko *KitchenOrder) StatusLog() []StatusChange {
	log := make([]StatusChange, len(ko.statusLog))
	copy(log, ko.statusLog)
	return log
}

// IsTerminal reports whether the order reached ready_for_pickup or cancelled.
func (ko *KitchenOrder) IsTerminal() bool {
	return ko.status.IsTerminal()
}

// TransitionTo applies an order-level transition. Illegal moves are rejected
// with a *TransitionError and leave the order unchanged. Applied transitions
// are appended to the status log; entering in_preparation stamps the actual
// start (first time only) and reaching ready_for_pickup stamps the actual
// completion.
func (ko *KitchenOrder) TransitionTo(target Status, actor string, delayEstimateMinutes *int, now time.Time) error {
	if err := ko.Validate(); err != nil {
		return err
	}

	newStatus, err := ko.status.TransitionTo(target)
	if err != nil {
		return err
	}

	previous := ko.status
	ko.status = newStatus
	ko.statusLog = append(ko.statusLog, StatusChange{
		From:                 previous,
		To:                   newStatus,
		Actor:                actor,
		At:                   now,
		DelayEstimateMinutes: delayEstimateMinutes,
	})

	switch newStatus {
	case StatusInPreparation:
		if ko.actualStart == nil {
			start := now
			ko.actualStart = &start
		}
	case StatusReadyForPickup:
		completion := now
		ko.actualCompletion = &completion
	}
	return nil
}

// AssignItem records an accepted station assignment on one item.
// The order must not be terminal: cancellation invalidates every pending
// suggestion, so accepting one against a cancelled order fails here.
func (ko *KitchenOrder) AssignItem(itemID kernel.UUID, stationID kernel.UUID) error {
	if err := ko.Validate(); err != nil {
		return err
	}
	if ko.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsTerminal, ko.status)
	}
	if !ko.status.AllowsItemStatus(ItemStatusAssigned) {
		return &ItemTransitionError{ItemID: itemID.String(), From: ItemStatusPending, To: ItemStatusAssigned}
	}

	item, err := ko.Item(itemID)
	if err != nil {
		return err
	}
	return item.Assign(stationID)
}

// ChangeItemStatus applies an item-level transition, enforcing both the item
// table and consistency with the parent order's status. When an item reaches
// ready, its actual preparation duration is stamped, measured from the order's
// actual start.
func (ko *KitchenOrder) ChangeItemStatus(itemID kernel.UUID, target ItemStatus, now time.Time) error {
	if err := ko.Validate(); err != nil {
		return err
	}
	if ko.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsTerminal, ko.status)
	}

	item, err := ko.Item(itemID)
	if err != nil {
		return err
	}

	if !ko.status.AllowsItemStatus(target) {
		return &ItemTransitionError{ItemID: itemID.String(), From: item.Status(), To: target}
	}
	if err := item.ChangeStatus(target); err != nil {
		return err
	}

	if target == ItemStatusReady && ko.actualStart != nil {
		minutes := int(now.Sub(*ko.actualStart) / time.Minute)
		if minutes >= 0 {
			if err := item.RecordActualMinutes(minutes); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssignedStationIDs returns the distinct stations currently holding the
// order's items, used to release workload on cancellation or completion.
func (ko *KitchenOrder) AssignedStationIDs() []kernel.UUID {
	seen := make(map[string]bool)
	var ids []kernel.UUID
	for _, item := range ko.items {
		if sid := item.AssignedStationID(); sid != nil && !seen[sid.String()] {
			seen[sid.String()] = true
			ids = append(ids, *sid)
		}
	}
	return ids
}

func (ko *KitchenOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	ko.id = id
	return nil
}

func (ko *KitchenOrder) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	ko.items = items
	return nil
}

// checkTraceability verifies the 1:1 mapping between kitchen order items and
// the contract's production items.
func checkTraceability(c *contract.Contract, items []*Item) error {
	if len(items) != c.ItemCount() {
		return fmt.Errorf("%w: contract has %d items, kitchen order has %d",
			ErrItemCountMismatch, c.ItemCount(), len(items))
	}

	covered := make(map[string]bool, len(items))
	for _, item := range items {
		covered[item.ProductionItemID().String()] = true
	}
	for _, ci := range c.Items() {
		if !covered[ci.ID().String()] {
			return fmt.Errorf("%w: production item %s is not covered",
				ErrItemCountMismatch, ci.ID())
		}
	}
	return nil
}

func collectAllergens(items []*Item) []string {
	seen := make(map[string]bool)
	var allergens []string
	for _, item := range items {
		for _, a := range item.Allergens() {
			if !seen[a] {
				seen[a] = true
				allergens = append(allergens, a)
			}
		}
	}
	return allergens
}
