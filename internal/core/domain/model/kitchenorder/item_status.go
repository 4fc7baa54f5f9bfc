package kitchenorder

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// ItemStatus tracks the preparation state of one kitchen order item. Item
// states move independently but must stay consistent with the parent order's
// status (see AllowsItemStatus).
type ItemStatus int

const (
	// ItemStatusUnknown represents an invalid or undefined item status.
	ItemStatusUnknown ItemStatus = iota

	// ItemStatusPending means the item awaits a station assignment.
	ItemStatusPending

	// ItemStatusAssigned means a station assignment was accepted for the item.
	ItemStatusAssigned

	// ItemStatusInProgress means the station is actively preparing the item.
	ItemStatusInProgress

	// ItemStatusReady means preparation finished and the item awaits plating.
	ItemStatusReady

	// ItemStatusCompleted is the item's terminal state.
	ItemStatusCompleted

	// ItemStatusOnHold pauses work on the item.
	ItemStatusOnHold
)

func itemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemStatusUnknown:    "unknown",
		ItemStatusPending:    "pending",
		ItemStatusAssigned:   "assigned",
		ItemStatusInProgress: "in_progress",
		ItemStatusReady:      "ready",
		ItemStatusCompleted:  "completed",
		ItemStatusOnHold:     "on_hold",
	}
}

// itemTransitionTable mirrors transitionTable at the item level.
// Unassigning (assigned → pending) is allowed so a rejected or reconsidered
// suggestion can put the item back into the pool.
var itemTransitionTable = map[ItemStatus][]ItemStatus{
	ItemStatusPending:    {ItemStatusAssigned, ItemStatusOnHold},
	ItemStatusAssigned:   {ItemStatusInProgress, ItemStatusPending, ItemStatusOnHold},
	ItemStatusInProgress: {ItemStatusReady, ItemStatusOnHold},
	ItemStatusReady:      {ItemStatusCompleted},
	ItemStatusCompleted:  {},
	ItemStatusOnHold:     {ItemStatusPending, ItemStatusAssigned},
}

// ItemTransitionError reports an illegal item-level move with both states named.
type ItemTransitionError struct {
	ItemID string
	From   ItemStatus
	To     ItemStatus
}

func (e *ItemTransitionError) Error() string {
	return fmt.Sprintf("illegal item transition from %s to %s for item %s", e.From, e.To, e.ItemID)
}

// Validate checks that the item status is a defined, non-unknown value.
func (s ItemStatus) Validate() error {
	if s == ItemStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("item status",
			fmt.Errorf("%d is not a valid item status", s))
	}
	if _, ok := itemStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("item status",
			fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (s ItemStatus) String() string {
	if str, ok := itemStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ItemStatusFromString parses the wire representation of an item status.
func ItemStatusFromString(s string) (ItemStatus, error) {
	for status, str := range itemStatusStrings() {
		if str == s && status != ItemStatusUnknown {
			return status, nil
		}
	}
	return ItemStatusUnknown, errs.NewValueIsInvalidErrorWithCause("item status",
		fmt.Errorf("%q is not a valid item status", s))
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s ItemStatus) CanTransitionTo(target ItemStatus) bool {
	for _, allowed := range itemTransitionTable[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further item transitions are possible.
func (s ItemStatus) IsTerminal() bool {
	return len(itemTransitionTable[s]) == 0 && s != ItemStatusUnknown
}

// AllowsItemStatus reports whether an item in the given status is consistent
// with an order in status s. For example, no item may be completed while the
// order is still received, and once the order is ready for pickup every item
// must be completed. A cancelled order freezes items in whatever state they
// were in.
func (s Status) AllowsItemStatus(item ItemStatus) bool {
	switch s {
	case StatusReceived:
		return item == ItemStatusPending || item == ItemStatusAssigned || item == ItemStatusOnHold
	case StatusInPreparation:
		return item != ItemStatusUnknown
	case StatusReadyForPlating, StatusPlated:
		return item == ItemStatusReady || item == ItemStatusCompleted
	case StatusReadyForPickup:
		return item == ItemStatusCompleted
	case StatusOnHold:
		return item == ItemStatusPending || item == ItemStatusAssigned || item == ItemStatusOnHold
	case StatusCancelled:
		return item != ItemStatusUnknown
	default:
		return false
	}
}
