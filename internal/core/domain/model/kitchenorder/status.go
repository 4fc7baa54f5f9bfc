package kitchenorder

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// Status represents the lifecycle state of a kitchen order.
// It implements a state machine with a fixed transition table so orders follow
// the production workflow:
//
//	received ──> in_preparation ──> ready_for_plating ──> plated ──> ready_for_pickup
//	    │               │ ▲                │
//	    └──────────> on_hold <─────────────┘
//
// on_hold returns only to in_preparation; every non-terminal state may move to
// cancelled. ready_for_pickup and cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusReceived is the initial status when a kitchen order is created
	// from a production contract.
	StatusReceived

	// StatusInPreparation means stations are actively working the order.
	StatusInPreparation

	// StatusReadyForPlating means all items are cooked and await plating.
	StatusReadyForPlating

	// StatusPlated means the order is assembled and presentation-ready.
	StatusPlated

	// StatusReadyForPickup is the successful terminal state.
	StatusReadyForPickup

	// StatusOnHold pauses preparation; the only way forward is back into
	// in_preparation, so a held order always re-enters active preparation.
	StatusOnHold

	// StatusCancelled is the terminal failure state, reachable from any
	// non-terminal status.
	StatusCancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "unknown",
		StatusReceived:        "received",
		StatusInPreparation:   "in_preparation",
		StatusReadyForPlating: "ready_for_plating",
		StatusPlated:          "plated",
		StatusReadyForPickup:  "ready_for_pickup",
		StatusOnHold:          "on_hold",
		StatusCancelled:       "cancelled",
	}
}

// transitionTable is the single source of truth for allowed order transitions.
// Built once at package init and never mutated afterwards.
var transitionTable = map[Status][]Status{
	StatusReceived:        {StatusInPreparation, StatusOnHold, StatusCancelled},
	StatusInPreparation:   {StatusReadyForPlating, StatusOnHold, StatusCancelled},
	StatusReadyForPlating: {StatusPlated, StatusOnHold, StatusCancelled},
	StatusPlated:          {StatusReadyForPickup, StatusCancelled},
	StatusReadyForPickup:  {},
	StatusOnHold:          {StatusInPreparation, StatusCancelled},
	StatusCancelled:       {},
}

// TransitionError reports an illegal state-machine move, naming both the
// current and the attempted state. The order is left unchanged; the request is
// never coerced to the nearest legal state.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal kitchen order transition from %s to %s", e.From, e.To)
}

// Validate checks that the status is a defined, non-unknown value.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("kitchen status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kitchen status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("kitchen status",
		fmt.Errorf("%q is not a valid status", s))
}

// CanTransitionTo reports whether target is reachable from s in one step.
// Self-transitions are not in the table and therefore rejected.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitionTable[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo returns the new status, or a *TransitionError when the move is
// not in the transition table.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return StatusUnknown, err
	}
	if !s.CanTransitionTo(target) {
		return StatusUnknown, &TransitionError{From: s, To: target}
	}
	return target, nil
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitionTable[s]) == 0 && s != StatusUnknown
}

// CommercialStatus is the Ordering domain's status vocabulary, used only to
// annotate emitted events.
type CommercialStatus string

const (
	CommercialConfirmed CommercialStatus = "confirmed"
	CommercialPreparing CommercialStatus = "preparing"
	CommercialReady     CommercialStatus = "ready"
	CommercialCancelled CommercialStatus = "cancelled"
	CommercialUnknown   CommercialStatus = "unknown"
)

// CommercialStatus maps a kitchen status onto the commercial vocabulary for
// reporting. The mapping is one-way and lossy (several kitchen states collapse
// into one commercial state), so it deliberately has no inverse; unknown input
// maps to CommercialUnknown. It is never used to mutate the commercial order.
func (s Status) CommercialStatus() CommercialStatus {
	switch s {
	case StatusReceived:
		return CommercialConfirmed
	case StatusInPreparation, StatusOnHold, StatusReadyForPlating:
		return CommercialPreparing
	case StatusPlated, StatusReadyForPickup:
		return CommercialReady
	case StatusCancelled:
		return CommercialCancelled
	default:
		return CommercialUnknown
	}
}
