package contract

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// Priority orders production work. It is derived from the commercial order's
// declared priority at contract generation, defaulting to medium when the
// order does not declare one.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority maps a commercial priority hint onto a Priority,
// falling back to medium for empty or unrecognized values.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// Validate checks that the priority is one of the defined tiers.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%q is not a valid priority", string(p)))
	}
}

// Rank returns a sortable weight; higher means more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}
