package station

import (
	"fmt"

	"kitchen/internal/pkg/errs"
)

// Status represents the operational state of a preparation station.
// Unlike the kitchen order lifecycle this is not a strict state machine:
// operations staff move stations between states freely, with the single rule
// that maintenance and offline stations accept no assignments.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusActive means the station is working and has headroom.
	StatusActive

	// StatusBusy means every slot on the station is occupied.
	StatusBusy

	// StatusOverloaded is an operator-set flag indicating sustained saturation.
	StatusOverloaded

	// StatusMaintenance means the station is temporarily out of rotation.
	StatusMaintenance

	// StatusOffline means the station is shut down.
	StatusOffline
)

func statusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusActive:      "active",
		StatusBusy:        "busy",
		StatusOverloaded:  "overloaded",
		StatusMaintenance: "maintenance",
		StatusOffline:     "offline",
	}
}

// Validate checks that the status is a defined, non-unknown value.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("station status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("station status",
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
