package station

import (
	"errors"
	"fmt"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

// Domain errors for station operations.
var (
	// ErrStationIsNotConstructed is returned when using an improperly initialized Station.
	ErrStationIsNotConstructed = errors.New("Station must be created via NewStation constructor")
	// ErrStationAtCapacity is returned when a reservation would push workload past capacity.
	ErrStationAtCapacity = errors.New("station is at capacity")
	// ErrStationNotAssignable is returned when reserving a station in maintenance or offline status.
	ErrStationNotAssignable = errors.New("station does not accept assignments in its current status")
	// ErrNothingToRelease is returned when releasing a station with zero workload.
	ErrNothingToRelease = errors.New("station workload is already zero")
)

// Type classifies a preparation station by the kind of work it performs.
// Recipes declare the Type they require; the assignment engine only considers
// stations of a matching Type.
type Type string

// Known station types.
const (
	TypeGrill    Type = "grill"
	TypeFry      Type = "fry"
	TypeSalad    Type = "salad"
	TypeDessert  Type = "dessert"
	TypeBeverage Type = "beverage"
	TypePrep     Type = "prep"
)

// Validate checks that the type is non-empty.
func (t Type) Validate() error {
	if t == "" {
		return errs.NewValueIsRequiredError("station type")
	}
	return nil
}

// Station represents a physical or logical work center in the kitchen.
// It is an aggregate root owning the one piece of shared mutable state in this
// core: the current workload counter. Reservations go through Reserve, which is
// a check-and-increment, so a station never silently exceeds its capacity.
//
// Business rules:
//   - Capacity must be positive; workload stays within [0, capacity]
//   - Stations in maintenance or offline status reject all reservations
//   - The version field supports optimistic concurrency at the persistence layer:
//     two concurrent reservations of the last open slot cannot both commit
type Station struct {
	id              kernel.UUID
	tenantID        kernel.UUID
	name            string
	stationType     Type
	capacity        int
	workload        int
	specializations []string
	equipment       []string
	staff           []string
	status          Status
	avgMinutes      int
	version         int
	guard           guard.ConstructorGuard
}

// NewStation creates an active, empty Station with the given attributes.
func NewStation(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	stationType Type,
	capacity int,
	specializations []string,
	equipment []string,
	staff []string,
	avgMinutes int,
) (*Station, error) {
	s := &Station{
		status:  StatusActive,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
		s.setName(name),
		s.setType(stationType),
		s.setCapacity(capacity),
		s.setAvgMinutes(avgMinutes),
	); err != nil {
		return nil, err
	}

	s.specializations = specializations
	s.equipment = equipment
	s.staff = staff
	return s, nil
}

// RestoreStation reconstructs a Station from persistence, including its current
// workload, status, and optimistic-lock version.
func RestoreStation(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	stationType Type,
	capacity int,
	workload int,
	specializations []string,
	equipment []string,
	staff []string,
	status Status,
	avgMinutes int,
	version int,
) (*Station, error) {
	s := &Station{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenantID(tenantID),
		s.setName(name),
		s.setType(stationType),
		s.setCapacity(capacity),
		s.setAvgMinutes(avgMinutes),
		s.setStatus(status),
		s.setVersion(version),
	); err != nil {
		return nil, err
	}

	if workload < 0 || workload > capacity {
		return nil, errs.NewValueIsOutOfRangeError("workload", workload, 0, capacity)
	}

	s.workload = workload
	s.specializations = specializations
	s.equipment = equipment
	s.staff = staff
	return s, nil
}

// Validate ensures the Station was constructed through NewStation or RestoreStation.
func (s *Station) Validate() error {
	if s == nil {
		return ErrStationIsNotConstructed
	}
	return s.guard.Validate(ErrStationIsNotConstructed)
}

// IsEqual compares two stations by identity.
func (s *Station) IsEqual(other *Station) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Station) ID() kernel.UUID            { return s.id }
func (s *Station) TenantID() kernel.UUID      { return s.tenantID }
func (s *Station) Name() string               { return s.name }
func (s *Station) StationType() Type          { return s.stationType }
func (s *Station) Capacity() int              { return s.capacity }
func (s *Station) Workload() int              { return s.workload }
func (s *Station) Specializations() []string  { return s.specializations }
func (s *Station) Equipment() []string        { return s.equipment }
func (s *Station) Staff() []string            { return s.staff }
func (s *Station) Status() Status             { return s.status }
func (s *Station) AvgProcessingMinutes() int  { return s.avgMinutes }
func (s *Station) Version() int               { return s.version }

// Headroom returns how many more items the station can take right now.
func (s *Station) Headroom() int {
	return s.capacity - s.workload
}

// Utilization returns workload as a fraction of capacity in [0, 1].
func (s *Station) Utilization() float64 {
	return float64(s.workload) / float64(s.capacity)
}

// IsAssignable reports whether the station accepts new work at all.
// Maintenance and offline stations reject every assignment.
func (s *Station) IsAssignable() bool {
	return s.status != StatusMaintenance && s.status != StatusOffline
}

// HasSpecialization reports whether the station declares the given skill tag.
func (s *Station) HasSpecialization(skill string) bool {
	for _, sp := range s.specializations {
		if sp == skill {
			return true
		}
	}
	return false
}

// HasEquipment reports whether the station carries the given equipment.
func (s *Station) HasEquipment(item string) bool {
	for _, e := range s.equipment {
		if e == item {
			return true
		}
	}
	return false
}

// EstimatedWaitMinutes estimates how long a new item would wait before work on
// it starts, based on queued workload and the station's average processing time.
func (s *Station) EstimatedWaitMinutes() int {
	return s.workload * s.avgMinutes
}

// Reserve increments the workload counter, checking headroom first.
// It never pushes workload past capacity: at-capacity reservations fail with
// ErrStationAtCapacity and non-assignable stations fail with
// ErrStationNotAssignable, leaving the station unchanged.
func (s *Station) Reserve() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.IsAssignable() {
		return fmt.Errorf("%w: %s", ErrStationNotAssignable, s.status)
	}
	if s.Headroom() <= 0 {
		return fmt.Errorf("%w: capacity %d", ErrStationAtCapacity, s.capacity)
	}

	s.workload++
	if s.Headroom() == 0 && s.status == StatusActive {
		s.status = StatusBusy
	}
	return nil
}

// Release decrements the workload counter when an item finishes or is cancelled.
func (s *Station) Release() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.workload == 0 {
		return ErrNothingToRelease
	}

	s.workload--
	if s.status == StatusBusy && s.Headroom() > 0 {
		s.status = StatusActive
	}
	return nil
}

func (s *Station) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Station) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	s.tenantID = id
	return nil
}

func (s *Station) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

func (s *Station) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.stationType = t
	return nil
}

func (s *Station) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%d is not greater than 0", capacity))
	}
	s.capacity = capacity
	return nil
}

func (s *Station) setAvgMinutes(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("avgProcessingMinutes",
			fmt.Errorf("%d is negative", minutes))
	}
	s.avgMinutes = minutes
	return nil
}

func (s *Station) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Station) setVersion(version int) error {
	if version <= 0 {
		return errs.NewVersionIsInvalidError("station version",
			fmt.Errorf("%d is not greater than 0", version))
	}
	s.version = version
	return nil
}
