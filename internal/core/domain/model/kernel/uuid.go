package kernel

import (
	"fmt"

	"kitchen/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through
// one of the constructor functions. This error is returned when validating a
// zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, NewDeterministicUUID, UUIDFromString, or UUIDFromBytes")

// productionNamespace is the fixed namespace for name-based identifiers.
// Changing it would change every deterministic id ever minted, so it never changes.
var productionNamespace = uuid.MustParse("8f0c2f41-33a1-4f27-9e52-6d4a1fb0c9d7")

// UUID is a value object that represents a universally unique identifier.
// It wraps the github.com/google/uuid implementation to provide domain-specific
// behavior and ensure immutability. The zero value is invalid; use one of the
// constructor functions.
//
// UUID is immutable and thread-safe, making it suitable for concurrent use as
// the identity of entities and aggregates.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
// This is the primary way to create identifiers for new entities.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// NewDeterministicUUID derives a name-based UUID (version 5) from the given name
// within the production namespace. The same name always yields the same UUID,
// which is what makes contract generation idempotent: generating twice from the
// same (orderID, version) key produces the same contract identity.
//
// Example:
//
//	id := kernel.NewDeterministicUUID(fmt.Sprintf("contract/%s/%s/%d", tenantID, orderID, version))
func NewDeterministicUUID(name string) UUID {
	return UUID{
		id: uuid.NewSHA1(productionNamespace, []byte(name)),
	}
}

// UUIDFromString parses a UUID from its string representation.
// Returns an error if the string is not a valid UUID format. This function is
// typically used when reconstructing entities from persistence or when parsing
// identifiers received from external systems.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice, validating the result.
// Useful when identifiers are stored as binary data in databases.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the standard "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" representation.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value for integration with adapters.
// Direct access should stay at the persistence boundary to preserve encapsulation.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate checks that the UUID was created through a constructor.
// Returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
