// Package ports defines the persistence and messaging contracts between the
// kitchen core and its infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"kitchen/internal/core/domain/model/contract"
	"kitchen/internal/core/domain/model/kernel"
)

// ContractRepository defines the persistence contract for production contracts.
// Contracts are immutable, so there is no Update: a correction is a new
// contract under a new id.
type ContractRepository interface {
	// Add persists a new contract. The contract must be valid and not already
	// exist in the repository.
	Add(ctx context.Context, aggregate *contract.Contract) error

	// Get retrieves a contract by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*contract.Contract, error)

	// GetByOrderAndVersion retrieves the contract generated for one
	// (orderID, version) pair, if any. This is the idempotency lookup used by
	// contract generation: redelivered confirmation events find the existing
	// contract here instead of minting a duplicate.
	GetByOrderAndVersion(ctx context.Context, orderID kernel.UUID, version int) (*contract.Contract, error)
}
