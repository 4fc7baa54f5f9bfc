package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, keeping concurrent
// operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents one business transaction boundary.
// Client code manages the transaction lifecycle explicitly.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// successful commit.
	Rollback(ctx context.Context) error

	// ContractRepository returns a ContractRepository bound to the current transaction.
	ContractRepository() ContractRepository

	// KitchenOrderRepository returns a KitchenOrderRepository bound to the current transaction.
	KitchenOrderRepository() KitchenOrderRepository

	// StationRepository returns a StationRepository bound to the current transaction.
	StationRepository() StationRepository
}
