// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence.
package commands

import (
	"context"

	"kitchen/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the narrowest UoW covering the aggregates it
// touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ContractRepoFactory provides access to the contract repository within a transaction.
	ContractRepoFactory interface {
		ContractRepository() ports.ContractRepository
	}

	// KitchenOrderRepoFactory provides access to the kitchen order repository within a transaction.
	KitchenOrderRepoFactory interface {
		KitchenOrderRepository() ports.KitchenOrderRepository
	}

	// StationRepoFactory provides access to the station repository within a transaction.
	StationRepoFactory interface {
		StationRepository() ports.StationRepository
	}

	// CreationUoW manages transactions spanning contract and kitchen order
	// creation, which always commit together.
	CreationUoW interface {
		TxManager
		ContractRepoFactory
		KitchenOrderRepoFactory
	}

	// CreationUoWFactory creates new creation unit of work instances.
	CreationUoWFactory interface {
		Create() CreationUoW
	}

	// KitchenOrderUoW manages transactions for operations touching only the
	// kitchen order aggregate.
	KitchenOrderUoW interface {
		TxManager
		KitchenOrderRepoFactory
	}

	// KitchenOrderUoWFactory creates new kitchen-order unit of work instances.
	KitchenOrderUoWFactory interface {
		Create() KitchenOrderUoW
	}

	// AssignmentUoW manages transactions coordinating kitchen orders with
	// station workload, such as accepting an assignment or releasing stations
	// on cancellation.
	AssignmentUoW interface {
		TxManager
		KitchenOrderRepoFactory
		StationRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}
)
