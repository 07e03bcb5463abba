// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"procserve/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DraftRepoFactory provides access to the draft repository within a transaction.
	DraftRepoFactory interface {
		DraftRepository() ports.DraftRepository
	}

	// BidRepoFactory provides access to the bid repository within a transaction.
	BidRepoFactory interface {
		BidRepository() ports.BidRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DraftUoW manages transactions for draft-only operations.
	// Used by the autosave path and the scheduled purge job.
	DraftUoW interface {
		TxManager
		DraftRepoFactory
	}

	// DraftUoWFactory creates new draft unit of work instances.
	DraftUoWFactory interface {
		Create() DraftUoW
	}

	// SubmitUoW manages a transaction spanning the draft and order
	// repositories. Submission moves the aggregate from one to the other
	// atomically: the order row appears and the draft row disappears in
	// the same commit.
	SubmitUoW interface {
		TxManager
		DraftRepoFactory
		OrderRepoFactory
	}

	// SubmitUoWFactory creates new submit unit of work instances.
	SubmitUoWFactory interface {
		Create() SubmitUoW
	}

	// BidUoW manages a transaction spanning the bid and order repositories.
	// Bid lifecycle operations mutate both: accepting a bid rejects its
	// competitors and binds the process server on the order side.
	BidUoW interface {
		TxManager
		BidRepoFactory
		OrderRepoFactory
	}

	// BidUoWFactory creates new bid unit of work instances.
	BidUoWFactory interface {
		Create() BidUoW
	}
)
