package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request or
// command, ensuring isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary across the order,
// draft and bid repositories. Client code manages the transaction lifecycle
// explicitly; the bid-acceptance transition relies on this boundary for its
// atomicity guarantee.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; rolling back a finished transaction is a no-op error.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// DraftRepository returns a DraftRepository bound to the current
	// transaction.
	DraftRepository() DraftRepository

	// BidRepository returns a BidRepository bound to the current
	// transaction.
	BidRepository() BidRepository
}
