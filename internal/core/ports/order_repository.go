// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the external
// collaborators (geography, document store, event publishing). All
// implementations live under internal/adapters.
package ports

import (
	"context"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for submitted order
// aggregates. Drafts live in their own repository; an order appears here at
// submission and never leaves.
type OrderRepository interface {
	// Add persists a newly submitted order aggregate with all recipients.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write is guarded by
	// the aggregate's version: a concurrent modification since the aggregate
	// was loaded fails with a ConflictError instead of silently overwriting.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its complete recipient collection.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
