package ports

import (
	"context"

	"procserve/internal/core/domain/model/bid"
	"procserve/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bids. Bids are never
// deleted; the history is the audit trail of price commitment.
type BidRepository interface {
	// Add persists a new bid.
	Add(ctx context.Context, aggregate *bid.Bid) error

	// Update persists a bid's status transition.
	Update(ctx context.Context, aggregate *bid.Bid) error

	// Get retrieves a bid by id.
	Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error)

	// GetPendingForRecipient retrieves all pending bids targeting one
	// recipient. Accepting a bid rejects every other entry in this set.
	GetPendingForRecipient(ctx context.Context, recipientID kernel.UUID) ([]*bid.Bid, error)

	// GetForRecipient retrieves all bids ever submitted for one recipient.
	GetForRecipient(ctx context.Context, recipientID kernel.UUID) ([]*bid.Bid, error)
}
