package ports

import (
	"context"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
)

// DraftRepository defines the persistence contract for not-yet-submitted
// orders. Drafts are keyed by draft id and carry a monotonically increasing
// edit sequence supplied by the autosaving client.
type DraftRepository interface {
	// Add persists a new draft with its initial edit sequence.
	Add(ctx context.Context, draft *order.Order, editSeq int64) error

	// Upsert applies an autosave payload. Writes are ordered by edit
	// sequence, not arrival: a payload whose sequence is not greater than
	// the stored one is dropped without error, so a stale save arriving
	// late can never overwrite a newer one. The call is idempotent.
	Upsert(ctx context.Context, draft *order.Order, editSeq int64) error

	// Get retrieves a draft by id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes a draft, typically after successful submission.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteStale removes drafts not updated since the cutoff and returns
	// how many were removed. Used by the scheduled purge job.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
