package queries

import (
	"context"
	"time"

	"procserve/internal/core/domain/model/bid"
	"procserve/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRecipientBidsQueryHandler lists a recipient's bids straight from SQL.
type GetRecipientBidsQueryHandler struct {
	db *gorm.DB
}

// NewGetRecipientBidsQueryHandler creates a handler for bid listings.
func NewGetRecipientBidsQueryHandler(db *gorm.DB) GetRecipientBidsQueryHandler {
	return GetRecipientBidsQueryHandler{db: db}
}

// Handle executes the query. The tenant scope join keeps one tenant's bids
// invisible to another even if a recipient id leaks.
func (h GetRecipientBidsQueryHandler) Handle(
	ctx context.Context,
	query GetRecipientBidsQuery,
) ([]GetRecipientBidsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			b.id,
			b.process_server_id,
			b.amount_cents,
			b.comment,
			b.status,
			b.created_at
		FROM bids b
		JOIN orders o ON o.id = b.order_id
		WHERE b.recipient_id = ?
		  AND o.tenant_id = ?
		ORDER BY b.created_at DESC
	`, query.RecipientID().Bytes(), query.Identity().TenantID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetRecipientBidsQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			serverID  uuid.UUID
			amount    int64
			comment   string
			status    int
			createdAt time.Time
		)

		if err = rows.Scan(&id, &serverID, &amount, &comment, &status, &createdAt); err != nil {
			return nil, err
		}

		bidID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		processServerID, idErr := kernel.UUIDFromBytes(serverID[:])
		if idErr != nil {
			return nil, idErr
		}

		responses = append(responses, GetRecipientBidsQueryResponse{
			ID:              bidID,
			ProcessServerID: processServerID,
			AmountCents:     amount,
			Comment:         comment,
			Status:          bid.Status(status).String(),
			CreatedAt:       createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
