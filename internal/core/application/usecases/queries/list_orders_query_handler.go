package queries

import (
	"context"
	"fmt"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler runs the order listing straight against SQL. The
// sort column comes from a fixed whitelist validated by the query object, so
// the string interpolation below cannot carry user input.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	direction := "ASC"
	if query.Descending() {
		direction = "DESC"
	}

	sql := fmt.Sprintf(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.case_number,
			o.deadline,
			o.created_at,
			(SELECT COUNT(*) FROM order_recipients r WHERE r.order_id = o.id) AS recipient_count
		FROM orders o
		WHERE o.tenant_id = ?
		  AND (? OR o.customer_id = ?)
		  AND (? OR o.status = ?)
		ORDER BY o.%s %s
		LIMIT ? OFFSET ?
	`, query.SortBy(), direction)

	identity := query.Identity()
	statusFilter := order.Unknown
	if query.Status() != nil {
		statusFilter = *query.Status()
	}

	rows, err := h.db.WithContext(ctx).Raw(sql,
		identity.TenantID.Bytes(),
		identity.IsAdmin(),
		identity.UserID.Bytes(),
		query.Status() == nil,
		statusFilter,
		query.Limit(),
		query.Offset(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id          uuid.UUID
			orderNumber string
			status      int
			caseNumber  string
			deadline    time.Time
			createdAt   time.Time
			recipients  int
		)

		if err = rows.Scan(&id, &orderNumber, &status, &caseNumber, &deadline, &createdAt, &recipients); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		responses = append(responses, ListOrdersQueryResponse{
			ID:             orderID,
			OrderNumber:    orderNumber,
			Status:         order.Status(status).String(),
			CaseNumber:     caseNumber,
			Deadline:       deadline,
			CreatedAt:      createdAt,
			RecipientCount: recipients,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
