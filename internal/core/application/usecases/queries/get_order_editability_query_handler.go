package queries

import (
	"context"
	"database/sql"
	"errors"

	"procserve/internal/core/domain/model/order"
	"procserve/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderEditabilityQueryHandler answers editability from the status column
// alone. Drafts are always editable, so an id found in the draft store short
// circuits before the order lookup.
type GetOrderEditabilityQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderEditabilityQueryHandler creates a handler for editability
// checks.
func NewGetOrderEditabilityQueryHandler(db *gorm.DB) GetOrderEditabilityQueryHandler {
	return GetOrderEditabilityQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrderEditabilityQueryHandler) Handle(
	ctx context.Context,
	query GetOrderEditabilityQuery,
) (GetOrderEditabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderEditabilityQueryResponse{}, err
	}

	// Tenant scoping keeps one tenant's order ids unresolvable by another.
	var draftCount int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM drafts WHERE id = ? AND tenant_id = ?
	`, query.OrderID().Bytes(), query.Identity().TenantID.Bytes()).Scan(&draftCount).Error
	if err != nil {
		return GetOrderEditabilityQueryResponse{}, err
	}
	if draftCount > 0 {
		return GetOrderEditabilityQueryResponse{
			Status:   order.Draft.String(),
			Editable: true,
		}, nil
	}

	var status int
	row := h.db.WithContext(ctx).Raw(`
		SELECT status FROM orders WHERE id = ? AND tenant_id = ?
	`, query.OrderID().Bytes(), query.Identity().TenantID.Bytes()).Row()
	if err = row.Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderEditabilityQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID())
		}
		return GetOrderEditabilityQueryResponse{}, err
	}

	orderStatus := order.Status(status)
	editable, reason := orderStatus.CanEdit()

	return GetOrderEditabilityQueryResponse{
		Status:   orderStatus.String(),
		Editable: editable,
		Reason:   reason,
	}, nil
}
