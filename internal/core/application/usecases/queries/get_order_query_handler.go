package queries

import (
	"context"
	"errors"

	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/domain/services"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"
)

// GetOrderQueryHandler builds the full order read model. Unlike the flat
// listing queries this one reconstructs the aggregate: price breakdowns are
// derived, not stored, so the pricing engine has to run over real domain
// objects.
type GetOrderQueryHandler struct {
	orders  ports.OrderRepository
	drafts  ports.DraftRepository
	pricing services.PricingEngine
}

// NewGetOrderQueryHandler creates a handler for single-order reads. The
// handler falls back to the draft store when the id is not a submitted
// order, so one endpoint serves both.
func NewGetOrderQueryHandler(
	orders ports.OrderRepository,
	drafts ports.DraftRepository,
	pricing services.PricingEngine,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		orders:  orders,
		drafts:  drafts,
		pricing: pricing,
	}
}

// Handle executes the query.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return GetOrderQueryResponse{}, err
		}
		if aggregate, err = h.drafts.Get(ctx, query.OrderID()); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	identity := query.Identity()
	if !aggregate.BelongsToTenant(identity.TenantID) {
		return GetOrderQueryResponse{}, errs.NewUnauthorizedError("orderId")
	}
	if !aggregate.OwnedBy(identity.UserID) && !identity.IsAdmin() && identity.Role != ports.RoleProcessServer {
		return GetOrderQueryResponse{}, errs.NewUnauthorizedError("orderId")
	}

	return h.toResponse(aggregate), nil
}

func (h GetOrderQueryHandler) toResponse(aggregate *order.Order) GetOrderQueryResponse {
	recipients := make([]RecipientView, 0, len(aggregate.Recipients()))
	for _, r := range aggregate.Recipients() {
		recipients = append(recipients, RecipientView{
			ID:               r.ID(),
			Name:             r.Name(),
			Address:          r.Address(),
			City:             r.City(),
			State:            r.State(),
			ZipCode:          r.ZipCode(),
			AssignmentMode:   r.AssignmentMode().String(),
			AssignedServerID: r.AssignedServer(),
			Status:           r.Status().String(),
			DeliveryAttempts: r.DeliveryAttempts(),
			Price:            h.pricing.ComputeRecipientPrice(r),
		})
	}

	return GetOrderQueryResponse{
		ID:                  aggregate.ID(),
		OrderNumber:         aggregate.OrderNumber(),
		Status:              aggregate.Status().String(),
		CaseNumber:          aggregate.CaseNumber(),
		Jurisdiction:        aggregate.Jurisdiction(),
		DocumentType:        aggregate.DocumentType(),
		Deadline:            aggregate.Deadline(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		DocumentURL:         aggregate.DocumentURL(),
		DocumentPageCount:   aggregate.DocumentPageCount(),
		CreatedAt:           aggregate.CreatedAt(),
		CompletedAt:         aggregate.CompletedAt(),
		Recipients:          recipients,
		Total:               h.pricing.ComputeOrderTotal(aggregate),
	}
}
