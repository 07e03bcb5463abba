package commands

import (
	"context"
	"time"

	"procserve/internal/core/domain/model/bid"
	"procserve/internal/pkg/errs"
)

// SubmitBidCommandHandler records a bid and moves the target recipient into
// bidding. Both writes share one transaction; the order write carries the
// version guard, so two first bids racing each other serialize cleanly.
type SubmitBidCommandHandler struct {
	uowFactory BidUoWFactory
}

// NewSubmitBidCommandHandler creates a handler for bid submission.
func NewSubmitBidCommandHandler(uowFactory BidUoWFactory) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bid. Bidding on a guided-mode recipient or on one
// already assigned fails with a conflict raised by the aggregate.
func (h *SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// Any process server of the owning tenant may bid; servers of other
	// tenants may not see the order at all.
	if !aggregate.BelongsToTenant(cmd.Identity().TenantID) {
		return errs.NewUnauthorizedError("orderId")
	}

	now := time.Now().UTC()
	if err = aggregate.MarkRecipientBidding(cmd.RecipientID(), now); err != nil {
		return err
	}

	newBid, err := bid.NewBid(
		cmd.BidID(),
		cmd.OrderID(),
		cmd.RecipientID(),
		cmd.Identity().UserID,
		cmd.Amount(),
		cmd.Comment(),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.BidRepository().Add(ctx, newBid); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
