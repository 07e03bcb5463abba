package commands

import (
	"context"
)

// RejectBidCommandHandler rejects one pending bid. The order itself does not
// change: the recipient stays in bidding and keeps accepting other offers.
type RejectBidCommandHandler struct {
	uowFactory BidUoWFactory
}

// NewRejectBidCommandHandler creates a handler for bid rejection.
func NewRejectBidCommandHandler(uowFactory BidUoWFactory) RejectBidCommandHandler {
	return RejectBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection. Rejecting an already decided bid fails
// with a conflict.
func (h *RejectBidCommandHandler) Handle(ctx context.Context, cmd RejectBidCommand) error {
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

	bidRepo := uow.BidRepository()
	rejected, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, rejected.OrderID())
	if err != nil {
		return err
	}

	if err = authorizeOrderAccess(aggregate, cmd.Identity(), "bidId"); err != nil {
		return err
	}

	if err = rejected.Reject(); err != nil {
		return err
	}

	if err = bidRepo.Update(ctx, rejected); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
