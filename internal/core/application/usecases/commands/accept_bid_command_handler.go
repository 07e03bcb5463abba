package commands

import (
	"context"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/services"
	"procserve/internal/core/ports"
	"procserve/internal/metrics"
)

// AcceptBidCommandHandler closes a recipient's auction. In one transaction it
// accepts the chosen bid, rejects every other pending bid for the recipient,
// locks the bid amount plus add-on charges as the final agreed price, and
// binds the winning process server. Two customers accepting different bids
// for the same recipient race on the order's version column: the loser gets
// a conflict, never a double assignment.
type AcceptBidCommandHandler struct {
	uowFactory BidUoWFactory
	pricing    services.PricingEngine
	publisher  ports.OrderEventPublisher
}

// NewAcceptBidCommandHandler creates a handler for bid acceptance.
func NewAcceptBidCommandHandler(
	uowFactory BidUoWFactory,
	pricing services.PricingEngine,
	publisher ports.OrderEventPublisher,
) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		publisher:  publisher,
	}
}

// Handle processes the acceptance command.
func (h *AcceptBidCommandHandler) Handle(ctx context.Context, cmd AcceptBidCommand) error {
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
	accepted, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, accepted.OrderID())
	if err != nil {
		return err
	}

	if err = authorizeOrderAccess(aggregate, cmd.Identity(), "bidId"); err != nil {
		return err
	}

	if err = accepted.Accept(); err != nil {
		return err
	}

	recipient, err := aggregate.Recipient(accepted.RecipientID())
	if err != nil {
		return err
	}

	finalPrice := h.pricing.AcceptedBidPrice(accepted.Amount(), recipient.ServiceOptions())

	now := time.Now().UTC()
	if err = aggregate.BindServer(accepted.RecipientID(), accepted.ProcessServerID(), finalPrice, now); err != nil {
		return err
	}

	if err = bidRepo.Update(ctx, accepted); err != nil {
		return err
	}

	if err = h.rejectCompetitors(ctx, uow, accepted.RecipientID(), accepted.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.BidsAcceptedTotal.Inc()
	publishOrderEvent(ctx, h.publisher, aggregate, ports.EventBidAccepted)
	return nil
}

// rejectCompetitors closes out every other pending bid on the recipient.
func (h *AcceptBidCommandHandler) rejectCompetitors(
	ctx context.Context,
	uow BidUoW,
	recipientID, acceptedBidID kernel.UUID,
) error {
	bidRepo := uow.BidRepository()
	pending, err := bidRepo.GetPendingForRecipient(ctx, recipientID)
	if err != nil {
		return err
	}

	for _, competitor := range pending {
		if competitor.ID().IsEqual(acceptedBidID) {
			continue
		}
		if err = competitor.Reject(); err != nil {
			return err
		}
		if err = bidRepo.Update(ctx, competitor); err != nil {
			return err
		}
	}
	return nil
}
