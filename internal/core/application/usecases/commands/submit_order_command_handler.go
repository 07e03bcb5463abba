package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/metrics"
	"procserve/internal/pkg/errs"
)

// SubmitOrderCommandHandler turns a draft into a live order. The draft row
// and the order row swap in one transaction, so a crash mid-submission never
// leaves the aggregate in both stores or in neither.
type SubmitOrderCommandHandler struct {
	uowFactory SubmitUoWFactory
	geography  ports.GeographyService
	publisher  ports.OrderEventPublisher
}

// NewSubmitOrderCommandHandler creates a handler for draft submission.
func NewSubmitOrderCommandHandler(
	uowFactory SubmitUoWFactory,
	geography ports.GeographyService,
	publisher ports.OrderEventPublisher,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		uowFactory: uowFactory,
		geography:  geography,
		publisher:  publisher,
	}
}

// Handle processes the submission. Validation failures come back joined, so
// the caller sees every missing field at once rather than one per attempt.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) error {
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

	draftRepo := uow.DraftRepository()
	draft, err := draftRepo.Get(ctx, cmd.DraftID())
	if err != nil {
		return err
	}

	if err = authorizeOrderAccess(draft, cmd.Identity(), "draftId"); err != nil {
		return err
	}

	if err = h.validateStates(ctx, draft); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = draft.Submit(newOrderNumber(now), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, draft); err != nil {
		return err
	}

	if err = draftRepo.Delete(ctx, draft.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.OrdersSubmittedTotal.Inc()
	publishOrderEvent(ctx, h.publisher, draft, ports.EventOrderSubmitted)
	return nil
}

// validateStates checks every recipient's state against the geography
// service. States are validated here rather than during autosave: a draft may
// hold anything, a submitted order may not.
func (h *SubmitOrderCommandHandler) validateStates(ctx context.Context, draft *order.Order) error {
	states, err := h.geography.StatesList(ctx)
	if err != nil {
		return fmt.Errorf("geography lookup: %w", err)
	}

	known := make(map[string]bool, len(states))
	for _, state := range states {
		known[strings.ToUpper(state.ID)] = true
	}

	for _, recipient := range draft.Recipients() {
		if !known[strings.ToUpper(recipient.State())] {
			return errs.NewValueIsInvalidError("state")
		}
	}
	return nil
}

// newOrderNumber builds a human-readable order number such as
// "PS-20260315-9F2C41AB". The suffix comes from a fresh UUID, which keeps
// numbers unique without a database sequence.
func newOrderNumber(now time.Time) string {
	id := kernel.NewUUID()
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))[:8]
	return fmt.Sprintf("PS-%s-%s", now.Format("20060102"), suffix)
}
