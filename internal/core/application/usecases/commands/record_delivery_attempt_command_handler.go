package commands

import (
	"context"
	"time"

	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"
)

// RecordDeliveryAttemptCommandHandler applies a field report to the order.
// Only the process server bound to the recipient (or a tenant admin) may
// report; the derived order status moves automatically, including to
// completed or failed when this recipient was the last one open.
type RecordDeliveryAttemptCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
}

// NewRecordDeliveryAttemptCommandHandler creates a handler for attempt
// reports.
func NewRecordDeliveryAttemptCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
) RecordDeliveryAttemptCommandHandler {
	return RecordDeliveryAttemptCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the attempt report.
func (h *RecordDeliveryAttemptCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryAttemptCommand) error {
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

	if err = h.authorizeReporter(aggregate, cmd); err != nil {
		return err
	}

	now := time.Now().UTC()
	switch cmd.Outcome() {
	case OutcomeAttempted:
		err = aggregate.RecordDeliveryAttempt(cmd.RecipientID(), now)
	case OutcomeDelivered:
		err = aggregate.CompleteRecipient(cmd.RecipientID(), now)
	case OutcomeFailed:
		err = aggregate.FailRecipient(cmd.RecipientID(), now)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderEvent(ctx, h.publisher, aggregate, ports.EventDeliveryProgress)
	return nil
}

// authorizeReporter allows the bound process server or a tenant admin.
func (h *RecordDeliveryAttemptCommandHandler) authorizeReporter(
	aggregate *order.Order,
	cmd RecordDeliveryAttemptCommand,
) error {
	identity := cmd.Identity()
	if !aggregate.BelongsToTenant(identity.TenantID) {
		return errs.NewUnauthorizedError("orderId")
	}
	if identity.IsAdmin() {
		return nil
	}

	recipient, err := aggregate.Recipient(cmd.RecipientID())
	if err != nil {
		return err
	}

	assigned := recipient.AssignedServer()
	if identity.Role != ports.RoleProcessServer || assigned == nil || !assigned.IsEqual(identity.UserID) {
		return errs.NewUnauthorizedError("recipientId")
	}
	return nil
}
