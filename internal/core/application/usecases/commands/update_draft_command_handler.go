package commands

import (
	"context"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
)

// UpdateDraftCommandHandler applies one autosave payload to a stored draft.
// The payload is the full desired state: order-level fields are merged and
// the recipient collection is reconciled against it, so a recipient the
// client dropped is removed here too.
type UpdateDraftCommandHandler struct {
	uowFactory DraftUoWFactory
}

// NewUpdateDraftCommandHandler creates a handler for draft autosaves.
func NewUpdateDraftCommandHandler(uowFactory DraftUoWFactory) UpdateDraftCommandHandler {
	return UpdateDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one autosave. The write is ordered by the command's edit
// sequence; a save older than what the repository already holds is dropped
// without error and the call still succeeds.
func (h *UpdateDraftCommandHandler) Handle(ctx context.Context, cmd UpdateDraftCommand) error {
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

	if err = draft.ApplyPatch(cmd.Patch()); err != nil {
		return err
	}

	if err = reconcileRecipients(draft, cmd.Recipients()); err != nil {
		return err
	}

	if err = draftRepo.Upsert(ctx, draft, cmd.EditSeq()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// reconcileRecipients makes the draft's recipient collection match the
// payload. Changes apply in a fixed order per recipient: assignment mode
// first (it resets price negotiation state), then field patch, then server
// selection, so a single save can switch a recipient to guided mode and pick
// its server.
func reconcileRecipients(draft *order.Order, inputs []RecipientInput) error {
	kept := make(map[kernel.UUID]bool, len(inputs))

	for _, input := range inputs {
		var recipientID kernel.UUID
		if input.ID != nil {
			recipientID = *input.ID
			if _, err := draft.Recipient(recipientID); err != nil {
				return err
			}
		} else {
			recipientID = kernel.NewUUID()
			if _, err := draft.AddRecipient(recipientID); err != nil {
				return err
			}
		}
		kept[recipientID] = true

		if input.Mode != nil {
			if err := draft.SetAssignmentMode(recipientID, *input.Mode); err != nil {
				return err
			}
		}

		if err := draft.UpdateRecipient(recipientID, input.Patch); err != nil {
			return err
		}

		if input.ServerID != nil {
			if err := draft.SelectServer(recipientID, *input.ServerID); err != nil {
				return err
			}
		}
	}

	for _, recipient := range draft.Recipients() {
		if !kept[recipient.ID()] {
			if err := draft.RemoveRecipient(recipient.ID()); err != nil {
				return err
			}
		}
	}

	return nil
}
