package commands

import (
	"context"
	"time"

	"procserve/internal/core/domain/model/order"
)

// CreateDraftCommandHandler handles the business logic for opening a draft.
// A fresh draft begins at edit sequence zero; every later autosave carries a
// higher sequence number.
type CreateDraftCommandHandler struct {
	uowFactory DraftUoWFactory
}

// NewCreateDraftCommandHandler creates a handler for draft creation.
func NewCreateDraftCommandHandler(uowFactory DraftUoWFactory) CreateDraftCommandHandler {
	return CreateDraftCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the draft creation command.
func (h *CreateDraftCommandHandler) Handle(ctx context.Context, cmd CreateDraftCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	draft, err := order.NewDraft(cmd.DraftID(), cmd.Identity().TenantID, cmd.Identity().UserID, time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DraftRepository().Add(ctx, draft, 0); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
