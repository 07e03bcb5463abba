package commands

import (
	"context"

	"procserve/internal/core/ports"
)

// AttachDocumentCommandHandler uploads a document to the external store and
// records the resulting URL and page count on the order. The upload happens
// before the transaction opens; if the order turns out to be locked the
// stored file is simply orphaned, which the store reaps on its own schedule.
type AttachDocumentCommandHandler struct {
	uowFactory OrderUoWFactory
	documents  ports.DocumentStore
}

// NewAttachDocumentCommandHandler creates a handler for document attachment.
func NewAttachDocumentCommandHandler(
	uowFactory OrderUoWFactory,
	documents ports.DocumentStore,
) AttachDocumentCommandHandler {
	return AttachDocumentCommandHandler{
		uowFactory: uowFactory,
		documents:  documents,
	}
}

// Handle processes the attachment command.
func (h *AttachDocumentCommandHandler) Handle(ctx context.Context, cmd AttachDocumentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uploaded, err := h.documents.Upload(ctx, cmd.OrderID(), cmd.Filename(), cmd.Content())
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = authorizeOrderAccess(aggregate, cmd.Identity(), "orderId"); err != nil {
		return err
	}

	if err = aggregate.AttachDocument(uploaded.URL, uploaded.PageCount); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
