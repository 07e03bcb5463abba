package commands

import (
	"context"
	"time"
)

// PurgeStaleDraftsCommandHandler removes abandoned drafts in bulk.
type PurgeStaleDraftsCommandHandler struct {
	uowFactory DraftUoWFactory
}

// NewPurgeStaleDraftsCommandHandler creates a handler for draft purging.
func NewPurgeStaleDraftsCommandHandler(uowFactory DraftUoWFactory) PurgeStaleDraftsCommandHandler {
	return PurgeStaleDraftsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes drafts older than the retention cutoff and returns how many
// were removed.
func (h *PurgeStaleDraftsCommandHandler) Handle(ctx context.Context, cmd PurgeStaleDraftsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := time.Now().UTC().Add(-cmd.Retention())
	purged, err := uow.DraftRepository().DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return purged, nil
}
