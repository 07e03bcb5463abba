package commands

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/guard"
)

var ErrCreateDraftCommandIsNotConstructed = errors.New(
	"CreateDraftCommand must be created via NewCreateDraftCommand constructor",
)

// CreateDraftCommand represents a request to open a new draft order for the
// acting customer. The draft starts empty and is filled incrementally through
// autosave updates.
//
// Example:
//
//	draftID := kernel.NewUUID()
//	cmd, err := NewCreateDraftCommand(draftID, identity)
//	if err != nil {
//	    return fmt.Errorf("invalid draft data: %w", err)
//	}
//
//	handler := NewCreateDraftCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create draft: %w", err)
//	}
type CreateDraftCommand struct { //nolint:recvcheck //using for validation
	draftID  kernel.UUID
	identity ports.IdentityContext

	guard guard.ConstructorGuard
}

// NewCreateDraftCommand creates a command to open a new draft.
// Validates the draft id and the acting identity.
func NewCreateDraftCommand(draftID kernel.UUID, identity ports.IdentityContext) (CreateDraftCommand, error) {
	cmd := CreateDraftCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDraftID(draftID),
		cmd.setIdentity(identity),
	); err != nil {
		return CreateDraftCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDraftCommand) Validate() error {
	return c.guard.Validate(ErrCreateDraftCommandIsNotConstructed)
}

// DraftID returns the identifier for the new draft.
func (c CreateDraftCommand) DraftID() kernel.UUID {
	return c.draftID
}

// Identity returns the acting identity.
func (c CreateDraftCommand) Identity() ports.IdentityContext {
	return c.identity
}

func (c *CreateDraftCommand) setDraftID(draftID kernel.UUID) error {
	if err := draftID.Validate(); err != nil {
		return err
	}

	c.draftID = draftID
	return nil
}

func (c *CreateDraftCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	c.identity = identity
	return nil
}
