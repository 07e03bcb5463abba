package commands

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand represents a request to submit a draft as a live order.
// Submission runs full validation, assigns the order number, and moves the
// aggregate out of the draft store.
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	draftID  kernel.UUID
	identity ports.IdentityContext

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a command to submit a draft.
func NewSubmitOrderCommand(draftID kernel.UUID, identity ports.IdentityContext) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDraftID(draftID),
		cmd.setIdentity(identity),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// DraftID returns the draft being submitted.
func (c SubmitOrderCommand) DraftID() kernel.UUID {
	return c.draftID
}

// Identity returns the acting identity.
func (c SubmitOrderCommand) Identity() ports.IdentityContext {
	return c.identity
}

func (c *SubmitOrderCommand) setDraftID(draftID kernel.UUID) error {
	if err := draftID.Validate(); err != nil {
		return err
	}

	c.draftID = draftID
	return nil
}

func (c *SubmitOrderCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	c.identity = identity
	return nil
}
