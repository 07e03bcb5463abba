package commands

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"
	"procserve/internal/pkg/guard"
)

var ErrUpdateDraftCommandIsNotConstructed = errors.New(
	"UpdateDraftCommand must be created via NewUpdateDraftCommand constructor",
)

// RecipientInput is the full desired state of one recipient inside an
// autosave payload. A nil ID means a new recipient; a non-nil ID addresses an
// existing one. Recipients present in the draft but absent from the payload
// are removed.
type RecipientInput struct {
	ID       *kernel.UUID
	Patch    order.RecipientPatch
	Mode     *order.AssignmentMode
	ServerID *kernel.UUID
}

// UpdateDraftCommand represents one autosave of a draft order. The edit
// sequence orders concurrent saves: the repository keeps the highest sequence
// seen and silently drops anything older, so a slow request from a stale tab
// can never clobber fresher work.
type UpdateDraftCommand struct { //nolint:recvcheck //using for validation
	draftID    kernel.UUID
	editSeq    int64
	identity   ports.IdentityContext
	patch      order.Patch
	recipients []RecipientInput

	guard guard.ConstructorGuard
}

// NewUpdateDraftCommand creates an autosave command.
// The edit sequence must be positive; sequence zero is reserved for the
// freshly created draft.
func NewUpdateDraftCommand(
	draftID kernel.UUID,
	editSeq int64,
	identity ports.IdentityContext,
	patch order.Patch,
	recipients []RecipientInput,
) (UpdateDraftCommand, error) {
	cmd := UpdateDraftCommand{
		guard:      guard.NewConstructorGuard(),
		patch:      patch,
		recipients: recipients,
	}

	if err := errors.Join(
		cmd.setDraftID(draftID),
		cmd.setEditSeq(editSeq),
		cmd.setIdentity(identity),
	); err != nil {
		return UpdateDraftCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDraftCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDraftCommandIsNotConstructed)
}

// DraftID returns the draft being saved.
func (c UpdateDraftCommand) DraftID() kernel.UUID {
	return c.draftID
}

// EditSeq returns the client-supplied edit sequence for this save.
func (c UpdateDraftCommand) EditSeq() int64 {
	return c.editSeq
}

// Identity returns the acting identity.
func (c UpdateDraftCommand) Identity() ports.IdentityContext {
	return c.identity
}

// Patch returns the order-level field changes.
func (c UpdateDraftCommand) Patch() order.Patch {
	return c.patch
}

// Recipients returns the desired recipient set.
func (c UpdateDraftCommand) Recipients() []RecipientInput {
	return c.recipients
}

func (c *UpdateDraftCommand) setDraftID(draftID kernel.UUID) error {
	if err := draftID.Validate(); err != nil {
		return err
	}

	c.draftID = draftID
	return nil
}

func (c *UpdateDraftCommand) setEditSeq(editSeq int64) error {
	if editSeq <= 0 {
		return errs.NewValueIsInvalidError("editSeq")
	}

	c.editSeq = editSeq
	return nil
}

func (c *UpdateDraftCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	c.identity = identity
	return nil
}
