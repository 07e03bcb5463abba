package commands

import (
	"errors"
	"io"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"
	"procserve/internal/pkg/guard"
)

var ErrAttachDocumentCommandIsNotConstructed = errors.New(
	"AttachDocumentCommand must be created via NewAttachDocumentCommand constructor",
)

// AttachDocumentCommand represents a request to upload and attach a court
// document to an editable order.
type AttachDocumentCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	identity ports.IdentityContext
	filename string
	content  io.Reader

	guard guard.ConstructorGuard
}

// NewAttachDocumentCommand creates a command to attach a document.
func NewAttachDocumentCommand(
	orderID kernel.UUID,
	identity ports.IdentityContext,
	filename string,
	content io.Reader,
) (AttachDocumentCommand, error) {
	cmd := AttachDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setIdentity(identity),
		cmd.setFilename(filename),
		cmd.setContent(content),
	); err != nil {
		return AttachDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachDocumentCommand) Validate() error {
	return c.guard.Validate(ErrAttachDocumentCommandIsNotConstructed)
}

// OrderID returns the order receiving the document.
func (c AttachDocumentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Identity returns the acting identity.
func (c AttachDocumentCommand) Identity() ports.IdentityContext {
	return c.identity
}

// Filename returns the uploaded file's name.
func (c AttachDocumentCommand) Filename() string {
	return c.filename
}

// Content returns the document body.
func (c AttachDocumentCommand) Content() io.Reader {
	return c.content
}

func (c *AttachDocumentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AttachDocumentCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	c.identity = identity
	return nil
}

func (c *AttachDocumentCommand) setFilename(filename string) error {
	if filename == "" {
		return errs.NewValueIsRequiredError("filename")
	}

	c.filename = filename
	return nil
}

func (c *AttachDocumentCommand) setContent(content io.Reader) error {
	if content == nil {
		return errs.NewValueIsRequiredError("content")
	}

	c.content = content
	return nil
}
