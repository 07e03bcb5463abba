package commands

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"
	"procserve/internal/pkg/guard"
)

var ErrSubmitBidCommandIsNotConstructed = errors.New(
	"SubmitBidCommand must be created via NewSubmitBidCommand constructor",
)

// SubmitBidCommand represents a process server's price offer for serving one
// recipient of an automated-assignment order. The bidder is the acting user.
type SubmitBidCommand struct { //nolint:recvcheck //using for validation
	bidID       kernel.UUID
	orderID     kernel.UUID
	recipientID kernel.UUID
	identity    ports.IdentityContext
	amount      kernel.Money
	comment     string

	guard guard.ConstructorGuard
}

// NewSubmitBidCommand creates a command to submit a bid. Only identities with
// the process server role may bid.
func NewSubmitBidCommand(
	bidID, orderID, recipientID kernel.UUID,
	identity ports.IdentityContext,
	amount kernel.Money,
	comment string,
) (SubmitBidCommand, error) {
	cmd := SubmitBidCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBidID(bidID),
		cmd.setOrderID(orderID),
		cmd.setRecipientID(recipientID),
		cmd.setIdentity(identity),
		cmd.setAmount(amount),
	); err != nil {
		return SubmitBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitBidCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBidCommandIsNotConstructed)
}

// BidID returns the identifier for the new bid.
func (c SubmitBidCommand) BidID() kernel.UUID { return c.bidID }

// OrderID returns the order being bid on.
func (c SubmitBidCommand) OrderID() kernel.UUID { return c.orderID }

// RecipientID returns the recipient being bid on.
func (c SubmitBidCommand) RecipientID() kernel.UUID { return c.recipientID }

// Identity returns the bidding process server's identity.
func (c SubmitBidCommand) Identity() ports.IdentityContext { return c.identity }

// Amount returns the offered base serve price.
func (c SubmitBidCommand) Amount() kernel.Money { return c.amount }

// Comment returns the optional bid comment.
func (c SubmitBidCommand) Comment() string { return c.comment }

func (c *SubmitBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *SubmitBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitBidCommand) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	c.recipientID = recipientID
	return nil
}

func (c *SubmitBidCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}
	if identity.Role != ports.RoleProcessServer {
		return errs.NewUnauthorizedError("role")
	}

	c.identity = identity
	return nil
}

func (c *SubmitBidCommand) setAmount(amount kernel.Money) error {
	if amount.IsZero() {
		return errs.NewValueIsRequiredError("amount")
	}

	c.amount = amount
	return nil
}
