package commands

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/guard"
)

var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
)

// AcceptBidCommand represents a customer's acceptance of one bid. Acceptance
// binds the bidding process server to the recipient and closes the auction.
type AcceptBidCommand struct { //nolint:recvcheck //using for validation
	bidID    kernel.UUID
	identity ports.IdentityContext

	guard guard.ConstructorGuard
}

// NewAcceptBidCommand creates a command to accept a bid.
func NewAcceptBidCommand(bidID kernel.UUID, identity ports.IdentityContext) (AcceptBidCommand, error) {
	cmd := AcceptBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBidID(bidID),
		cmd.setIdentity(identity),
	); err != nil {
		return AcceptBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

// BidID returns the bid being accepted.
func (c AcceptBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// Identity returns the acting identity.
func (c AcceptBidCommand) Identity() ports.IdentityContext {
	return c.identity
}

func (c *AcceptBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *AcceptBidCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	c.identity = identity
	return nil
}
