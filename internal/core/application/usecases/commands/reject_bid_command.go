package commands

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/guard"
)

var ErrRejectBidCommandIsNotConstructed = errors.New(
	"RejectBidCommand must be created via NewRejectBidCommand constructor",
)

// RejectBidCommand represents a customer's rejection of one pending bid. The
// recipient keeps collecting other bids.
type RejectBidCommand struct { //nolint:recvcheck //using for validation
	bidID    kernel.UUID
	identity ports.IdentityContext

	guard guard.ConstructorGuard
}

// NewRejectBidCommand creates a command to reject a bid.
func NewRejectBidCommand(bidID kernel.UUID, identity ports.IdentityContext) (RejectBidCommand, error) {
	cmd := RejectBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBidID(bidID),
		cmd.setIdentity(identity),
	); err != nil {
		return RejectBidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectBidCommand) Validate() error {
	return c.guard.Validate(ErrRejectBidCommandIsNotConstructed)
}

// BidID returns the bid being rejected.
func (c RejectBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// Identity returns the acting identity.
func (c RejectBidCommand) Identity() ports.IdentityContext {
	return c.identity
}

func (c *RejectBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *RejectBidCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	c.identity = identity
	return nil
}
