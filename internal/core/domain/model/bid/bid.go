// Package bid contains the Bid entity of the process-service domain. A bid
// is a price offer submitted by a process server against an automated
// recipient of an order. Bids are terminal on acceptance or rejection and
// are never deleted: the full bid history is the audit trail of how a price
// and a counterparty were committed to an order.
package bid

import (
	"errors"
	"fmt"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/pkg/errs"
)

// ErrBidIsNotConstructed is returned when a Bid instance was not created
// through NewBid or RestoreBid.
var ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid constructor")

// Bid is a price offer by a process server for serving one recipient.
//
// Lifecycle: Pending on creation, terminal on Accepted or Rejected.
// Accepting one bid implicitly rejects all other pending bids on the same
// recipient; that coordination is the accept operation's job, not the
// entity's.
type Bid struct {
	id              kernel.UUID
	orderID         kernel.UUID
	recipientID     kernel.UUID
	processServerID kernel.UUID

	amount  kernel.Money
	comment string

	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewBid creates a pending bid. The amount must be positive: a zero offer is
// not a price.
func NewBid(id, orderID, recipientID, processServerID kernel.UUID, amount kernel.Money, comment string, now time.Time) (*Bid, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		recipientID.Validate(),
		processServerID.Validate(),
	); err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, errs.NewValueIsInvalidErrorWithCause("bidAmount",
			fmt.Errorf("bid amount must be greater than zero"))
	}

	return &Bid{
		id:              id,
		orderID:         orderID,
		recipientID:     recipientID,
		processServerID: processServerID,
		amount:          amount,
		comment:         comment,
		status:          Pending,
		createdAt:       now,
		isConstructed:   true,
	}, nil
}

// RestoreBid reconstructs a bid from persistence.
func RestoreBid(id, orderID, recipientID, processServerID kernel.UUID, amount kernel.Money, comment string, status Status, createdAt time.Time) (*Bid, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		recipientID.Validate(),
		processServerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Bid{
		id:              id,
		orderID:         orderID,
		recipientID:     recipientID,
		processServerID: processServerID,
		amount:          amount,
		comment:         comment,
		status:          status,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Bid was created through a constructor.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}
	return nil
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID { return b.id }

// OrderID returns the order the bid targets.
func (b *Bid) OrderID() kernel.UUID { return b.orderID }

// RecipientID returns the recipient the bid targets.
func (b *Bid) RecipientID() kernel.UUID { return b.recipientID }

// ProcessServerID returns the bidding server.
func (b *Bid) ProcessServerID() kernel.UUID { return b.processServerID }

// Amount returns the offered price.
func (b *Bid) Amount() kernel.Money { return b.amount }

// Comment returns the server's optional comment.
func (b *Bid) Comment() string { return b.comment }

// Status returns the bid's lifecycle status.
func (b *Bid) Status() Status { return b.status }

// CreatedAt returns the submission timestamp.
func (b *Bid) CreatedAt() time.Time { return b.createdAt }

// Accept transitions the bid to Accepted. Only pending bids can be accepted.
func (b *Bid) Accept() error {
	newStatus, err := b.status.Accept()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}

// Reject transitions the bid to Rejected. Only pending bids can be rejected.
func (b *Bid) Reject() error {
	newStatus, err := b.status.Reject()
	if err != nil {
		return err
	}
	b.status = newStatus
	return nil
}
