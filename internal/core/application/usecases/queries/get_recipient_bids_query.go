package queries

import (
	"errors"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/guard"
)

var ErrGetRecipientBidsQueryIsNotConstructed = errors.New(
	"GetRecipientBidsQuery must be created via NewGetRecipientBidsQuery constructor",
)

// GetRecipientBidsQuery retrieves the bid history for one recipient, newest
// first. Bids are scoped to a recipient, not the order: each recipient of a
// multi-serve order runs its own auction.
type GetRecipientBidsQuery struct { //nolint:recvcheck //using for validation
	recipientID kernel.UUID
	identity    ports.IdentityContext

	guard guard.ConstructorGuard
}

// NewGetRecipientBidsQuery creates a bid listing query.
func NewGetRecipientBidsQuery(recipientID kernel.UUID, identity ports.IdentityContext) (GetRecipientBidsQuery, error) {
	query := GetRecipientBidsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setRecipientID(recipientID),
		query.setIdentity(identity),
	); err != nil {
		return GetRecipientBidsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRecipientBidsQuery) Validate() error {
	return q.guard.Validate(ErrGetRecipientBidsQueryIsNotConstructed)
}

// RecipientID returns the recipient whose bids are requested.
func (q GetRecipientBidsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

// Identity returns the acting identity.
func (q GetRecipientBidsQuery) Identity() ports.IdentityContext {
	return q.identity
}

func (q *GetRecipientBidsQuery) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	q.recipientID = recipientID
	return nil
}

func (q *GetRecipientBidsQuery) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	q.identity = identity
	return nil
}

// GetRecipientBidsQueryResponse is one bid in the recipient's history.
type GetRecipientBidsQueryResponse struct {
	ID              kernel.UUID
	ProcessServerID kernel.UUID
	AmountCents     int64
	Comment         string
	Status          string
	CreatedAt       time.Time
}
