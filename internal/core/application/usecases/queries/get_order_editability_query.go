package queries

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/guard"
)

var ErrGetOrderEditabilityQueryIsNotConstructed = errors.New(
	"GetOrderEditabilityQuery must be created via NewGetOrderEditabilityQuery constructor",
)

// GetOrderEditabilityQuery asks whether an order can currently be edited.
// Clients use this to grey out forms; the same predicate guards every write,
// so the answer here can never disagree with what a write would do.
type GetOrderEditabilityQuery struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	identity ports.IdentityContext

	guard guard.ConstructorGuard
}

// NewGetOrderEditabilityQuery creates an editability query.
func NewGetOrderEditabilityQuery(orderID kernel.UUID, identity ports.IdentityContext) (GetOrderEditabilityQuery, error) {
	query := GetOrderEditabilityQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setIdentity(identity),
	); err != nil {
		return GetOrderEditabilityQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderEditabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderEditabilityQueryIsNotConstructed)
}

// OrderID returns the requested order id.
func (q GetOrderEditabilityQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Identity returns the acting identity.
func (q GetOrderEditabilityQuery) Identity() ports.IdentityContext {
	return q.identity
}

func (q *GetOrderEditabilityQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderEditabilityQuery) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	q.identity = identity
	return nil
}

// GetOrderEditabilityQueryResponse reports whether edits are allowed and,
// when they are not, the human-readable lock reason.
type GetOrderEditabilityQueryResponse struct {
	Status   string
	Editable bool
	Reason   string
}
