// Package queries contains read-only operations over the order store.
// Queries bypass the unit of work: they either reconstruct a single
// aggregate for a rich read model or go straight to SQL for flat listings.
package queries

import (
	"errors"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/services"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its recipients, per-recipient price
// breakdowns and the order total.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	identity ports.IdentityContext

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID, identity ports.IdentityContext) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setIdentity(identity),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order id.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Identity returns the acting identity.
func (q GetOrderQuery) Identity() ports.IdentityContext {
	return q.identity
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	q.identity = identity
	return nil
}

// RecipientView is the read model of one recipient, including the price
// breakdown derived by the pricing engine.
type RecipientView struct {
	ID               kernel.UUID
	Name             string
	Address          string
	City             string
	State            string
	ZipCode          string
	AssignmentMode   string
	AssignedServerID *kernel.UUID
	Status           string
	DeliveryAttempts int
	Price            services.PriceBreakdown
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	ID                  kernel.UUID
	OrderNumber         string
	Status              string
	CaseNumber          string
	Jurisdiction        string
	DocumentType        string
	Deadline            time.Time
	SpecialInstructions string
	DocumentURL         string
	DocumentPageCount   int
	CreatedAt           time.Time
	CompletedAt         *time.Time
	Recipients          []RecipientView
	Total               services.OrderTotal
}
