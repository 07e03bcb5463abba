package queries

import (
	"errors"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"
	"procserve/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// Sort fields accepted by ListOrdersQuery. Every knob is an explicit
// parameter; there is no free-form filter or SQL fragment pass-through.
const (
	SortByCreatedAt = "created_at"
	SortByDeadline  = "deadline"
)

// ListOrdersQuery retrieves a page of order summaries for the acting tenant.
// Customers see their own orders; tenant admins see the whole tenant.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	identity   ports.IdentityContext
	status     *order.Status
	sortBy     string
	descending bool
	limit      int
	offset     int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. A nil status means no status
// filter. Limit is capped at 100.
func NewListOrdersQuery(
	identity ports.IdentityContext,
	status *order.Status,
	sortBy string,
	descending bool,
	limit, offset int,
) (ListOrdersQuery, error) {
	query := ListOrdersQuery{
		descending: descending,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setIdentity(identity),
		query.setStatus(status),
		query.setSortBy(sortBy),
		query.setPage(limit, offset),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Identity returns the acting identity.
func (q ListOrdersQuery) Identity() ports.IdentityContext { return q.identity }

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status { return q.status }

// SortBy returns the sort field.
func (q ListOrdersQuery) SortBy() string { return q.sortBy }

// Descending reports whether to sort newest or latest first.
func (q ListOrdersQuery) Descending() bool { return q.descending }

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int { return q.limit }

// Offset returns the page offset.
func (q ListOrdersQuery) Offset() int { return q.offset }

func (q *ListOrdersQuery) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	q.identity = identity
	return nil
}

func (q *ListOrdersQuery) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}

	q.status = status
	return nil
}

func (q *ListOrdersQuery) setSortBy(sortBy string) error {
	switch sortBy {
	case "", SortByCreatedAt:
		q.sortBy = SortByCreatedAt
		return nil
	case SortByDeadline:
		q.sortBy = SortByDeadline
		return nil
	default:
		return errs.NewValueIsInvalidError("sortBy")
	}
}

func (q *ListOrdersQuery) setPage(limit, offset int) error {
	if limit <= 0 || limit > 100 {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, 100)
	}
	if offset < 0 {
		return errs.NewValueIsInvalidError("offset")
	}

	q.limit = limit
	q.offset = offset
	return nil
}

// ListOrdersQueryResponse is one row of the order listing.
type ListOrdersQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	Status         string
	CaseNumber     string
	Deadline       time.Time
	CreatedAt      time.Time
	RecipientCount int
}
