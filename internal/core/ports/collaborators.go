package ports

import (
	"context"
	"io"

	"procserve/internal/core/domain/model/kernel"
)

// State is a state/region entry returned by the geography service.
type State struct {
	ID   string
	Name string
}

// City is a city entry returned by the geography service.
type City struct {
	ID      string
	StateID string
	Name    string
}

// GeographyService is the external state/city lookup collaborator. The core
// only consumes lookups; the lookup internals are out of scope.
type GeographyService interface {
	StatesList(ctx context.Context) ([]State, error)
	CitiesByState(ctx context.Context, stateID string) ([]City, error)
}

// UploadedDocument describes a document stored by the document store.
type UploadedDocument struct {
	URL       string
	PageCount int
}

// DocumentStore is the external document storage collaborator. Scanning and
// storage internals are out of scope; the core only records the result.
type DocumentStore interface {
	Upload(ctx context.Context, ownerID kernel.UUID, filename string, content io.Reader) (UploadedDocument, error)
}

// OrderEvent is a status-change notification emitted after a successful
// commit. Delivery to end users is out of scope; the core only publishes.
type OrderEvent struct {
	OrderID     kernel.UUID
	OrderNumber string
	TenantID    kernel.UUID
	Status      string
	Kind        string
}

// Event kinds published on the order-changed topic.
const (
	EventOrderSubmitted   = "order_submitted"
	EventOrderUpdated     = "order_updated"
	EventOrderCancelled   = "order_cancelled"
	EventBidAccepted      = "bid_accepted"
	EventDeliveryProgress = "delivery_progress"
)

// OrderEventPublisher publishes order lifecycle events. Implementations must
// not fail the business operation: publishing happens after commit and
// errors are logged, not propagated.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
