package commands

import (
	"context"
	"log/slog"

	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
)

// publishOrderEvent emits a lifecycle event after a successful commit.
// Publish failures are logged and swallowed: the state change is already
// durable and must not be reported as failed because a broker hiccuped.
func publishOrderEvent(ctx context.Context, publisher ports.OrderEventPublisher, o *order.Order, kind string) {
	event := ports.OrderEvent{
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		TenantID:    o.TenantID(),
		Status:      o.Status().String(),
		Kind:        kind,
	}

	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("order event publish failed",
			"orderId", o.ID().String(),
			"kind", kind,
			"error", err)
	}
}
