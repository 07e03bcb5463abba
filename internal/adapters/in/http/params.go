package http

import (
	"strconv"
	"strings"

	"procserve/internal/core/domain/model/order"
	"procserve/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// parseOrderStatus maps a query-param status name to the domain value.
// Matching is case-insensitive.
func parseOrderStatus(raw string) (order.Status, error) {
	statuses := []order.Status{
		order.Draft, order.Open, order.Bidding, order.PartiallyAssigned,
		order.Assigned, order.InProgress, order.Completed,
		order.Failed, order.Cancelled,
	}
	for _, s := range statuses {
		if strings.EqualFold(s.String(), raw) {
			return s, nil
		}
	}
	return order.Unknown, errs.NewValueIsInvalidError("status")
}

// intQueryParam reads an integer query parameter, falling back to the
// default on absence or garbage. Range checks happen in the query object.
func intQueryParam(ctx echo.Context, name string, fallback int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
