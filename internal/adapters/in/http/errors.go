package http

import (
	"errors"
	"net/http"

	"procserve/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorDTO is the JSON error envelope.
type ErrorDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps core error kinds to HTTP statuses. Anything that is not
// one of the errs kinds is a 500 with a generic message; internals never
// leak to clients.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal error"

	var (
		required   *errs.ValueIsRequiredError
		invalid    *errs.ValueIsInvalidError
		outOfRange *errs.ValueIsOutOfRangeError
		notFound   *errs.ObjectNotFoundError
		conflict   *errs.ConflictError
		forbidden  *errs.UnauthorizedError
	)

	switch {
	case errors.As(err, &required), errors.As(err, &invalid), errors.As(err, &outOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.As(err, &conflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.As(err, &forbidden):
		status = http.StatusForbidden
		message = err.Error()
	}

	return ctx.JSON(status, ErrorDTO{
		Code:    status,
		Message: message,
	})
}
