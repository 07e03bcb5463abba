package http

import (
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the edge gateway after session validation. The
// opaque session token never reaches this service.
const (
	headerTenantID = "X-Tenant-ID"
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// identityFromRequest builds the acting identity from the gateway headers.
func identityFromRequest(ctx echo.Context) (ports.IdentityContext, error) {
	tenantID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerTenantID))
	if err != nil {
		return ports.IdentityContext{}, errs.NewUnauthorizedErrorWithCause("tenantId", err)
	}

	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return ports.IdentityContext{}, errs.NewUnauthorizedErrorWithCause("userId", err)
	}

	identity := ports.IdentityContext{
		TenantID: tenantID,
		UserID:   userID,
		Role:     ports.Role(ctx.Request().Header.Get(headerUserRole)),
	}
	if err = identity.Validate(); err != nil {
		return ports.IdentityContext{}, errs.NewUnauthorizedErrorWithCause("role", err)
	}

	return identity, nil
}
