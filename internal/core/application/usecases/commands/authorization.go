package commands

import (
	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"
)

// authorizeOrderAccess checks the acting identity may modify the given order
// or draft: same tenant, and either the owning customer or a tenant admin.
func authorizeOrderAccess(aggregate *order.Order, identity ports.IdentityContext, paramName string) error {
	if !aggregate.BelongsToTenant(identity.TenantID) {
		return errs.NewUnauthorizedError(paramName)
	}
	if !aggregate.OwnedBy(identity.UserID) && !identity.IsAdmin() {
		return errs.NewUnauthorizedError(paramName)
	}
	return nil
}
