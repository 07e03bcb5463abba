package ports

import (
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/pkg/errs"
)

// Role is the actor's role as resolved by the external identity service.
type Role string

// Roles known to the core.
const (
	RoleCustomer      Role = "customer"
	RoleAdmin         Role = "admin"
	RoleProcessServer Role = "process_server"
)

// IdentityContext is the pre-validated identity of the acting user. It is
// produced by the Auth collaborator from an opaque session token; the core
// trusts it and never parses tokens itself.
type IdentityContext struct {
	TenantID kernel.UUID
	UserID   kernel.UUID
	Role     Role
}

// Validate checks the identity carries a tenant, a user and a known role.
func (i IdentityContext) Validate() error {
	if err := i.TenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	if err := i.UserID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	switch i.Role {
	case RoleCustomer, RoleAdmin, RoleProcessServer:
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

// CanActFor reports whether the identity may act on objects of the given
// tenant.
func (i IdentityContext) CanActFor(tenantID kernel.UUID) bool {
	return i.TenantID.IsEqual(tenantID)
}

// IsAdmin reports whether the identity holds the tenant admin role.
func (i IdentityContext) IsAdmin() bool {
	return i.Role == RoleAdmin
}
