package commands

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a partial update of a submitted order. The
// whole patch set is applied atomically: if any recipient change violates an
// invariant, no field of the order changes.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	identity         ports.IdentityContext
	patch            order.Patch
	recipientUpdates []order.RecipientUpdate

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to patch a submitted order.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	identity ports.IdentityContext,
	patch order.Patch,
	recipientUpdates []order.RecipientUpdate,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		guard:            guard.NewConstructorGuard(),
		patch:            patch,
		recipientUpdates: recipientUpdates,
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setIdentity(identity),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the order being patched.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Identity returns the acting identity.
func (c UpdateOrderCommand) Identity() ports.IdentityContext {
	return c.identity
}

// Patch returns the order-level field changes.
func (c UpdateOrderCommand) Patch() order.Patch {
	return c.patch
}

// RecipientUpdates returns the per-recipient patches.
func (c UpdateOrderCommand) RecipientUpdates() []order.RecipientUpdate {
	return c.recipientUpdates
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	c.identity = identity
	return nil
}
