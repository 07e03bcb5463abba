package commands

import (
	"errors"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"
	"procserve/internal/pkg/guard"
)

var ErrRecordDeliveryAttemptCommandIsNotConstructed = errors.New(
	"RecordDeliveryAttemptCommand must be created via NewRecordDeliveryAttemptCommand constructor",
)

// AttemptOutcome is the result of one service attempt in the field.
type AttemptOutcome string

// Attempt outcomes reported by process servers.
const (
	// OutcomeAttempted records an unsuccessful try; the recipient moves to
	// in progress and keeps accumulating attempts.
	OutcomeAttempted AttemptOutcome = "attempted"
	// OutcomeDelivered records successful service; the recipient completes.
	OutcomeDelivered AttemptOutcome = "delivered"
	// OutcomeFailed records that service is being abandoned for this
	// recipient.
	OutcomeFailed AttemptOutcome = "failed"
)

// RecordDeliveryAttemptCommand represents a field report from the assigned
// process server about one recipient.
type RecordDeliveryAttemptCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	recipientID kernel.UUID
	identity    ports.IdentityContext
	outcome     AttemptOutcome

	guard guard.ConstructorGuard
}

// NewRecordDeliveryAttemptCommand creates a command to record an attempt.
func NewRecordDeliveryAttemptCommand(
	orderID, recipientID kernel.UUID,
	identity ports.IdentityContext,
	outcome AttemptOutcome,
) (RecordDeliveryAttemptCommand, error) {
	cmd := RecordDeliveryAttemptCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRecipientID(recipientID),
		cmd.setIdentity(identity),
		cmd.setOutcome(outcome),
	); err != nil {
		return RecordDeliveryAttemptCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDeliveryAttemptCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryAttemptCommandIsNotConstructed)
}

// OrderID returns the order being reported on.
func (c RecordDeliveryAttemptCommand) OrderID() kernel.UUID { return c.orderID }

// RecipientID returns the recipient being reported on.
func (c RecordDeliveryAttemptCommand) RecipientID() kernel.UUID { return c.recipientID }

// Identity returns the reporting identity.
func (c RecordDeliveryAttemptCommand) Identity() ports.IdentityContext { return c.identity }

// Outcome returns the reported attempt outcome.
func (c RecordDeliveryAttemptCommand) Outcome() AttemptOutcome { return c.outcome }

func (c *RecordDeliveryAttemptCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordDeliveryAttemptCommand) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	c.recipientID = recipientID
	return nil
}

func (c *RecordDeliveryAttemptCommand) setIdentity(identity ports.IdentityContext) error {
	if err := identity.Validate(); err != nil {
		return err
	}

	c.identity = identity
	return nil
}

func (c *RecordDeliveryAttemptCommand) setOutcome(outcome AttemptOutcome) error {
	switch outcome {
	case OutcomeAttempted, OutcomeDelivered, OutcomeFailed:
		c.outcome = outcome
		return nil
	default:
		return errs.NewValueIsInvalidError("outcome")
	}
}
