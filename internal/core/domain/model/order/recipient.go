package order

import (
	"errors"
	"fmt"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/pkg/errs"
)

// ErrRecipientIsNotConstructed is returned when a Recipient instance was not
// created through NewRecipient or RestoreRecipient.
var ErrRecipientIsNotConstructed = errors.New("Recipient must be created via NewRecipient constructor")

// Recipient is a single delivery/service destination within an Order and the
// entity the pricing and bidding workflows revolve around. It is owned by the
// Order aggregate: all mutation goes through aggregate-root methods so the
// derived order status and editability rules are enforced in one place.
//
// Invariants:
//   - at least one of {ProcessService, CertifiedMail} must be set once the
//     recipient is eligible for submission
//   - Guided recipients must have a selected server before the order can
//     leave Draft
//   - Automated recipients must have no bound server until a bid is accepted
type Recipient struct {
	id   kernel.UUID
	name string

	address string
	city    string
	state   string
	zipCode string

	mode             AssignmentMode
	assignedServerID *kernel.UUID

	options ServiceOptions

	priceStatus      PriceStatus
	quotedPrice      *kernel.Money
	negotiatedPrice  *kernel.Money
	finalAgreedPrice *kernel.Money

	status           RecipientStatus
	deliveryAttempts int

	isConstructed bool
}

// NewRecipient creates a recipient with draft defaults: Automated assignment,
// all service flags false, no price, Open status. Address fields are filled
// in incrementally by autosaved patches and validated at submission, not
// here.
func NewRecipient(id kernel.UUID) (*Recipient, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Recipient{
		id:            id,
		mode:          Automated,
		priceStatus:   PriceUnset,
		status:        RecipientOpen,
		isConstructed: true,
	}, nil
}

// RestoreRecipient reconstructs a recipient from persistence with all state
// fields explicit. Used only by repository mapping code.
func RestoreRecipient(
	id kernel.UUID,
	name, address, city, state, zipCode string,
	mode AssignmentMode,
	assignedServerID *kernel.UUID,
	options ServiceOptions,
	priceStatus PriceStatus,
	quotedPrice, negotiatedPrice, finalAgreedPrice *kernel.Money,
	status RecipientStatus,
	deliveryAttempts int,
) (*Recipient, error) {
	if err := errors.Join(
		id.Validate(),
		mode.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Recipient{
		id:               id,
		name:             name,
		address:          address,
		city:             city,
		state:            state,
		zipCode:          zipCode,
		mode:             mode,
		assignedServerID: assignedServerID,
		options:          options,
		priceStatus:      priceStatus,
		quotedPrice:      quotedPrice,
		negotiatedPrice:  negotiatedPrice,
		finalAgreedPrice: finalAgreedPrice,
		status:           status,
		deliveryAttempts: deliveryAttempts,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Recipient was created through a constructor.
func (r *Recipient) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecipientIsNotConstructed
	}
	return nil
}

// ID returns the recipient's unique identifier.
func (r *Recipient) ID() kernel.UUID { return r.id }

// Name returns the recipient's name.
func (r *Recipient) Name() string { return r.name }

// Address returns the street address.
func (r *Recipient) Address() string { return r.address }

// City returns the city.
func (r *Recipient) City() string { return r.city }

// State returns the state code.
func (r *Recipient) State() string { return r.state }

// ZipCode returns the postal code.
func (r *Recipient) ZipCode() string { return r.zipCode }

// AssignmentMode returns how the recipient's server is chosen.
func (r *Recipient) AssignmentMode() AssignmentMode { return r.mode }

// AssignedServer returns the bound server's ID, or nil when unassigned.
func (r *Recipient) AssignedServer() *kernel.UUID { return r.assignedServerID }

// ServiceOptions returns the recipient's service flag set.
func (r *Recipient) ServiceOptions() ServiceOptions { return r.options }

// PriceStatus returns the negotiation state of the price.
func (r *Recipient) PriceStatus() PriceStatus { return r.priceStatus }

// QuotedPrice returns the server-set quote, or nil.
func (r *Recipient) QuotedPrice() *kernel.Money { return r.quotedPrice }

// NegotiatedPrice returns the negotiated price, or nil.
func (r *Recipient) NegotiatedPrice() *kernel.Money { return r.negotiatedPrice }

// FinalAgreedPrice returns the committed final price, or nil while pending.
func (r *Recipient) FinalAgreedPrice() *kernel.Money { return r.finalAgreedPrice }

// Status returns the recipient's lifecycle status.
func (r *Recipient) Status() RecipientStatus { return r.status }

// DeliveryAttempts returns the number of recorded delivery attempts.
func (r *Recipient) DeliveryAttempts() int { return r.deliveryAttempts }

// ValidateForSubmission checks the invariants a recipient must satisfy for
// its order to leave Draft: a name and address, at least one service method,
// a selected server for Guided mode and no bound server for Automated mode.
func (r *Recipient) ValidateForSubmission() error {
	if err := r.Validate(); err != nil {
		return err
	}

	var violations []error
	if r.name == "" {
		violations = append(violations, errs.NewValueIsRequiredError("recipient name"))
	}
	if r.address == "" {
		violations = append(violations, errs.NewValueIsRequiredError("recipient address"))
	}
	if !r.options.HasServiceMethod() {
		violations = append(violations, errs.NewValueIsInvalidErrorWithCause("service options",
			fmt.Errorf("recipient %s has neither process service nor certified mail", r.id)))
	}
	if r.mode == Guided && r.assignedServerID == nil {
		violations = append(violations, errs.NewValueIsRequiredErrorWithCause("assigned server",
			fmt.Errorf("guided recipient %s has no selected server", r.id)))
	}
	if r.mode == Automated && r.assignedServerID != nil && r.status == RecipientOpen {
		violations = append(violations, errs.NewValueIsInvalidErrorWithCause("assigned server",
			fmt.Errorf("automated recipient %s must not have a server before bid acceptance", r.id)))
	}

	return errors.Join(violations...)
}

// clone returns a deep copy used for all-or-nothing patch application.
func (r *Recipient) clone() *Recipient {
	cp := *r
	if r.assignedServerID != nil {
		v := *r.assignedServerID
		cp.assignedServerID = &v
	}
	if r.quotedPrice != nil {
		v := *r.quotedPrice
		cp.quotedPrice = &v
	}
	if r.negotiatedPrice != nil {
		v := *r.negotiatedPrice
		cp.negotiatedPrice = &v
	}
	if r.finalAgreedPrice != nil {
		v := *r.finalAgreedPrice
		cp.finalAgreedPrice = &v
	}
	return &cp
}

// applyPatch merges the non-nil fields of the patch into the recipient.
// Invariant checks are the aggregate's responsibility; applyPatch only
// merges.
func (r *Recipient) applyPatch(patch RecipientPatch) {
	if patch.Name != nil {
		r.name = *patch.Name
	}
	if patch.Address != nil {
		r.address = *patch.Address
	}
	if patch.City != nil {
		r.city = *patch.City
	}
	if patch.State != nil {
		r.state = *patch.State
	}
	if patch.ZipCode != nil {
		r.zipCode = *patch.ZipCode
	}
	if patch.ProcessService != nil {
		r.options.ProcessService = *patch.ProcessService
	}
	if patch.CertifiedMail != nil {
		r.options.CertifiedMail = *patch.CertifiedMail
	}
	if patch.RushService != nil {
		r.options.RushService = *patch.RushService
	}
	if patch.RemoteLocation != nil {
		r.options.RemoteLocation = *patch.RemoteLocation
	}
	if patch.QuotedPrice != nil {
		v := *patch.QuotedPrice
		r.quotedPrice = &v
		if r.priceStatus == PriceUnset {
			r.priceStatus = PriceQuoted
		}
	}
	if patch.NegotiatedPrice != nil {
		v := *patch.NegotiatedPrice
		r.negotiatedPrice = &v
		r.priceStatus = PriceNegotiating
	}
}

// setAssignmentMode switches the assignment mode. Switching to Guided clears
// the bidding-derived price state; switching to Automated clears the selected
// server.
func (r *Recipient) setAssignmentMode(mode AssignmentMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	if mode == r.mode {
		return nil
	}

	r.mode = mode
	switch mode {
	case Guided:
		r.finalAgreedPrice = nil
		if r.priceStatus == PriceAccepted {
			r.priceStatus = PriceUnset
		}
		if r.status == RecipientBidding {
			r.status = RecipientOpen
		}
	case Automated:
		r.assignedServerID = nil
	}
	return nil
}

// selectServer records the customer's chosen server for a Guided recipient.
func (r *Recipient) selectServer(serverID kernel.UUID) error {
	if err := serverID.Validate(); err != nil {
		return err
	}
	if r.mode != Guided {
		return errs.NewValueIsInvalidErrorWithCause("assignment mode",
			fmt.Errorf("server selection requires guided mode, recipient %s is %s", r.id, r.mode))
	}

	r.assignedServerID = &serverID
	return nil
}

// markBidding moves an automated recipient from Open to Bidding on its first
// bid. Already-bidding recipients stay put.
func (r *Recipient) markBidding() error {
	if r.mode != Automated {
		return errs.NewConflictErrorWithCause("recipient",
			fmt.Errorf("recipient %s is not in automated mode", r.id))
	}
	if r.status != RecipientOpen && r.status != RecipientBidding {
		return errs.NewConflictErrorWithCause("recipient status",
			fmt.Errorf("recipient %s is %s, bids are closed", r.id, r.status))
	}

	r.status = RecipientBidding
	return nil
}

// bindServer commits a server and a final price to an automated recipient as
// the result of bid acceptance.
func (r *Recipient) bindServer(serverID kernel.UUID, finalPrice kernel.Money) error {
	if err := serverID.Validate(); err != nil {
		return err
	}
	if r.mode != Automated {
		return errs.NewConflictErrorWithCause("recipient",
			fmt.Errorf("recipient %s is not in automated mode", r.id))
	}
	if r.status != RecipientOpen && r.status != RecipientBidding {
		return errs.NewConflictErrorWithCause("recipient status",
			fmt.Errorf("recipient %s is already %s", r.id, r.status))
	}

	r.assignedServerID = &serverID
	r.finalAgreedPrice = &finalPrice
	r.priceStatus = PriceAccepted
	r.status = RecipientAssigned
	return nil
}

// confirmGuidedAssignment marks a guided recipient as assigned at submission
// time. Guided assignment bypasses bidding entirely.
func (r *Recipient) confirmGuidedAssignment() {
	if r.mode == Guided && r.assignedServerID != nil && r.status == RecipientOpen {
		r.status = RecipientAssigned
	}
}

// recordAttempt registers a delivery attempt, moving the recipient to
// InProgress.
func (r *Recipient) recordAttempt() error {
	if r.status != RecipientAssigned && r.status != RecipientInProgress {
		return errs.NewConflictErrorWithCause("recipient status",
			fmt.Errorf("recipient %s is %s, cannot record an attempt", r.id, r.status))
	}

	r.status = RecipientInProgress
	r.deliveryAttempts++
	return nil
}

// complete marks the recipient's delivery as successfully finished.
func (r *Recipient) complete() error {
	if r.status != RecipientInProgress {
		return errs.NewConflictErrorWithCause("recipient status",
			fmt.Errorf("recipient %s is %s, cannot complete", r.id, r.status))
	}

	r.status = RecipientCompleted
	return nil
}

// fail marks the recipient's delivery as terminally failed. The decision is
// made by the external delivery-attempt subsystem; the aggregate only
// consumes the signal.
func (r *Recipient) fail() error {
	if r.status.IsTerminal() {
		return errs.NewConflictErrorWithCause("recipient status",
			fmt.Errorf("recipient %s is already %s", r.id, r.status))
	}
	if r.status != RecipientInProgress && r.status != RecipientAssigned {
		return errs.NewConflictErrorWithCause("recipient status",
			fmt.Errorf("recipient %s is %s, cannot fail", r.id, r.status))
	}

	r.status = RecipientFailed
	return nil
}
