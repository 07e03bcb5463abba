package order

import (
	"errors"
	"fmt"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewDraft or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewDraft or RestoreOrder constructor")

// Editability is the result of the single editability predicate. When
// Allowed is false, LockReason names the status that locked the order.
type Editability struct {
	Allowed    bool
	LockReason string
}

// Order is the aggregate root coordinating recipients, the status state
// machine and the editability policy. An order starts life as a draft (fully
// mutable, no order number), is promoted to Open by Submit, and from then on
// changes only through explicit operations that re-derive the aggregate
// status from the recipient sub-statuses.
//
// Invariants:
//   - a Draft has no order number; the number is assigned at submission and
//     immutable afterwards
//   - the order-level status past Draft is always DeriveStatus of the
//     recipients; no stored value can diverge from the recomputation
//   - recipient patches are applied all-or-nothing
//   - payment totals are recomputed from recipients on demand, never cached
type Order struct {
	id          kernel.UUID
	orderNumber string

	tenantID   kernel.UUID
	customerID kernel.UUID

	caseNumber          string
	jurisdiction        string
	documentType        string
	deadline            time.Time
	specialInstructions string

	documentURL       string
	documentPageCount int

	status     Status
	recipients []*Recipient

	createdAt   time.Time
	completedAt *time.Time

	// version backs the repository's optimistic concurrency check; the
	// domain never inspects it.
	version int64

	isConstructed bool
}

// NewDraft creates a new draft order owned by the authoring customer.
// Drafts are mutable in full and carry no order number.
func NewDraft(id, tenantID, customerID kernel.UUID, now time.Time) (*Order, error) {
	o := &Order{
		status:        Draft,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. Used only by
// repository mapping code; all validation of stored state happens here.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	tenantID, customerID kernel.UUID,
	caseNumber, jurisdiction, documentType string,
	deadline time.Time,
	specialInstructions string,
	documentURL string,
	documentPageCount int,
	status Status,
	recipients []*Recipient,
	createdAt time.Time,
	completedAt *time.Time,
	version int64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		customerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if status != Draft && orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("order number")
	}
	for _, r := range recipients {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                  id,
		orderNumber:         orderNumber,
		tenantID:            tenantID,
		customerID:          customerID,
		caseNumber:          caseNumber,
		jurisdiction:        jurisdiction,
		documentType:        documentType,
		deadline:            deadline,
		specialInstructions: specialInstructions,
		documentURL:         documentURL,
		documentPageCount:   documentPageCount,
		status:              status,
		recipients:          recipients,
		createdAt:           createdAt,
		completedAt:         completedAt,
		version:             version,
		isConstructed:       true,
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// OrderNumber returns the human-readable number, empty while Draft.
func (o *Order) OrderNumber() string { return o.orderNumber }

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.UUID { return o.tenantID }

// CustomerID returns the authoring customer.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// CaseNumber returns the court case number.
func (o *Order) CaseNumber() string { return o.caseNumber }

// Jurisdiction returns the jurisdiction.
func (o *Order) Jurisdiction() string { return o.jurisdiction }

// DocumentType returns the served document's type.
func (o *Order) DocumentType() string { return o.documentType }

// Deadline returns the service deadline.
func (o *Order) Deadline() time.Time { return o.deadline }

// SpecialInstructions returns free-form instructions for the server.
func (o *Order) SpecialInstructions() string { return o.specialInstructions }

// DocumentURL returns the attached document's location, empty when none.
func (o *Order) DocumentURL() string { return o.documentURL }

// DocumentPageCount returns the attached document's page count.
func (o *Order) DocumentPageCount() int { return o.documentPageCount }

// Status returns the current order-level status.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// CompletedAt returns the completion timestamp, nil while not completed.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// Version returns the optimistic concurrency token for persistence.
func (o *Order) Version() int64 { return o.version }

// Recipients returns the recipients in insertion order. The slice is a copy;
// the elements are the aggregate's own entities and must not be mutated by
// callers.
func (o *Order) Recipients() []*Recipient {
	out := make([]*Recipient, len(o.recipients))
	copy(out, o.recipients)
	return out
}

// Recipient returns the recipient with the given id.
func (o *Order) Recipient(id kernel.UUID) (*Recipient, error) {
	for _, r := range o.recipients {
		if r.id.IsEqual(id) {
			return r, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("recipientId", id.String())
}

// OwnedBy reports whether the order belongs to the given customer.
func (o *Order) OwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// BelongsToTenant reports whether the order belongs to the given tenant.
func (o *Order) BelongsToTenant(tenantID kernel.UUID) bool {
	return o.tenantID.IsEqual(tenantID)
}

// Editability is the single editability predicate consulted by every edit
// surface. It must be re-evaluated at commit time, not only at form-open
// time, because the status may have advanced in between.
func (o *Order) Editability() Editability {
	allowed, reason := o.status.CanEdit()
	return Editability{Allowed: allowed, LockReason: reason}
}

// requireEditable converts a denied editability check into a ConflictError.
func (o *Order) requireEditable() error {
	if e := o.Editability(); !e.Allowed {
		return errs.NewConflictErrorWithCause("order status",
			fmt.Errorf("order %s is not editable: %s", o.id, e.LockReason))
	}
	return nil
}

// ApplyPatch merges order-level fields. Subject to the editability policy.
func (o *Order) ApplyPatch(patch Patch) error {
	if err := o.requireEditable(); err != nil {
		return err
	}

	o.applyPatchFields(patch)
	return nil
}

func (o *Order) applyPatchFields(patch Patch) {
	if patch.CaseNumber != nil {
		o.caseNumber = *patch.CaseNumber
	}
	if patch.Jurisdiction != nil {
		o.jurisdiction = *patch.Jurisdiction
	}
	if patch.DocumentType != nil {
		o.documentType = *patch.DocumentType
	}
	if patch.Deadline != nil {
		o.deadline = *patch.Deadline
	}
	if patch.SpecialInstructions != nil {
		o.specialInstructions = *patch.SpecialInstructions
	}
}

// AttachDocument records an uploaded document's location and page count.
func (o *Order) AttachDocument(url string, pageCount int) error {
	if err := o.requireEditable(); err != nil {
		return err
	}
	if url == "" {
		return errs.NewValueIsRequiredError("document url")
	}
	if pageCount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("document page count",
			fmt.Errorf("%d is not greater than 0", pageCount))
	}

	o.documentURL = url
	o.documentPageCount = pageCount
	return nil
}

// AddRecipient appends a recipient with draft defaults: Automated mode, all
// service flags false, no price.
func (o *Order) AddRecipient(id kernel.UUID) (*Recipient, error) {
	if err := o.requireEditable(); err != nil {
		return nil, err
	}
	for _, existing := range o.recipients {
		if existing.id.IsEqual(id) {
			return nil, errs.NewConflictErrorWithCause("recipientId",
				fmt.Errorf("recipient %s already exists", id))
		}
	}

	r, err := NewRecipient(id)
	if err != nil {
		return nil, err
	}

	o.recipients = append(o.recipients, r)
	return r, nil
}

// RemoveRecipient deletes a recipient from a draft. Recipients cannot be
// removed from a submitted order, only edited.
func (o *Order) RemoveRecipient(id kernel.UUID) error {
	if o.status != Draft {
		return errs.NewConflictErrorWithCause("order status",
			fmt.Errorf("recipients can only be removed from a draft, order is %s", o.status))
	}

	for i, r := range o.recipients {
		if r.id.IsEqual(id) {
			o.recipients = append(o.recipients[:i], o.recipients[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("recipientId", id.String())
}

// validateRecipientPatch applies a patch to a clone and checks the rules that
// gate recipient edits. Returns the patched clone on success.
func (o *Order) validateRecipientPatch(r *Recipient, patch RecipientPatch) (*Recipient, error) {
	if patch.TouchesPrice() && !r.status.AcceptsPriceChanges() {
		return nil, errs.NewConflictErrorWithCause("recipient status",
			fmt.Errorf("recipient %s is %s, price-affecting fields are locked", r.id, r.status))
	}

	patched := r.clone()
	patched.applyPatch(patch)

	// Draft recipients are filled in incrementally and validated at
	// submission; recipients of a submitted order must hold the
	// service-method invariant after every save.
	if o.status != Draft && !patched.options.HasServiceMethod() {
		return nil, errs.NewValueIsInvalidErrorWithCause("service options",
			fmt.Errorf("recipient %s would be left with neither process service nor certified mail", r.id))
	}

	return patched, nil
}

// UpdateRecipient merges a patch into a recipient. The whole patch is
// rejected if any rule is violated; a rejected update leaves the recipient
// untouched.
func (o *Order) UpdateRecipient(id kernel.UUID, patch RecipientPatch) error {
	if err := o.requireEditable(); err != nil {
		return err
	}

	for i, r := range o.recipients {
		if !r.id.IsEqual(id) {
			continue
		}
		patched, err := o.validateRecipientPatch(r, patch)
		if err != nil {
			return err
		}
		o.recipients[i] = patched
		return nil
	}
	return errs.NewObjectNotFoundError("recipientId", id.String())
}

// SetAssignmentMode switches how a recipient's server is chosen. Only
// allowed while the recipient's price is still open: mode determines the
// pricing path.
func (o *Order) SetAssignmentMode(id kernel.UUID, mode AssignmentMode) error {
	if err := o.requireEditable(); err != nil {
		return err
	}

	r, err := o.Recipient(id)
	if err != nil {
		return err
	}
	if !r.status.AcceptsPriceChanges() {
		return errs.NewConflictErrorWithCause("recipient status",
			fmt.Errorf("recipient %s is %s, assignment mode is locked", r.id, r.status))
	}

	return r.setAssignmentMode(mode)
}

// SelectServer records the customer's chosen server for a Guided recipient.
// No bid is created: guided assignment bypasses bidding entirely.
func (o *Order) SelectServer(id, serverID kernel.UUID) error {
	if err := o.requireEditable(); err != nil {
		return err
	}

	r, err := o.Recipient(id)
	if err != nil {
		return err
	}
	return r.selectServer(serverID)
}

// Submit promotes a draft to an open order: every recipient must pass its
// submission invariants, the order number is assigned at this instant, and
// guided recipients with a selected server become assigned immediately.
func (o *Order) Submit(orderNumber string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	newStatus, err := o.status.Submit()
	if err != nil {
		return err
	}
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	if len(o.recipients) == 0 {
		return errs.NewValueIsRequiredError("recipients")
	}
	if o.deadline.IsZero() {
		return errs.NewValueIsRequiredError("deadline")
	}

	var violations []error
	for _, r := range o.recipients {
		if err := r.ValidateForSubmission(); err != nil {
			violations = append(violations, err)
		}
	}
	if err := errors.Join(violations...); err != nil {
		return err
	}

	o.status = newStatus
	o.orderNumber = orderNumber
	for _, r := range o.recipients {
		r.confirmGuidedAssignment()
	}
	o.recomputeStatus(now)
	return nil
}

// ApplyUpdate applies an order-level patch plus a list of recipient patches
// as a single unit. The entire update is rejected if any recipient patch is
// invalid; partial application is not permitted. Editability is re-checked
// here, at commit time.
func (o *Order) ApplyUpdate(patch Patch, recipientUpdates []RecipientUpdate) error {
	if err := o.requireEditable(); err != nil {
		return err
	}

	// Validate every patch against a clone before committing anything.
	patched := make(map[int]*Recipient, len(recipientUpdates))
	for _, ru := range recipientUpdates {
		idx := -1
		for i, r := range o.recipients {
			if r.id.IsEqual(ru.RecipientID) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return errs.NewObjectNotFoundError("recipientId", ru.RecipientID.String())
		}

		base := o.recipients[idx]
		if prior, ok := patched[idx]; ok {
			base = prior
		}
		p, err := o.validateRecipientPatch(base, ru.Patch)
		if err != nil {
			return err
		}
		patched[idx] = p
	}

	for idx, p := range patched {
		o.recipients[idx] = p
	}
	o.applyPatchFields(patch)
	return nil
}

// MarkRecipientBidding records that a bid was submitted against an automated
// recipient, moving it from Open to Bidding.
func (o *Order) MarkRecipientBidding(id kernel.UUID, now time.Time) error {
	r, err := o.Recipient(id)
	if err != nil {
		return err
	}
	if err := r.markBidding(); err != nil {
		return err
	}

	o.recomputeStatus(now)
	return nil
}

// BindServer commits a server and a final price to an automated recipient as
// the result of bid acceptance, then re-derives the order status. Fails with
// a ConflictError when the recipient is no longer accepting assignment.
func (o *Order) BindServer(recipientID, serverID kernel.UUID, finalPrice kernel.Money, now time.Time) error {
	r, err := o.Recipient(recipientID)
	if err != nil {
		return err
	}
	if err := r.bindServer(serverID, finalPrice); err != nil {
		return err
	}

	o.recomputeStatus(now)
	return nil
}

// RecordDeliveryAttempt registers a delivery attempt on a recipient. The
// first attempt on any recipient moves the order to InProgress.
func (o *Order) RecordDeliveryAttempt(recipientID kernel.UUID, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewConflictErrorWithCause("order status",
			fmt.Errorf("order %s is %s", o.id, o.status))
	}

	r, err := o.Recipient(recipientID)
	if err != nil {
		return err
	}
	if err := r.recordAttempt(); err != nil {
		return err
	}

	o.recomputeStatus(now)
	return nil
}

// CompleteRecipient consumes a successful terminal delivery signal for one
// recipient. When every recipient has completed, the order completes.
func (o *Order) CompleteRecipient(recipientID kernel.UUID, now time.Time) error {
	r, err := o.Recipient(recipientID)
	if err != nil {
		return err
	}
	if err := r.complete(); err != nil {
		return err
	}

	o.recomputeStatus(now)
	return nil
}

// FailRecipient consumes the external delivery policy's exhaustion signal
// for one recipient.
func (o *Order) FailRecipient(recipientID kernel.UUID, now time.Time) error {
	r, err := o.Recipient(recipientID)
	if err != nil {
		return err
	}
	if err := r.fail(); err != nil {
		return err
	}

	o.recomputeStatus(now)
	return nil
}

// Cancel terminates the order explicitly. Once cancelled, no further
// mutation is permitted.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// recomputeStatus re-derives the aggregate status from the recipients and
// stamps completedAt on the transition into Completed.
func (o *Order) recomputeStatus(now time.Time) {
	o.status = DeriveStatus(o.status, o.recipients)
	if o.status == Completed && o.completedAt == nil {
		t := now
		o.completedAt = &t
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantId", err)
	}
	o.tenantID = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}
