package order

import (
	"fmt"

	"procserve/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions:
//
//	Draft ──> Open ──> Bidding ──> {Assigned | PartiallyAssigned} ──> InProgress ──> {Completed | Failed}
//	                                                                                      ▲
//	  Cancelled is reachable from any non-terminal state ─────────────────────────────────┘
//
// Everything past Draft is derived from the recipient sub-statuses via
// DeriveStatus; only Draft, Cancelled and the submission transition are set
// explicitly.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is a not-yet-submitted order. Fully mutable, has no order number.
	Draft

	// Open is a submitted order with no bids and no assignments yet.
	Open

	// Bidding indicates at least one automated recipient has received a bid
	// and none are assigned yet.
	Bidding

	// PartiallyAssigned indicates some but not all recipients have a bound
	// server.
	PartiallyAssigned

	// Assigned indicates every recipient has a bound server.
	Assigned

	// InProgress indicates a delivery attempt has been recorded on at least
	// one recipient.
	InProgress

	// Completed indicates all recipients reached terminal successful delivery.
	Completed

	// Failed indicates attempts were exhausted per the external delivery
	// policy. Terminal, but the order remains editable (e.g. to correct an
	// address before re-service).
	Failed

	// Cancelled is an explicit customer/admin termination. No further
	// mutation is permitted.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		Draft:             "Draft",
		Open:              "Open",
		Bidding:           "Bidding",
		PartiallyAssigned: "PartiallyAssigned",
		Assigned:          "Assigned",
		InProgress:        "InProgress",
		Completed:         "Completed",
		Failed:            "Failed",
		Cancelled:         "Cancelled",
	}
}

// String returns the human-readable name of the status, or "Unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the Status holds one of the defined values.
// Used when reconstructing orders from persistence.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// IsTerminal reports whether no further lifecycle transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed || s == Cancelled
}

// CanEdit reports whether an order in this status may still be edited.
// Editing is denied outright for InProgress, Completed and Cancelled; every
// other status allows edits (subject to per-recipient restrictions). The
// second return value carries the lock reason when editing is denied.
//
// This predicate is the single source of truth for editability: every edit
// surface must consult it (through Order.Editability) rather than re-derive
// the rule.
func (s Status) CanEdit() (bool, string) {
	switch s {
	case InProgress:
		return false, "order is in progress"
	case Completed:
		return false, "order is completed"
	case Cancelled:
		return false, "order is cancelled"
	default:
		return true, ""
	}
}

// Submit transitions Draft to Open. Any other source status fails.
func (s Status) Submit() (Status, error) {
	if s != Draft {
		return 0, errs.NewConflictErrorWithCause("order status",
			fmt.Errorf("%s cannot be submitted", s))
	}
	return Open, nil
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, errs.NewConflictErrorWithCause("order status",
			fmt.Errorf("%s cannot be cancelled", s))
	}
	return Cancelled, nil
}

// DeriveStatus computes the order-level status as a pure aggregation over the
// recipient sub-statuses. Draft and Cancelled orders keep their explicit
// status; every other status is fully determined by the recipients:
//
//   - all recipients completed                      -> Completed
//   - all recipients terminal, at least one failed  -> Failed
//   - any recipient in progress or terminal         -> InProgress
//   - every recipient has a bound server            -> Assigned
//   - some recipients have a bound server           -> PartiallyAssigned
//   - any recipient is receiving bids               -> Bidding
//   - otherwise                                     -> Open
//
// The function is deterministic and side-effect free so every surface that
// re-derives "assigned vs partially assigned" gets the same answer.
func DeriveStatus(current Status, recipients []*Recipient) Status {
	if current == Draft || current == Cancelled || current == Unknown {
		return current
	}
	if len(recipients) == 0 {
		return Open
	}

	var completed, failed, terminal, inProgress, assigned, bidding int
	for _, r := range recipients {
		switch r.Status() {
		case RecipientCompleted:
			completed++
			terminal++
		case RecipientFailed:
			failed++
			terminal++
		case RecipientInProgress:
			inProgress++
		case RecipientAssigned:
			assigned++
		case RecipientBidding:
			bidding++
		}
	}

	total := len(recipients)
	switch {
	case completed == total:
		return Completed
	case terminal == total && failed > 0:
		return Failed
	case inProgress > 0 || terminal > 0:
		return InProgress
	case assigned == total:
		return Assigned
	case assigned > 0:
		return PartiallyAssigned
	case bidding > 0:
		return Bidding
	default:
		return Open
	}
}
