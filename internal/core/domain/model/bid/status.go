package bid

import (
	"fmt"

	"procserve/internal/pkg/errs"
)

// Status represents the lifecycle state of a bid.
//
//	Pending ──> Accepted
//	    └─────> Rejected
//
// Both Accepted and Rejected are final.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status; the bid awaits a customer decision.
	Pending

	// Accepted means the bid won: its server and amount are bound to the
	// recipient.
	Accepted

	// Rejected means the bid lost, either explicitly or because another bid
	// on the same recipient was accepted.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Accepted:      "Accepted",
		Rejected:      "Rejected",
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the Status holds one of the defined values.
func (s Status) Validate() error {
	if s != Pending && s != Accepted && s != Rejected {
		return errs.NewValueIsInvalidErrorWithCause("bid status",
			fmt.Errorf("%d is not a valid bid status", int(s)))
	}
	return nil
}

// IsTerminal reports whether the bid reached a final decision.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Rejected
}

// Accept transitions Pending to Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewConflictErrorWithCause("bid status",
			fmt.Errorf("%s bid cannot be accepted", s))
	}
	return Accepted, nil
}

// Reject transitions Pending to Rejected.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewConflictErrorWithCause("bid status",
			fmt.Errorf("%s bid cannot be rejected", s))
	}
	return Rejected, nil
}
