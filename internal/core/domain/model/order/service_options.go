package order

import (
	"fmt"

	"procserve/internal/pkg/errs"
)

// AssignmentMode is a closed tagged union determining how a recipient's
// process server is chosen.
type AssignmentMode int

const (
	// ModeUnknown represents an invalid or undefined assignment mode.
	ModeUnknown AssignmentMode = iota

	// Automated is the open-bidding mode: the server is chosen via
	// competitive bid acceptance.
	Automated

	// Guided is the direct assignment mode: the customer selects a specific
	// server up front, bypassing bidding entirely.
	Guided
)

// String returns "AUTOMATED" or "GUIDED", matching the wire representation.
func (m AssignmentMode) String() string {
	switch m {
	case Automated:
		return "AUTOMATED"
	case Guided:
		return "GUIDED"
	default:
		return "UNKNOWN"
	}
}

// Validate checks that the mode is one of the two defined values.
func (m AssignmentMode) Validate() error {
	if m != Automated && m != Guided {
		return errs.NewValueIsInvalidErrorWithCause("assignment mode",
			fmt.Errorf("%d is not a valid assignment mode", int(m)))
	}
	return nil
}

// ParseAssignmentMode converts a wire string to an AssignmentMode.
func ParseAssignmentMode(s string) (AssignmentMode, error) {
	switch s {
	case "AUTOMATED":
		return Automated, nil
	case "GUIDED":
		return Guided, nil
	default:
		return ModeUnknown, errs.NewValueIsInvalidErrorWithCause("assignment mode",
			fmt.Errorf("%q is not a valid assignment mode", s))
	}
}

// ServiceOptions is the set of independent service flags on a recipient.
// ProcessService and CertifiedMail are the service methods; RushService and
// RemoteLocation are add-ons. The richer flag model is authoritative; any
// single-enum "service type" exists only as a serialization artifact at the
// transport layer.
type ServiceOptions struct {
	ProcessService bool
	CertifiedMail  bool
	RushService    bool
	RemoteLocation bool
}

// HasServiceMethod reports whether at least one of the two service methods is
// selected. A recipient without a service method is invalid for submission.
func (o ServiceOptions) HasServiceMethod() bool {
	return o.ProcessService || o.CertifiedMail
}
