package order

import (
	"fmt"

	"procserve/internal/pkg/errs"
)

// RecipientStatus mirrors a subset of the order lifecycle at the level of a
// single recipient. The order-level status is derived from these values.
type RecipientStatus int

const (
	// RecipientUnknown represents an invalid or undefined recipient status.
	RecipientUnknown RecipientStatus = iota

	// RecipientOpen is the initial state of a submitted recipient: no bids,
	// no bound server.
	RecipientOpen

	// RecipientBidding indicates an automated recipient has received at least
	// one bid.
	RecipientBidding

	// RecipientAssigned indicates a server is bound, either by bid acceptance
	// or guided selection confirmed at submission.
	RecipientAssigned

	// RecipientInProgress indicates at least one delivery attempt was
	// recorded.
	RecipientInProgress

	// RecipientCompleted indicates successful terminal delivery.
	RecipientCompleted

	// RecipientFailed indicates attempts were exhausted per the external
	// delivery policy.
	RecipientFailed
)

func getRecipientStatusStrings() map[RecipientStatus]string {
	return map[RecipientStatus]string{
		RecipientUnknown:    "Unknown",
		RecipientOpen:       "Open",
		RecipientBidding:    "Bidding",
		RecipientAssigned:   "Assigned",
		RecipientInProgress: "InProgress",
		RecipientCompleted:  "Completed",
		RecipientFailed:     "Failed",
	}
}

// String returns the human-readable name of the recipient status.
func (s RecipientStatus) String() string {
	if str, ok := getRecipientStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the RecipientStatus holds one of the defined values.
func (s RecipientStatus) Validate() error {
	if s == RecipientUnknown {
		return errs.NewValueIsInvalidErrorWithCause("recipient status",
			fmt.Errorf("%d is not a valid recipient status", int(s)))
	}
	if _, ok := getRecipientStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("recipient status",
			fmt.Errorf("%d is not a valid recipient status", int(s)))
	}
	return nil
}

// IsTerminal reports whether the recipient reached a final delivery state.
func (s RecipientStatus) IsTerminal() bool {
	return s == RecipientCompleted || s == RecipientFailed
}

// AcceptsPriceChanges reports whether price-affecting fields of the recipient
// may still be modified. Once a server is bound or delivery started, the
// price is settled.
func (s RecipientStatus) AcceptsPriceChanges() bool {
	return s == RecipientOpen || s == RecipientBidding
}

// PriceStatus tracks the negotiation state of a recipient's price.
type PriceStatus int

const (
	// PriceUnset means no price has been quoted or negotiated yet.
	PriceUnset PriceStatus = iota

	// PriceQuoted means a server-set quote exists.
	PriceQuoted

	// PriceNegotiating means customer and server are exchanging amounts.
	PriceNegotiating

	// PriceAccepted means a final price is agreed and authoritative.
	PriceAccepted
)

// String returns the human-readable name of the price status.
func (s PriceStatus) String() string {
	switch s {
	case PriceUnset:
		return "Unset"
	case PriceQuoted:
		return "Quoted"
	case PriceNegotiating:
		return "Negotiating"
	case PriceAccepted:
		return "Accepted"
	default:
		return "Unset"
	}
}
