package services

import (
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
)

// Standard rate table in cents. One canonical table is used for order
// creation, post-submission edits and bid acceptance alike.
const (
	ProcessServiceRateCents = 7500
	CertifiedMailRateCents  = 2500
	RushServiceRateCents    = 5000
	RemoteLocationRateCents = 4000

	// ProcessingFeePercent is applied to the order subtotal, rounded
	// half-up to cents.
	ProcessingFeePercent = 3
)

// PriceBreakdown is the result of pricing a single recipient.
//
// DueNow is what the customer owes immediately. For an automated recipient
// whose bid has not been accepted yet, the base delivery price is pending:
// PendingBase is true, DueNow carries only the add-on charges, and the UI is
// expected to present the add-on delta rather than a full total. Once a
// server and price are bound, PendingBase is false and DueNow is the full
// recipient charge.
type PriceBreakdown struct {
	// Base is the delivery/service price component: the agreed or quoted
	// price, or the sum of standard service-method rates. Zero while an
	// automated recipient's base is pending.
	Base kernel.Money

	// AddOns is the rush/remote surcharge component, always due immediately.
	AddOns kernel.Money

	// DueNow is Base + AddOns, excluding a pending base.
	DueNow kernel.Money

	// PendingBase is true when the base price awaits bid acceptance.
	PendingBase bool
}

// OrderTotal is the recomputed order-level payment summary. It is never
// cached on the order; every read recomputes it from the recipients.
type OrderTotal struct {
	// Subtotal is the sum of all recipients' DueNow amounts.
	Subtotal kernel.Money

	// ProcessingFee is ProcessingFeePercent of the subtotal, half-up.
	ProcessingFee kernel.Money

	// Total is Subtotal + ProcessingFee.
	Total kernel.Money

	// HasPendingBase is true when any recipient's base price is still
	// awaiting bid acceptance, meaning the total will grow.
	HasPendingBase bool
}

// PricingEngine is a pure, deterministic fee calculator. It has no state and
// no side effects, and it never fails for business-rule reasons: it prices
// whatever state it is given. Only mutation operations validate.
type PricingEngine struct{}

// NewPricingEngine creates a PricingEngine.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// ComputeRecipientPrice prices a single recipient from its service-option
// flags, assignment mode and price state.
//
// Rules:
//   - Automated, final price bound: the final agreed price already includes
//     add-ons (they were folded in at acceptance), so it alone is due.
//   - Automated, no accepted bid: the base is pending; only add-ons are due.
//   - Guided with a negotiated or quoted price: that price is authoritative
//     for the service methods end-to-end (per-flag method rates are NOT
//     re-derived) and rush/remote add-ons stack on top.
//   - Guided without a price: standard per-flag rates for the selected
//     service methods, plus add-ons.
func (PricingEngine) ComputeRecipientPrice(r *order.Recipient) PriceBreakdown {
	addOns := addOnCharges(r.ServiceOptions())

	if r.AssignmentMode() == order.Automated {
		if final := r.FinalAgreedPrice(); final != nil {
			return PriceBreakdown{
				Base:   *final,
				AddOns: addOns,
				DueNow: *final,
			}
		}
		return PriceBreakdown{
			AddOns:      addOns,
			DueNow:      addOns,
			PendingBase: true,
		}
	}

	// Guided mode.
	if negotiated := authoritativePrice(r); negotiated != nil {
		return PriceBreakdown{
			Base:   *negotiated,
			AddOns: addOns,
			DueNow: negotiated.Add(addOns),
		}
	}

	base := standardMethodRates(r.ServiceOptions())
	return PriceBreakdown{
		Base:   base,
		AddOns: addOns,
		DueNow: base.Add(addOns),
	}
}

// ComputeOrderTotal sums the recipients' DueNow amounts and applies the
// processing fee. Callable for live preview and for server-side validation
// of a submitted total alike.
func (e PricingEngine) ComputeOrderTotal(o *order.Order) OrderTotal {
	subtotal := kernel.Zero()
	pending := false
	for _, r := range o.Recipients() {
		breakdown := e.ComputeRecipientPrice(r)
		subtotal = subtotal.Add(breakdown.DueNow)
		pending = pending || breakdown.PendingBase
	}

	fee := subtotal.PercentHalfUp(ProcessingFeePercent)
	return OrderTotal{
		Subtotal:       subtotal,
		ProcessingFee:  fee,
		Total:          subtotal.Add(fee),
		HasPendingBase: pending,
	}
}

// AcceptedBidPrice resolves the final recipient price committed at bid
// acceptance: the winning bid amount plus the rush/remote add-ons.
func (PricingEngine) AcceptedBidPrice(bidAmount kernel.Money, options order.ServiceOptions) kernel.Money {
	return bidAmount.Add(addOnCharges(options))
}

// authoritativePrice returns the negotiated price when present, otherwise
// the quote, otherwise nil. A negotiated price supersedes a quote.
func authoritativePrice(r *order.Recipient) *kernel.Money {
	if p := r.NegotiatedPrice(); p != nil {
		return p
	}
	return r.QuotedPrice()
}

func addOnCharges(options order.ServiceOptions) kernel.Money {
	cents := int64(0)
	if options.RushService {
		cents += RushServiceRateCents
	}
	if options.RemoteLocation {
		cents += RemoteLocationRateCents
	}
	m, _ := kernel.NewMoneyFromCents(cents)
	return m
}

func standardMethodRates(options order.ServiceOptions) kernel.Money {
	cents := int64(0)
	if options.ProcessService {
		cents += ProcessServiceRateCents
	}
	if options.CertifiedMail {
		cents += CertifiedMailRateCents
	}
	m, _ := kernel.NewMoneyFromCents(cents)
	return m
}
