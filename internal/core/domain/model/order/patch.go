package order

import (
	"time"

	"procserve/internal/core/domain/model/kernel"
)

// RecipientPatch is a partial update of a recipient. Nil fields are left
// untouched; non-nil fields are merged. Patches are applied atomically by
// the aggregate: a patch that would violate an invariant is rejected as a
// whole.
type RecipientPatch struct {
	Name    *string
	Address *string
	City    *string
	State   *string
	ZipCode *string

	ProcessService *bool
	CertifiedMail  *bool
	RushService    *bool
	RemoteLocation *bool

	QuotedPrice     *kernel.Money
	NegotiatedPrice *kernel.Money
}

// TouchesPrice reports whether the patch modifies any price-affecting field.
// Price-affecting fields of a recipient are only editable while its own
// status still accepts price changes, even when the parent order does.
func (p RecipientPatch) TouchesPrice() bool {
	return p.ProcessService != nil ||
		p.CertifiedMail != nil ||
		p.RushService != nil ||
		p.RemoteLocation != nil ||
		p.QuotedPrice != nil ||
		p.NegotiatedPrice != nil
}

// RecipientUpdate pairs a recipient id with its patch inside an order-level
// update.
type RecipientUpdate struct {
	RecipientID kernel.UUID
	Patch       RecipientPatch
}

// Patch is a partial update of order-level fields. Nil fields are left
// untouched.
type Patch struct {
	CaseNumber          *string
	Jurisdiction        *string
	DocumentType        *string
	Deadline            *time.Time
	SpecialInstructions *string
}
