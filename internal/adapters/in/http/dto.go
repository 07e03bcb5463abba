package http

import (
	"time"

	"procserve/internal/core/application/usecases/commands"
	"procserve/internal/core/application/usecases/queries"
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/pkg/errs"
)

// DraftSaveRequest is one autosave payload. The recipient list is the full
// desired set; recipients missing from it are removed from the draft.
type DraftSaveRequest struct {
	EditSeq             int64                  `json:"editSeq"`
	CaseNumber          *string                `json:"caseNumber,omitempty"`
	Jurisdiction        *string                `json:"jurisdiction,omitempty"`
	DocumentType        *string                `json:"documentType,omitempty"`
	Deadline            *time.Time             `json:"deadline,omitempty"`
	SpecialInstructions *string                `json:"specialInstructions,omitempty"`
	Recipients          []RecipientSaveRequest `json:"recipients"`
}

// RecipientSaveRequest is one recipient inside a draft autosave or an order
// patch. All fields are optional; absent fields stay untouched.
type RecipientSaveRequest struct {
	ID                   *string `json:"id,omitempty"`
	Name                 *string `json:"name,omitempty"`
	Address              *string `json:"address,omitempty"`
	City                 *string `json:"city,omitempty"`
	State                *string `json:"state,omitempty"`
	ZipCode              *string `json:"zipCode,omitempty"`
	AssignmentMode       *string `json:"assignmentMode,omitempty"`
	AssignedServerID     *string `json:"assignedServerId,omitempty"`
	ProcessService       *bool   `json:"processService,omitempty"`
	CertifiedMail        *bool   `json:"certifiedMail,omitempty"`
	RushService          *bool   `json:"rushService,omitempty"`
	RemoteLocation       *bool   `json:"remoteLocation,omitempty"`
	QuotedPriceCents     *int64  `json:"quotedPriceCents,omitempty"`
	NegotiatedPriceCents *int64  `json:"negotiatedPriceCents,omitempty"`
}

// OrderPatchRequest is a partial update of a submitted order.
type OrderPatchRequest struct {
	CaseNumber          *string                `json:"caseNumber,omitempty"`
	Jurisdiction        *string                `json:"jurisdiction,omitempty"`
	DocumentType        *string                `json:"documentType,omitempty"`
	Deadline            *time.Time             `json:"deadline,omitempty"`
	SpecialInstructions *string                `json:"specialInstructions,omitempty"`
	Recipients          []RecipientSaveRequest `json:"recipients,omitempty"`
}

// BidRequest is a process server's offer.
type BidRequest struct {
	AmountCents int64  `json:"amountCents"`
	Comment     string `json:"comment,omitempty"`
}

// AttemptRequest is a field report on one recipient.
type AttemptRequest struct {
	Outcome string `json:"outcome"`
}

// IDResponse returns the identifier of a newly created object.
type IDResponse struct {
	ID string `json:"id"`
}

// PurgeResponse reports how many drafts a purge removed.
type PurgeResponse struct {
	Purged int64 `json:"purged"`
}

func (r DraftSaveRequest) toPatch() order.Patch {
	return order.Patch{
		CaseNumber:          r.CaseNumber,
		Jurisdiction:        r.Jurisdiction,
		DocumentType:        r.DocumentType,
		Deadline:            r.Deadline,
		SpecialInstructions: r.SpecialInstructions,
	}
}

func (r OrderPatchRequest) toPatch() order.Patch {
	return order.Patch{
		CaseNumber:          r.CaseNumber,
		Jurisdiction:        r.Jurisdiction,
		DocumentType:        r.DocumentType,
		Deadline:            r.Deadline,
		SpecialInstructions: r.SpecialInstructions,
	}
}

func (r RecipientSaveRequest) toRecipientPatch() (order.RecipientPatch, error) {
	quoted, err := moneyFromCents("quotedPriceCents", r.QuotedPriceCents)
	if err != nil {
		return order.RecipientPatch{}, err
	}
	negotiated, err := moneyFromCents("negotiatedPriceCents", r.NegotiatedPriceCents)
	if err != nil {
		return order.RecipientPatch{}, err
	}

	return order.RecipientPatch{
		Name:            r.Name,
		Address:         r.Address,
		City:            r.City,
		State:           r.State,
		ZipCode:         r.ZipCode,
		ProcessService:  r.ProcessService,
		CertifiedMail:   r.CertifiedMail,
		RushService:     r.RushService,
		RemoteLocation:  r.RemoteLocation,
		QuotedPrice:     quoted,
		NegotiatedPrice: negotiated,
	}, nil
}

func (r RecipientSaveRequest) toInput() (commands.RecipientInput, error) {
	patch, err := r.toRecipientPatch()
	if err != nil {
		return commands.RecipientInput{}, err
	}
	input := commands.RecipientInput{
		Patch: patch,
	}

	if r.ID != nil {
		id, err := kernel.UUIDFromString(*r.ID)
		if err != nil {
			return commands.RecipientInput{}, errs.NewValueIsInvalidErrorWithCause("recipientId", err)
		}
		input.ID = &id
	}

	if r.AssignmentMode != nil {
		mode, err := order.ParseAssignmentMode(*r.AssignmentMode)
		if err != nil {
			return commands.RecipientInput{}, err
		}
		input.Mode = &mode
	}

	if r.AssignedServerID != nil {
		serverID, err := kernel.UUIDFromString(*r.AssignedServerID)
		if err != nil {
			return commands.RecipientInput{}, errs.NewValueIsInvalidErrorWithCause("assignedServerId", err)
		}
		input.ServerID = &serverID
	}

	return input, nil
}

func moneyFromCents(field string, cents *int64) (*kernel.Money, error) {
	if cents == nil {
		return nil, nil
	}
	m, err := kernel.NewMoneyFromCents(*cents)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return &m, nil
}

// PriceBreakdownDTO is the per-recipient price breakdown.
type PriceBreakdownDTO struct {
	BaseCents   int64 `json:"baseCents"`
	AddOnsCents int64 `json:"addOnsCents"`
	DueNowCents int64 `json:"dueNowCents"`
	PendingBase bool  `json:"pendingBase"`
}

// RecipientDTO is one recipient in the order read model.
type RecipientDTO struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Address          string            `json:"address"`
	City             string            `json:"city"`
	State            string            `json:"state"`
	ZipCode          string            `json:"zipCode"`
	AssignmentMode   string            `json:"assignmentMode"`
	AssignedServerID *string           `json:"assignedServerId,omitempty"`
	Status           string            `json:"status"`
	DeliveryAttempts int               `json:"deliveryAttempts"`
	Price            PriceBreakdownDTO `json:"price"`
}

// OrderDTO is the full order read model.
type OrderDTO struct {
	ID                  string         `json:"id"`
	OrderNumber         string         `json:"orderNumber,omitempty"`
	Status              string         `json:"status"`
	CaseNumber          string         `json:"caseNumber"`
	Jurisdiction        string         `json:"jurisdiction"`
	DocumentType        string         `json:"documentType"`
	Deadline            time.Time      `json:"deadline"`
	SpecialInstructions string         `json:"specialInstructions,omitempty"`
	DocumentURL         string         `json:"documentUrl,omitempty"`
	DocumentPageCount   int            `json:"documentPageCount,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	CompletedAt         *time.Time     `json:"completedAt,omitempty"`
	Recipients          []RecipientDTO `json:"recipients"`
	SubtotalCents       int64          `json:"subtotalCents"`
	ProcessingFeeCents  int64          `json:"processingFeeCents"`
	TotalCents          int64          `json:"totalCents"`
	HasPendingBase      bool           `json:"hasPendingBase"`
}

// OrderSummaryDTO is one row of the order listing.
type OrderSummaryDTO struct {
	ID             string    `json:"id"`
	OrderNumber    string    `json:"orderNumber"`
	Status         string    `json:"status"`
	CaseNumber     string    `json:"caseNumber"`
	Deadline       time.Time `json:"deadline"`
	CreatedAt      time.Time `json:"createdAt"`
	RecipientCount int       `json:"recipientCount"`
}

// EditabilityDTO answers whether an order is editable.
type EditabilityDTO struct {
	Status   string `json:"status"`
	Editable bool   `json:"editable"`
	Reason   string `json:"reason,omitempty"`
}

// BidDTO is one bid in a recipient's history.
type BidDTO struct {
	ID              string    `json:"id"`
	ProcessServerID string    `json:"processServerId"`
	AmountCents     int64     `json:"amountCents"`
	Comment         string    `json:"comment,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func orderFromResponse(resp queries.GetOrderQueryResponse) OrderDTO {
	recipients := make([]RecipientDTO, 0, len(resp.Recipients))
	for _, r := range resp.Recipients {
		var serverID *string
		if r.AssignedServerID != nil {
			s := r.AssignedServerID.String()
			serverID = &s
		}

		recipients = append(recipients, RecipientDTO{
			ID:               r.ID.String(),
			Name:             r.Name,
			Address:          r.Address,
			City:             r.City,
			State:            r.State,
			ZipCode:          r.ZipCode,
			AssignmentMode:   r.AssignmentMode,
			AssignedServerID: serverID,
			Status:           r.Status,
			DeliveryAttempts: r.DeliveryAttempts,
			Price: PriceBreakdownDTO{
				BaseCents:   r.Price.Base.Cents(),
				AddOnsCents: r.Price.AddOns.Cents(),
				DueNowCents: r.Price.DueNow.Cents(),
				PendingBase: r.Price.PendingBase,
			},
		})
	}

	return OrderDTO{
		ID:                  resp.ID.String(),
		OrderNumber:         resp.OrderNumber,
		Status:              resp.Status,
		CaseNumber:          resp.CaseNumber,
		Jurisdiction:        resp.Jurisdiction,
		DocumentType:        resp.DocumentType,
		Deadline:            resp.Deadline,
		SpecialInstructions: resp.SpecialInstructions,
		DocumentURL:         resp.DocumentURL,
		DocumentPageCount:   resp.DocumentPageCount,
		CreatedAt:           resp.CreatedAt,
		CompletedAt:         resp.CompletedAt,
		Recipients:          recipients,
		SubtotalCents:       resp.Total.Subtotal.Cents(),
		ProcessingFeeCents:  resp.Total.ProcessingFee.Cents(),
		TotalCents:          resp.Total.Total.Cents(),
		HasPendingBase:      resp.Total.HasPendingBase,
	}
}
