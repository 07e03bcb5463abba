// Package orderrepo provides data transfer objects and mapping functions for
// persisting submitted order aggregates. Orders and their recipients live in
// two tables; the recipient rows carry a position column so the collection
// round-trips in insertion order.
package orderrepo

import (
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column backs the optimistic concurrency guard on updates.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber         string    `gorm:"uniqueIndex"`
	TenantID            uuid.UUID `gorm:"type:uuid;index"`
	CustomerID          uuid.UUID `gorm:"type:uuid;index"`
	CaseNumber          string
	Jurisdiction        string
	DocumentType        string
	Deadline            time.Time
	SpecialInstructions string
	DocumentURL         string
	DocumentPageCount   int
	Status              int `gorm:"index"`
	CreatedAt           time.Time
	CompletedAt         *time.Time
	Version             int64

	Recipients []RecipientDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

// RecipientDTO represents one recipient row of an order.
type RecipientDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID `gorm:"type:uuid;index"`
	Position             int
	Name                 string
	Address              string
	City                 string
	State                string
	ZipCode              string
	AssignmentMode       int
	AssignedServerID     *uuid.UUID `gorm:"type:uuid;index"`
	ProcessService       bool
	CertifiedMail        bool
	RushService          bool
	RemoteLocation       bool
	PriceStatus          int
	QuotedPriceCents     *int64
	NegotiatedPriceCents *int64
	FinalPriceCents      *int64
	Status               int
	DeliveryAttempts     int
}

// TableName overrides GORM's default naming convention.
func (RecipientDTO) TableName() string {
	return "order_recipients"
}

// FromDomain converts an order aggregate to its database representation.
// Exported because the draft repository reuses the same mapping for its
// JSON payload recipients.
func FromDomain(aggregate *order.Order) OrderDTO {
	recipients := aggregate.Recipients()
	recipientDTOs := make([]RecipientDTO, 0, len(recipients))
	for i, r := range recipients {
		recipientDTOs = append(recipientDTOs, recipientFromDomain(aggregate.ID(), i, r))
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		OrderNumber:         aggregate.OrderNumber(),
		TenantID:            aggregate.TenantID().Bytes(),
		CustomerID:          aggregate.CustomerID().Bytes(),
		CaseNumber:          aggregate.CaseNumber(),
		Jurisdiction:        aggregate.Jurisdiction(),
		DocumentType:        aggregate.DocumentType(),
		Deadline:            aggregate.Deadline(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		DocumentURL:         aggregate.DocumentURL(),
		DocumentPageCount:   aggregate.DocumentPageCount(),
		Status:              int(aggregate.Status()),
		CreatedAt:           aggregate.CreatedAt(),
		CompletedAt:         aggregate.CompletedAt(),
		Version:             aggregate.Version(),
		Recipients:          recipientDTOs,
	}
}

func recipientFromDomain(orderID kernel.UUID, position int, r *order.Recipient) RecipientDTO {
	var serverID *uuid.UUID
	if id := r.AssignedServer(); id != nil {
		raw := id.Bytes()
		serverID = &raw
	}

	options := r.ServiceOptions()
	return RecipientDTO{
		ID:                   r.ID().Bytes(),
		OrderID:              orderID.Bytes(),
		Position:             position,
		Name:                 r.Name(),
		Address:              r.Address(),
		City:                 r.City(),
		State:                r.State(),
		ZipCode:              r.ZipCode(),
		AssignmentMode:       int(r.AssignmentMode()),
		AssignedServerID:     serverID,
		ProcessService:       options.ProcessService,
		CertifiedMail:        options.CertifiedMail,
		RushService:          options.RushService,
		RemoteLocation:       options.RemoteLocation,
		PriceStatus:          int(r.PriceStatus()),
		QuotedPriceCents:     centsFromMoney(r.QuotedPrice()),
		NegotiatedPriceCents: centsFromMoney(r.NegotiatedPrice()),
		FinalPriceCents:      centsFromMoney(r.FinalAgreedPrice()),
		Status:               int(r.Status()),
		DeliveryAttempts:     r.DeliveryAttempts(),
	}
}

// ToDomain converts a database DTO back to an order aggregate.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	recipients := make([]*order.Recipient, 0, len(dto.Recipients))
	for _, r := range dto.Recipients {
		recipient, recipientErr := recipientToDomain(r)
		if recipientErr != nil {
			return nil, recipientErr
		}
		recipients = append(recipients, recipient)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		tenantID, customerID,
		dto.CaseNumber, dto.Jurisdiction, dto.DocumentType,
		dto.Deadline,
		dto.SpecialInstructions,
		dto.DocumentURL,
		dto.DocumentPageCount,
		order.Status(dto.Status),
		recipients,
		dto.CreatedAt,
		dto.CompletedAt,
		dto.Version,
	)
}

func recipientToDomain(dto RecipientDTO) (*order.Recipient, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var serverID *kernel.UUID
	if dto.AssignedServerID != nil {
		sID, serverErr := kernel.UUIDFromBytes((*dto.AssignedServerID)[:])
		if serverErr != nil {
			return nil, serverErr
		}
		serverID = &sID
	}

	quoted, err := moneyFromCents(dto.QuotedPriceCents)
	if err != nil {
		return nil, err
	}
	negotiated, err := moneyFromCents(dto.NegotiatedPriceCents)
	if err != nil {
		return nil, err
	}
	final, err := moneyFromCents(dto.FinalPriceCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreRecipient(
		id,
		dto.Name, dto.Address, dto.City, dto.State, dto.ZipCode,
		order.AssignmentMode(dto.AssignmentMode),
		serverID,
		order.ServiceOptions{
			ProcessService: dto.ProcessService,
			CertifiedMail:  dto.CertifiedMail,
			RushService:    dto.RushService,
			RemoteLocation: dto.RemoteLocation,
		},
		order.PriceStatus(dto.PriceStatus),
		quoted,
		negotiated,
		final,
		order.RecipientStatus(dto.Status),
		dto.DeliveryAttempts,
	)
}

func centsFromMoney(m *kernel.Money) *int64 {
	if m == nil {
		return nil
	}
	cents := m.Cents()
	return &cents
}

func moneyFromCents(cents *int64) (*kernel.Money, error) {
	if cents == nil {
		return nil, nil
	}
	m, err := kernel.NewMoneyFromCents(*cents)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
