// Package bidrepo persists bids. Bid rows are append-mostly: only the status
// column ever changes after insert, and rows are never deleted.
package bidrepo

import (
	"time"

	"procserve/internal/core/domain/model/bid"
	"procserve/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BidDTO represents the database structure for persisting bids.
type BidDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	RecipientID     uuid.UUID `gorm:"type:uuid;index"`
	ProcessServerID uuid.UUID `gorm:"type:uuid;index"`
	AmountCents     int64
	Comment         string
	Status          int
	CreatedAt       time.Time
}

// TableName overrides GORM's default naming convention.
func (BidDTO) TableName() string {
	return "bids"
}

func fromDomain(aggregate *bid.Bid) BidDTO {
	return BidDTO{
		ID:              aggregate.ID().Bytes(),
		OrderID:         aggregate.OrderID().Bytes(),
		RecipientID:     aggregate.RecipientID().Bytes(),
		ProcessServerID: aggregate.ProcessServerID().Bytes(),
		AmountCents:     aggregate.Amount().Cents(),
		Comment:         aggregate.Comment(),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
	}
}

func toDomain(dto BidDTO) (*bid.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	serverID, err := kernel.UUIDFromBytes(dto.ProcessServerID[:])
	if err != nil {
		return nil, err
	}

	amount, err := kernel.NewMoneyFromCents(dto.AmountCents)
	if err != nil {
		return nil, err
	}

	return bid.RestoreBid(
		id,
		orderID,
		recipientID,
		serverID,
		amount,
		dto.Comment,
		bid.Status(dto.Status),
		dto.CreatedAt,
	)
}
