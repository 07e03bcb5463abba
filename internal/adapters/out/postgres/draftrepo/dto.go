// Package draftrepo persists draft orders. A draft is stored as one row per
// aggregate with the whole order serialized into a jsonb payload: drafts are
// always read and written whole, never queried field by field, so a
// relational spread would buy nothing. The edit_seq column implements
// last-write-wins ordering for the autosave protocol.
package draftrepo

import (
	"encoding/json"
	"time"

	"procserve/internal/adapters/out/postgres/orderrepo"
	"procserve/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// DraftDTO represents the database structure for persisting drafts.
type DraftDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID `gorm:"type:uuid;index"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	EditSeq    int64
	Payload    []byte `gorm:"type:jsonb"`
	CreatedAt  time.Time
	UpdatedAt  time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (DraftDTO) TableName() string {
	return "drafts"
}

// fromDomain serializes the draft aggregate into a row. The payload reuses
// the order repository's DTO shape so a draft submits without remapping.
func fromDomain(draft *order.Order, editSeq int64, now time.Time) (DraftDTO, error) {
	payload, err := json.Marshal(orderrepo.FromDomain(draft))
	if err != nil {
		return DraftDTO{}, err
	}

	return DraftDTO{
		ID:         draft.ID().Bytes(),
		TenantID:   draft.TenantID().Bytes(),
		CustomerID: draft.CustomerID().Bytes(),
		EditSeq:    editSeq,
		Payload:    payload,
		CreatedAt:  draft.CreatedAt(),
		UpdatedAt:  now,
	}, nil
}

// toDomain deserializes a draft row back into the aggregate.
func toDomain(dto DraftDTO) (*order.Order, error) {
	var payload orderrepo.OrderDTO
	if err := json.Unmarshal(dto.Payload, &payload); err != nil {
		return nil, err
	}

	return orderrepo.ToDomain(payload)
}
