package draftrepo

import (
	"context"
	"errors"
	"time"

	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDraftRepository implements DraftRepository using GORM.
type GormDraftRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDraftRepository creates a new GORM draft repository.
func NewGormDraftRepository(db *gorm.DB, tracker aggregateTracker) *GormDraftRepository {
	return &GormDraftRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a freshly created draft.
func (r *GormDraftRepository) Add(ctx context.Context, draft *order.Order, editSeq int64) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(draft, editSeq, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(draft.ID(), draft)
	return nil
}

// Upsert applies one autosave. The predicate on edit_seq makes the write
// last-write-wins by sequence, not by arrival: a stale payload affects zero
// rows and is dropped without error.
func (r *GormDraftRepository) Upsert(ctx context.Context, draft *order.Order, editSeq int64) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(draft, editSeq, time.Now().UTC())
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		INSERT INTO drafts (id, tenant_id, customer_id, edit_seq, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			edit_seq   = EXCLUDED.edit_seq,
			payload    = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
		WHERE drafts.edit_seq < EXCLUDED.edit_seq
	`, dto.ID, dto.TenantID, dto.CustomerID, dto.EditSeq, dto.Payload, dto.CreatedAt, dto.UpdatedAt)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		r.tracker.TrackAggregate(draft.ID(), draft)
	}
	return nil
}

// Get retrieves a draft by id.
func (r *GormDraftRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DraftDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("draftId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes a draft row.
func (r *GormDraftRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&DraftDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("draftId", id.String())
	}
	return nil
}

// DeleteStale removes drafts whose last save is older than the cutoff.
func (r *GormDraftRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&DraftDTO{}, "updated_at < ?", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
