package bidrepo

import (
	"context"
	"errors"

	"procserve/internal/core/domain/model/bid"
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBidRepository implements BidRepository using GORM.
type GormBidRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBidRepository creates a new GORM bid repository.
func NewGormBidRepository(db *gorm.DB, tracker aggregateTracker) *GormBidRepository {
	return &GormBidRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bid.
func (r *GormBidRepository) Add(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves a bid's status transition.
func (r *GormBidRepository) Update(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BidDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bidId", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a bid by id.
func (r *GormBidRepository) Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BidDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bidId", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingForRecipient retrieves all pending bids targeting one recipient.
func (r *GormBidRepository) GetPendingForRecipient(ctx context.Context, recipientID kernel.UUID) ([]*bid.Bid, error) {
	return r.list(ctx, recipientID, true)
}

// GetForRecipient retrieves the full bid history for one recipient.
func (r *GormBidRepository) GetForRecipient(ctx context.Context, recipientID kernel.UUID) ([]*bid.Bid, error) {
	return r.list(ctx, recipientID, false)
}

func (r *GormBidRepository) list(ctx context.Context, recipientID kernel.UUID, pendingOnly bool) ([]*bid.Bid, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID.Bytes())
	if pendingOnly {
		query = query.Where("status = ?", bid.Pending)
	}

	var dtos []BidDTO
	if err := query.Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	bids := make([]*bid.Bid, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}

	return bids, nil
}
