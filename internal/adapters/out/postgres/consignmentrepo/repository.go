package consignmentrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/consignment"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormConsignmentRepository implements ConsignmentRepository using GORM.
type GormConsignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(code string, aggregate any)
}

// NewGormConsignmentRepository creates a new GORM consignment repository.
func NewGormConsignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormConsignmentRepository {
	return &GormConsignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new consignment to the database.
func (r *GormConsignmentRepository) Add(ctx context.Context, aggregate *consignment.Consignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Code(), aggregate)
	return nil
}

// Update saves an existing consignment to the database.
func (r *GormConsignmentRepository) Update(ctx context.Context, aggregate *consignment.Consignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update the line rows
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.Code(), aggregate)
	return nil
}

// GetByCode retrieves a consignment by its consignment code.
func (r *GormConsignmentRepository) GetByCode(ctx context.Context, code string) (*consignment.Consignment, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return r.getOne(ctx, "code = ?", code, code)
}

// GetByTrackingID retrieves a consignment by the tracking ID the carrier
// assigned to it.
func (r *GormConsignmentRepository) GetByTrackingID(ctx context.Context, trackingID string) (*consignment.Consignment, error) {
	if trackingID == "" {
		return nil, errs.NewValueIsRequiredError("trackingID")
	}

	return r.getOne(ctx, "tracking_id = ?", trackingID, trackingID)
}

// GetAllByOrderCode retrieves every consignment shipped for one order.
func (r *GormConsignmentRepository) GetAllByOrderCode(ctx context.Context, orderCode string) ([]*consignment.Consignment, error) {
	if orderCode == "" {
		return nil, errs.NewValueIsRequiredError("orderCode")
	}

	return r.getAll(ctx, "order_code = ?", orderCode)
}

// GetAllByStatus retrieves every consignment currently in the given status.
// The carrier tracking jobs poll with status Shipped.
func (r *GormConsignmentRepository) GetAllByStatus(ctx context.Context, status consignment.Status) ([]*consignment.Consignment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return r.getAll(ctx, "status = ?", int(status))
}

func (r *GormConsignmentRepository) getOne(ctx context.Context, condition string, value any, id string) (*consignment.Consignment, error) {
	var dto ConsignmentDTO
	if err := r.db.WithContext(ctx).Preload("Entries").First(&dto, condition, value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consignment", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormConsignmentRepository) getAll(ctx context.Context, condition string, value any) ([]*consignment.Consignment, error) {
	var dtos []ConsignmentDTO
	if err := r.db.WithContext(ctx).Preload("Entries").Find(&dtos, condition, value).Error; err != nil {
		return nil, err
	}

	consignments := make([]*consignment.Consignment, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		consignments = append(consignments, c)
	}

	return consignments, nil
}
