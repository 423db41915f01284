package returnrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(code string, aggregate any)
}

// NewGormReturnRepository creates a new GORM return repository.
func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return to the database.
func (r *GormReturnRepository) Add(ctx context.Context, aggregate *returns.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Rma(), aggregate)
	return nil
}

// Update saves an existing return to the database.
func (r *GormReturnRepository) Update(ctx context.Context, aggregate *returns.Return) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to properly update the nested graph
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.Rma(), aggregate)
	return nil
}

// GetByRma retrieves a return by its return merchandise authorization.
func (r *GormReturnRepository) GetByRma(ctx context.Context, rma string) (*returns.Return, error) {
	if rma == "" {
		return nil, errs.NewValueIsRequiredError("rma")
	}

	var dto ReturnDTO
	if err := r.db.WithContext(ctx).
		Preload("Entries.Consignments.Packages").
		First(&dto, "rma = ?", rma).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return", rma)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrderCode retrieves every return announced against one order.
func (r *GormReturnRepository) GetAllByOrderCode(ctx context.Context, orderCode string) ([]*returns.Return, error) {
	if orderCode == "" {
		return nil, errs.NewValueIsRequiredError("orderCode")
	}

	var dtos []ReturnDTO
	if err := r.db.WithContext(ctx).
		Preload("Entries.Consignments.Packages").
		Find(&dtos, "order_code = ?", orderCode).Error; err != nil {
		return nil, err
	}

	rets := make([]*returns.Return, 0, len(dtos))
	for _, dto := range dtos {
		ret, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rets = append(rets, ret)
	}

	return rets, nil
}

// GetByConsignmentCode retrieves the return that contains a return consignment
// with the given code. The consignment row carries the owning RMA, so the
// lookup resolves the RMA first and then loads the whole aggregate.
func (r *GormReturnRepository) GetByConsignmentCode(ctx context.Context, consignmentCode string) (*returns.Return, error) {
	if consignmentCode == "" {
		return nil, errs.NewValueIsRequiredError("consignmentCode")
	}

	var consDTO ConsignmentDTO
	if err := r.db.WithContext(ctx).First(&consDTO, "consignment_code = ?", consignmentCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return consignment", consignmentCode)
		}
		return nil, err
	}

	return r.GetByRma(ctx, consDTO.Rma)
}
