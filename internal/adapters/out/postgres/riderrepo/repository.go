package riderrepo

import (
	"context"
	"errors"

	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/rider"
	"refill/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
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

// Update saves an existing rider to the database. All columns are written
// explicitly so a zero load or a false availability flag persists.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActiveAvailable retrieves every rider eligible for dispatch.
func (r *GormRiderRepository) GetAllActiveAvailable(ctx context.Context) ([]*rider.Rider, error) {
	var dtos []RiderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND is_available", rider.StatusActive.String()).Error
	if err != nil {
		return nil, err
	}

	riders := make([]*rider.Rider, 0, len(dtos))
	for _, dto := range dtos {
		candidate, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		riders = append(riders, candidate)
	}

	return riders, nil
}

// ReserveCapacity commits gallons against the rider's ledger with a single
// conditional UPDATE. The WHERE clause re-checks eligibility and headroom at
// write time, so of two dispatchers racing for the same last slot exactly one
// row is affected; the loser gets rider.ErrNoAvailableRider.
func (r *GormRiderRepository) ReserveCapacity(ctx context.Context, riderID kernel.UUID, gallons int) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ? AND status = ? AND is_available AND current_load_gallons + ? <= max_capacity_gallons",
			riderID.Bytes(), rider.StatusActive.String(), gallons).
		Updates(map[string]any{
			"current_load_gallons": gorm.Expr("current_load_gallons + ?", gallons),
			"active_orders_count":  gorm.Expr("active_orders_count + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return rider.ErrNoAvailableRider
	}

	return nil
}

// ReleaseCapacity returns gallons to the rider's ledger. Both counters floor
// at zero so a double release cannot drive the ledger negative.
func (r *GormRiderRepository) ReleaseCapacity(ctx context.Context, riderID kernel.UUID, gallons int) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&RiderDTO{}).
		Where("id = ?", riderID.Bytes()).
		Updates(map[string]any{
			"current_load_gallons": gorm.Expr("GREATEST(current_load_gallons - ?, 0)", gallons),
			"active_orders_count":  gorm.Expr("GREATEST(active_orders_count - 1, 0)"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", riderID.String())
	}

	return nil
}
