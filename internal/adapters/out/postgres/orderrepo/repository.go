package orderrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its full collection tree.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order aggregate. The root row is rewritten and
// every collection row is upserted; state change rows are append-only. The
// monetary snapshot columns are written here too, but UpdateTotals remains
// the authoritative write for them at the end of a recalculation pass.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.upsertCollections(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateTotals writes the monetary snapshot and state label columns directly,
// bypassing every other column and any persistence hooks. The staleness flag
// is cleared in the same statement.
func (r *GormOrderRepository) UpdateTotals(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"payment_state":        int(aggregate.PaymentState()),
			"shipment_state":       int(aggregate.ShipmentState()),
			"item_total":           aggregate.ItemTotal(),
			"shipment_total":       aggregate.ShipmentTotal(),
			"fee_total":            aggregate.FeeTotal(),
			"adjustment_total":     aggregate.AdjustmentTotal(),
			"included_tax_total":   aggregate.IncludedTaxTotal(),
			"additional_tax_total": aggregate.AdditionalTaxTotal(),
			"payment_total":        aggregate.PaymentTotal(),
			"total":                aggregate.Total(),
			"needs_recalculation":  aggregate.NeedsRecalculation(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves an order aggregate by ID with all its collections.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Shipments").
		Preload("Payments").
		Preload("Adjustments").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAwaitingRecalculation retrieves every order whose monetary snapshot
// is flagged stale.
func (r *GormOrderRepository) GetAllAwaitingRecalculation(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Shipments").
		Preload("Payments").
		Preload("Adjustments").
		Find(&dtos, "needs_recalculation = ?", true).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// AddAdjustmentMetadata saves the reporting record of a fee adjustment.
func (r *GormOrderRepository) AddAdjustmentMetadata(ctx context.Context, metadata *fee.AdjustmentMetadata) error {
	if err := metadata.Validate(); err != nil {
		return err
	}

	dto := metadataFromDomain(metadata)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOrderRepository) upsertCollections(ctx context.Context, dto OrderDTO) error {
	db := r.db.WithContext(ctx)

	if len(dto.LineItems) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.LineItems).Error; err != nil {
			return err
		}
	}

	if len(dto.Shipments) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Shipments).Error; err != nil {
			return err
		}
	}

	if len(dto.Payments) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Payments).Error; err != nil {
			return err
		}
	}

	if len(dto.Adjustments) > 0 {
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&dto.Adjustments).Error; err != nil {
			return err
		}
	}

	// the audit log is append-only; existing rows never change
	if len(dto.StateChanges) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.StateChanges).Error; err != nil {
			return err
		}
	}

	return nil
}
