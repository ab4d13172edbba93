package stockrepo

import (
	"context"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Decrement takes quantity units of the variant out of the hub's pool. The
// guard in the WHERE clause makes the check and the take one atomic
// statement: a pool that cannot cover the quantity is left untouched and
// ErrInsufficientStock is returned.
func (r *GormStockRepository) Decrement(
	ctx context.Context,
	variantID, hubID kernel.UUID,
	pool order.StockPool,
	quantity int,
) error {
	if quantity <= 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&StockLevelDTO{}).
		Where("variant_id = ? AND hub_id = ? AND pool = ? AND on_hand >= ?",
			variantID.Bytes(), hubID.Bytes(), pool.String(), quantity).
		Update("on_hand", gorm.Expr("on_hand - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrInsufficientStock
	}

	return nil
}

// Restore gives quantity units back to the hub's pool. A missing row is
// created so a cancellation never fails on inventory that was sold out in
// the meantime.
func (r *GormStockRepository) Restore(
	ctx context.Context,
	variantID, hubID kernel.UUID,
	pool order.StockPool,
	quantity int,
) error {
	if quantity <= 0 {
		return nil
	}

	return r.db.WithContext(ctx).Exec(`
		INSERT INTO stock_levels (variant_id, hub_id, pool, on_hand)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (variant_id, hub_id, pool)
		DO UPDATE SET on_hand = stock_levels.on_hand + EXCLUDED.on_hand
	`, variantID.Bytes(), hubID.Bytes(), pool.String(), quantity).Error
}
