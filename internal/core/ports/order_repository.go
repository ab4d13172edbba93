package ports

import (
	"context"

	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// together with their line items, shipments, payments and adjustments.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including its
	// attached collections. The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateTotals writes the order's monetary snapshot and state labels as
	// a single direct column update. It deliberately bypasses any persistence
	// hook so a recomputation pass can never re-trigger itself.
	UpdateTotals(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete aggregate with line items, shipments, payments
	// and all attached adjustments, including taxes levied on fees.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingRecalculation retrieves orders flagged as having a stale
	// monetary snapshot. Used by the background recalculation job.
	GetAllAwaitingRecalculation(ctx context.Context) ([]*order.Order, error)

	// AddAdjustmentMetadata persists the reporting metadata row for a fee
	// adjustment. The row is keyed by adjustment id and is never read by
	// the recomputation pipeline.
	AddAdjustmentMetadata(ctx context.Context, metadata *fee.AdjustmentMetadata) error
}
