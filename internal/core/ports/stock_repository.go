// Package ports defines repository interfaces for the order financials domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// ErrInsufficientStock is returned by Decrement when the pool does not hold
// enough units of the variant. Callers decide whether that aborts the
// operation or marks the shipment as backordered.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockRepository defines the persistence contract for inventory levels.
// Every variant has a catalog stock level owned by its producer; a hub may
// additionally carry its own override level for the same variant. An order
// records which pool each line item was drawn from, and cancellation must
// restore exactly that pool.
type StockRepository interface {
	// Decrement takes quantity units of the variant out of the given pool.
	// For the hub override pool the hub id selects whose override to debit.
	// Returns ErrInsufficientStock when the pool holds fewer units than
	// requested; no partial decrement happens in that case.
	Decrement(ctx context.Context, variantID kernel.UUID, hubID kernel.UUID, pool order.StockPool, quantity int) error

	// Restore returns quantity units of the variant to the given pool.
	// Used on order cancellation to reverse an earlier Decrement.
	Restore(ctx context.Context, variantID kernel.UUID, hubID kernel.UUID, pool order.StockPool, quantity int) error
}
