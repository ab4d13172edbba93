package queries

import (
	"errors"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrGetOrdersAwaitingRecalculationQueryIsNotConstructed = errors.New(
	"GetOrdersAwaitingRecalculationQuery must be created via NewGetOrdersAwaitingRecalculationQuery constructor",
)

// GetOrdersAwaitingRecalculationQuery retrieves all orders whose monetary
// snapshot is flagged stale. The background job uses it to drain the
// recalculation backlog; operators use it to watch the backlog size.
//
// Example:
//
//	query := NewGetOrdersAwaitingRecalculationQuery()
//	handler := NewGetOrdersAwaitingRecalculationQueryHandler(db)
//
//	stale, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get stale orders: %w", err)
//	}
//
//	fmt.Printf("%d orders awaiting recalculation\n", len(stale))
type GetOrdersAwaitingRecalculationQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrdersAwaitingRecalculationQuery creates a query for stale orders.
// This is a parameterless query.
func NewGetOrdersAwaitingRecalculationQuery() (GetOrdersAwaitingRecalculationQuery, error) {
	return GetOrdersAwaitingRecalculationQuery{guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersAwaitingRecalculationQueryIsNotConstructed if validation fails.
func (q GetOrdersAwaitingRecalculationQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersAwaitingRecalculationQueryIsNotConstructed)
}

// GetOrdersAwaitingRecalculationQueryResponse represents one stale order.
type GetOrdersAwaitingRecalculationQueryResponse struct {
	ID          kernel.UUID
	Status      string
	CompletedAt *time.Time
}
