package queries

import (
	"context"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersAwaitingRecalculationQueryHandler retrieves the stale-order
// backlog from the database. Reads only identifying columns, so watching the
// backlog stays cheap no matter how big the aggregates are.
type GetOrdersAwaitingRecalculationQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersAwaitingRecalculationQueryHandler creates a handler for
// stale-order queries. Requires a GORM database connection.
func NewGetOrdersAwaitingRecalculationQueryHandler(db *gorm.DB) GetOrdersAwaitingRecalculationQueryHandler {
	return GetOrdersAwaitingRecalculationQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by order ID for consistent
// output.
func (h GetOrdersAwaitingRecalculationQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersAwaitingRecalculationQuery,
) ([]GetOrdersAwaitingRecalculationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOrdersAwaitingRecalculationQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			completed_at
		FROM orders
		WHERE needs_recalculation = true
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOrdersAwaitingRecalculationQueryResponse
		var id uuid.UUID
		var status int
		var completedAt *time.Time

		err = rows.Scan(
			&id,
			&status,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = orderID
		resp.Status = order.Status(status).String()
		resp.CompletedAt = completedAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
