package queries

import (
	"context"
	"database/sql"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTotalsQueryHandler reads the stored monetary snapshot of an order.
// Uses direct SQL for the read side; the totals columns are served exactly as
// the last recalculation pass left them.
type GetOrderTotalsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTotalsQueryHandler creates a handler for order totals queries.
// Requires a GORM database connection for query execution.
func NewGetOrderTotalsQueryHandler(db *gorm.DB) GetOrderTotalsQueryHandler {
	return GetOrderTotalsQueryHandler{db: db}
}

// Handle executes the query and maps the row into the read model. The
// outstanding balance is derived the same way the domain does it: a canceled
// order that has taken payments owes the whole payment total back.
func (h GetOrderTotalsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTotalsQuery,
) (GetOrderTotalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTotalsQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			payment_state,
			shipment_state,
			item_total,
			shipment_total,
			fee_total,
			adjustment_total,
			included_tax_total,
			additional_tax_total,
			payment_total,
			total
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id                          uuid.UUID
		status                      int
		paymentState, shipmentState int
		resp                        GetOrderTotalsQueryResponse
	)

	err := row.Scan(
		&id,
		&status,
		&paymentState,
		&shipmentState,
		&resp.ItemTotal,
		&resp.ShipmentTotal,
		&resp.FeeTotal,
		&resp.AdjustmentTotal,
		&resp.IncludedTaxTotal,
		&resp.AdditionalTaxTotal,
		&resp.PaymentTotal,
		&resp.Total,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTotalsQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderTotalsQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTotalsQueryResponse{}, err
	}

	resp.ID = orderID
	resp.Status = order.Status(status).String()
	resp.PaymentState = order.PaymentState(paymentState).String()
	resp.ShipmentState = order.ShipmentState(shipmentState).String()

	resp.OutstandingBalance = resp.Total.Sub(resp.PaymentTotal)
	if order.Status(status) == order.Canceled && resp.PaymentTotal.IsPositive() {
		resp.OutstandingBalance = resp.PaymentTotal.Neg()
	}

	return resp, nil
}
