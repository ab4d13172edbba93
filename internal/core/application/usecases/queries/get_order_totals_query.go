package queries

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderTotalsQueryIsNotConstructed = errors.New(
	"GetOrderTotalsQuery must be created via NewGetOrderTotalsQuery constructor",
)

// GetOrderTotalsQuery retrieves the monetary snapshot of one order.
// The snapshot is read as stored; no recomputation happens on the read path.
//
// Example:
//
//	query, err := NewGetOrderTotalsQuery(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid totals request: %w", err)
//	}
//
//	totals, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order totals: %w", err)
//	}
//
//	fmt.Printf("order %s owes %s\n", totals.ID, totals.OutstandingBalance)
type GetOrderTotalsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTotalsQuery creates a query for one order's monetary snapshot.
// Validates that the order ID is a proper UUID.
func NewGetOrderTotalsQuery(orderID kernel.UUID) (GetOrderTotalsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTotalsQuery{}, err
	}

	return GetOrderTotalsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderTotalsQueryIsNotConstructed if validation fails.
func (q GetOrderTotalsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTotalsQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to read.
func (q GetOrderTotalsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderTotalsQueryResponse is the read model of an order's monetary
// snapshot. States are returned as their persisted labels; an order that has
// never been through inference carries "unknown".
type GetOrderTotalsQueryResponse struct {
	ID kernel.UUID

	Status        string
	PaymentState  string
	ShipmentState string

	ItemTotal          decimal.Decimal
	ShipmentTotal      decimal.Decimal
	FeeTotal           decimal.Decimal
	AdjustmentTotal    decimal.Decimal
	IncludedTaxTotal   decimal.Decimal
	AdditionalTaxTotal decimal.Decimal
	PaymentTotal       decimal.Decimal
	Total              decimal.Decimal
	OutstandingBalance decimal.Decimal
}
