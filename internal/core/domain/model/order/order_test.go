package order_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a cart order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Cart, o.Status())
		assert.Nil(t, o.CompletedAt())
		assert.False(t, o.IsComplete())
		assert.False(t, o.NeedsRecalculation())
		assert.True(t, o.Total().IsZero())
	})
}

func TestOrderComplete(t *testing.T) {
	t.Run("completes a cart order", func(t *testing.T) {
		o := newTestOrder(t)
		at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

		require.NoError(t, o.Complete(at))
		assert.Equal(t, order.Complete, o.Status())
		require.NotNil(t, o.CompletedAt())
		assert.True(t, o.CompletedAt().Equal(at))
		assert.True(t, o.NeedsRecalculation())
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Complete(time.Now()))
		assert.ErrorIs(t, o.Complete(time.Now()), order.ErrOrderAlreadyCompleted)
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancels a cart order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.Canceled, o.Status())
		assert.False(t, o.IsComplete())
	})

	t.Run("keeps the completion stamp after cancel", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Complete(time.Now()))
		require.NoError(t, o.Cancel())

		assert.True(t, o.IsCanceled())
		assert.True(t, o.IsComplete())
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel())
		assert.Error(t, o.Cancel())
	})
}

func TestOrderTotalsDerivation(t *testing.T) {
	o := newTestOrder(t)

	o.SetItemTotal(decimal.NewFromInt(30))
	assert.True(t, o.Total().Equal(decimal.NewFromInt(30)))

	o.SetShipmentTotal(decimal.NewFromInt(15))
	assert.True(t, o.Total().Equal(decimal.NewFromInt(45)))

	o.SetAdjustmentTotals(
		decimal.RequireFromString("1.50"),
		decimal.Zero,
		decimal.Zero,
		decimal.RequireFromString("1.50"),
	)
	assert.True(t, o.Total().Equal(decimal.RequireFromString("46.50")))
	assert.True(t, o.AdditionalTaxTotal().Equal(decimal.RequireFromString("1.50")))
}

func TestOrderOutstandingBalance(t *testing.T) {
	t.Run("total minus payment total", func(t *testing.T) {
		o := newTestOrder(t)
		o.SetItemTotal(decimal.NewFromInt(30))
		o.SetPaymentTotal(decimal.NewFromInt(10))

		assert.True(t, o.OutstandingBalance().Equal(decimal.NewFromInt(20)))
	})

	t.Run("canceled paid order owes the payments back", func(t *testing.T) {
		o := newTestOrder(t)
		o.SetItemTotal(decimal.NewFromInt(30))
		o.SetPaymentTotal(decimal.NewFromInt(30))
		require.NoError(t, o.Complete(time.Now()))
		require.NoError(t, o.Cancel())

		assert.True(t, o.OutstandingBalance().Equal(decimal.NewFromInt(-30)))
	})

	t.Run("canceled unpaid order owes nothing", func(t *testing.T) {
		o := newTestOrder(t)
		o.SetItemTotal(decimal.NewFromInt(30))
		require.NoError(t, o.Cancel())

		assert.True(t, o.OutstandingBalance().Equal(decimal.NewFromInt(30)))
	})
}

func TestOrderStateChangeLog(t *testing.T) {
	t.Run("records a change once", func(t *testing.T) {
		o := newTestOrder(t)
		at := time.Now()

		o.SetPaymentState(order.PaymentStateBalanceDue, at)
		o.SetPaymentState(order.PaymentStateBalanceDue, at)

		require.Len(t, o.StateChanges(), 1)
		change := o.StateChanges()[0]
		assert.Equal(t, "payment", change.Name())
		assert.Equal(t, "unknown", change.Previous())
		assert.Equal(t, "balance_due", change.Next())
	})

	t.Run("records successive changes", func(t *testing.T) {
		o := newTestOrder(t)
		at := time.Now()

		o.SetPaymentState(order.PaymentStateBalanceDue, at)
		o.SetPaymentState(order.PaymentStatePaid, at)
		o.SetShipmentState(order.ShipmentStatePending, at)

		require.Len(t, o.StateChanges(), 3)
		assert.Equal(t, "shipment", o.StateChanges()[2].Name())
		assert.Equal(t, order.PaymentStatePaid, o.PaymentState())
		assert.Equal(t, order.ShipmentStatePending, o.ShipmentState())
	})
}

func TestOrderCollections(t *testing.T) {
	o := newTestOrder(t)

	item := newTestLineItem(t, "10", 3)
	shipment := newTestShipment(t, "15")
	payment := newTestPayment(t, "45")

	require.NoError(t, o.AddLineItem(item))
	require.NoError(t, o.AddShipment(shipment))
	require.NoError(t, o.AddPayment(payment))

	assert.Len(t, o.LineItems(), 1)
	assert.Len(t, o.Shipments(), 1)
	assert.Len(t, o.Payments(), 1)
	assert.True(t, o.NeedsRecalculation())

	t.Run("rejects nil children", func(t *testing.T) {
		assert.Error(t, o.AddLineItem(nil))
		assert.Error(t, o.AddShipment(nil))
		assert.Error(t, o.AddPayment(nil))
		assert.Error(t, o.AddAdjustment(nil))
	})
}

func TestOrderCalculable(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.AddLineItem(newTestLineItem(t, "10", 3)))
	require.NoError(t, o.AddLineItem(newTestLineItem(t, "5", 2)))
	o.SetItemTotal(decimal.NewFromInt(40))

	assert.True(t, o.CalculableAmount().Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 5, o.CalculableUnits())
}

func TestOrderRecalculationFlag(t *testing.T) {
	o := newTestOrder(t)

	o.MarkForRecalculation()
	assert.True(t, o.NeedsRecalculation())

	o.ClearRecalculation()
	assert.False(t, o.NeedsRecalculation())
}
