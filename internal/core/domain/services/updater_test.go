package services_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpdaterOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	return o
}

func newCompletedPayment(t *testing.T, amount string) *order.Payment {
	t.Helper()
	payment, err := order.NewPayment(kernel.NewUUID(), decimal.RequireFromString(amount))
	require.NoError(t, err)
	require.NoError(t, payment.Complete())
	return payment
}

func assertTotalInvariant(t *testing.T, o *order.Order) {
	t.Helper()
	expected := o.ItemTotal().Add(o.ShipmentTotal()).Add(o.AdjustmentTotal())
	assert.True(t, o.Total().Equal(expected),
		"total %s != item %s + shipment %s + adjustment %s",
		o.Total(), o.ItemTotal(), o.ShipmentTotal(), o.AdjustmentTotal())
}

func TestUpdaterTotals(t *testing.T) {
	updater := services.NewUpdater()
	now := time.Now()

	t.Run("order without adjustments sums items and shipments", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		require.NoError(t, o.AddShipment(newUpdaterShipment(t, "15")))

		require.NoError(t, updater.Update(o, now))

		assert.True(t, o.ItemTotal().Equal(decimal.NewFromInt(30)))
		assert.True(t, o.ShipmentTotal().Equal(decimal.NewFromInt(15)))
		assert.True(t, o.AdjustmentTotal().IsZero())
		assert.True(t, o.Total().Equal(decimal.NewFromInt(45)))
		assert.False(t, o.NeedsRecalculation())
		assertTotalInvariant(t, o)
	})

	t.Run("additional tax flows into the order totals", func(t *testing.T) {
		o := newUpdaterOrder(t)
		item := newAdjustableLineItem(t, "10", 3)
		source := newTaxRateSource(t, "0.05", false)
		require.NoError(t, item.AddAdjustment(newTaxAdjustment(t, o.ID(), source, false)))
		require.NoError(t, o.AddLineItem(item))

		require.NoError(t, updater.Update(o, now))

		assert.True(t, o.AdditionalTaxTotal().Equal(decimal.RequireFromString("1.50")))
		assert.True(t, o.IncludedTaxTotal().IsZero())
		assert.True(t, o.AdjustmentTotal().Equal(decimal.RequireFromString("1.50")))
		assert.True(t, o.Total().Equal(decimal.RequireFromString("31.50")))
		assertTotalInvariant(t, o)
	})

	t.Run("included tax never inflates the total", func(t *testing.T) {
		o := newUpdaterOrder(t)
		item := newAdjustableLineItem(t, "10", 3)
		source := newTaxRateSource(t, "0.05", true)
		require.NoError(t, item.AddAdjustment(newTaxAdjustment(t, o.ID(), source, true)))
		require.NoError(t, o.AddLineItem(item))

		require.NoError(t, updater.Update(o, now))

		assert.True(t, o.IncludedTaxTotal().Equal(decimal.RequireFromString("1.43")))
		assert.True(t, o.AdjustmentTotal().IsZero())
		assert.True(t, o.Total().Equal(decimal.NewFromInt(30)))
		assertTotalInvariant(t, o)
	})

	t.Run("fee plus its own tax ledger", func(t *testing.T) {
		o := newUpdaterOrder(t)
		item := newAdjustableLineItem(t, "10", 3)
		feeAdj := newFeeAdjustment(t, o.ID(), "40")
		taxOnFee := newTaxAdjustment(t, o.ID(), stubSource{amount: decimal.NewFromInt(5)}, false)
		require.NoError(t, feeAdj.AddChild(taxOnFee))
		require.NoError(t, item.AddAdjustment(feeAdj))
		require.NoError(t, o.AddLineItem(item))

		require.NoError(t, updater.Update(o, now))

		assert.True(t, o.FeeTotal().Equal(decimal.NewFromInt(40)))
		assert.True(t, o.AdjustmentTotal().Equal(decimal.NewFromInt(40)))
		assert.True(t, o.Total().Equal(decimal.NewFromInt(70)))
		assert.True(t, taxOnFee.Amount().Equal(decimal.NewFromInt(5)))
		assertTotalInvariant(t, o)
	})

	t.Run("eligible order-level adjustments count once", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		require.NoError(t, o.AddAdjustment(newFeeAdjustment(t, o.ID(), "7")))

		ineligible := newFeeAdjustment(t, o.ID(), "100")
		ineligible.SetEligible(false)
		require.NoError(t, o.AddAdjustment(ineligible))

		require.NoError(t, updater.Update(o, now))

		assert.True(t, o.AdjustmentTotal().Equal(decimal.NewFromInt(7)))
		assert.True(t, o.FeeTotal().Equal(decimal.NewFromInt(7)))
		assert.True(t, o.Total().Equal(decimal.NewFromInt(37)))
		assertTotalInvariant(t, o)
	})

	t.Run("whole order fee tracks the item total", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))

		percentFee, err := fee.NewEnterpriseFee(
			kernel.NewUUID(), kernel.NewUUID(), "Sunny Fields", "standard packing", "packing",
			calculator.NewFlatPercentItemTotal(decimal.NewFromInt(10)), false, nil,
		)
		require.NoError(t, err)

		adj, err := adjustment.NewAdjustment(
			kernel.NewUUID(), o.ID(), "whole order - packing fee by distributor Sunny Fields",
			decimal.Zero,
			adjustment.Originator{Type: adjustment.OriginatorEnterpriseFee, ID: percentFee.ID()},
			percentFee, true, adjustment.Closed,
		)
		require.NoError(t, err)
		require.NoError(t, o.AddAdjustment(adj))

		require.NoError(t, updater.Update(o, now))

		assert.True(t, adj.Amount().Equal(decimal.NewFromInt(3)), "fee amount %s", adj.Amount())
		assert.True(t, o.FeeTotal().Equal(decimal.NewFromInt(3)))
		assert.True(t, o.AdjustmentTotal().Equal(decimal.NewFromInt(3)))
		assert.True(t, o.Total().Equal(decimal.NewFromInt(33)))
		assertTotalInvariant(t, o)

		require.NoError(t, updater.Update(o, now))

		assert.True(t, adj.Amount().Equal(decimal.NewFromInt(3)))
		assert.True(t, o.Total().Equal(decimal.NewFromInt(33)))
	})

	t.Run("finalized order-level fee keeps its frozen amount", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))

		percentFee, err := fee.NewEnterpriseFee(
			kernel.NewUUID(), kernel.NewUUID(), "Sunny Fields", "standard packing", "packing",
			calculator.NewFlatPercentItemTotal(decimal.NewFromInt(10)), false, nil,
		)
		require.NoError(t, err)

		adj, err := adjustment.NewAdjustment(
			kernel.NewUUID(), o.ID(), "whole order - packing fee by distributor Sunny Fields",
			decimal.NewFromInt(9),
			adjustment.Originator{Type: adjustment.OriginatorEnterpriseFee, ID: percentFee.ID()},
			percentFee, true, adjustment.Closed,
		)
		require.NoError(t, err)
		require.NoError(t, adj.Finalize())
		require.NoError(t, o.AddAdjustment(adj))

		require.NoError(t, updater.Update(o, now))

		assert.True(t, adj.Amount().Equal(decimal.NewFromInt(9)))
		assert.True(t, o.Total().Equal(decimal.NewFromInt(39)))
		assertTotalInvariant(t, o)
	})

	t.Run("full pass clears adjustment dirty markers", func(t *testing.T) {
		o := newUpdaterOrder(t)
		item := newAdjustableLineItem(t, "10", 3)
		itemFee := newFeeAdjustment(t, o.ID(), "40")
		taxOnFee := newFeeAdjustment(t, o.ID(), "5")
		require.NoError(t, itemFee.AddChild(taxOnFee))
		require.NoError(t, item.AddAdjustment(itemFee))
		require.NoError(t, o.AddLineItem(item))

		orderFee := newFeeAdjustment(t, o.ID(), "7")
		require.NoError(t, o.AddAdjustment(orderFee))

		require.True(t, itemFee.IsDirty())
		require.True(t, orderFee.IsDirty())

		require.NoError(t, updater.Update(o, now))

		assert.False(t, itemFee.IsDirty())
		assert.False(t, taxOnFee.IsDirty())
		assert.False(t, orderFee.IsDirty())
	})

	t.Run("update is idempotent", func(t *testing.T) {
		o := newUpdaterOrder(t)
		item := newAdjustableLineItem(t, "10", 3)
		require.NoError(t, item.AddAdjustment(newTaxAdjustment(t, o.ID(), newTaxRateSource(t, "0.05", false), false)))
		require.NoError(t, o.AddLineItem(item))
		require.NoError(t, o.AddShipment(newUpdaterShipment(t, "15")))

		require.NoError(t, updater.Update(o, now))
		first := o.Total()
		firstChanges := len(o.StateChanges())

		require.NoError(t, updater.Update(o, now))

		assert.True(t, o.Total().Equal(first))
		assert.Len(t, o.StateChanges(), firstChanges)
		assertTotalInvariant(t, o)
	})

	t.Run("failed recomputation leaves no partial snapshot to persist", func(t *testing.T) {
		o := newUpdaterOrder(t)
		item := newAdjustableLineItem(t, "10", 3)
		require.NoError(t, item.AddAdjustment(newTaxAdjustment(t, o.ID(), stubSource{err: assert.AnError}, false)))
		require.NoError(t, o.AddLineItem(item))

		assert.ErrorIs(t, updater.Update(o, now), assert.AnError)
		assert.True(t, o.NeedsRecalculation())
	})

	t.Run("runs post-update hooks", func(t *testing.T) {
		hooked := false
		hookedUpdater := services.NewUpdater(func(_ *order.Order) { hooked = true })

		o := newUpdaterOrder(t)
		require.NoError(t, hookedUpdater.Update(o, now))

		assert.True(t, hooked)
	})
}

func TestUpdaterPaymentState(t *testing.T) {
	updater := services.NewUpdater()
	now := time.Now()

	completeOrder := func(t *testing.T, o *order.Order) {
		t.Helper()
		require.NoError(t, o.Complete(now))
	}

	t.Run("balance due when payments fall short", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		require.NoError(t, o.AddPayment(newCompletedPayment(t, "10")))
		completeOrder(t, o)

		require.NoError(t, updater.Update(o, now))
		// states are inferred from the previous snapshot, so a second pass
		// sees the totals written by the first
		require.NoError(t, updater.Update(o, now))

		assert.Equal(t, order.PaymentStateBalanceDue, o.PaymentState())
	})

	t.Run("paid when payments match the total", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		require.NoError(t, o.AddPayment(newCompletedPayment(t, "30")))
		completeOrder(t, o)

		require.NoError(t, updater.Update(o, now))
		require.NoError(t, updater.Update(o, now))

		assert.Equal(t, order.PaymentStatePaid, o.PaymentState())
	})

	t.Run("credit owed when payments exceed the total", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		require.NoError(t, o.AddPayment(newCompletedPayment(t, "50")))
		completeOrder(t, o)

		require.NoError(t, updater.Update(o, now))
		require.NoError(t, updater.Update(o, now))

		assert.Equal(t, order.PaymentStateCreditOwed, o.PaymentState())
	})

	t.Run("failed when every payment attempt failed", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		failed, err := order.NewPayment(kernel.NewUUID(), decimal.NewFromInt(30))
		require.NoError(t, err)
		failed.Fail()
		require.NoError(t, o.AddPayment(failed))
		completeOrder(t, o)

		require.NoError(t, updater.Update(o, now))

		assert.Equal(t, order.PaymentStateFailed, o.PaymentState())
	})

	t.Run("void for a canceled order without payments", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		completeOrder(t, o)
		require.NoError(t, o.Cancel())

		require.NoError(t, updater.Update(o, now))

		assert.Equal(t, order.PaymentStateVoid, o.PaymentState())
	})

	t.Run("canceled paid order owes the customer a refund", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		require.NoError(t, o.AddPayment(newCompletedPayment(t, "30")))
		completeOrder(t, o)
		require.NoError(t, updater.Update(o, now))
		require.NoError(t, o.Cancel())

		require.NoError(t, updater.Update(o, now))

		assert.Equal(t, order.PaymentStateCreditOwed, o.PaymentState())
	})

	t.Run("records the state change only when it differs", func(t *testing.T) {
		o := newUpdaterOrder(t)
		require.NoError(t, o.AddLineItem(newAdjustableLineItem(t, "10", 3)))
		completeOrder(t, o)

		// two passes settle the label against the recomputed totals
		require.NoError(t, updater.Update(o, now))
		require.NoError(t, updater.Update(o, now))
		settled := len(o.StateChanges())

		require.NoError(t, updater.Update(o, now))
		require.NoError(t, updater.Update(o, now))

		assert.Len(t, o.StateChanges(), settled)
		assert.Equal(t, order.PaymentStateBalanceDue, o.PaymentState())
	})
}

func TestUpdaterShipmentState(t *testing.T) {
	updater := services.NewUpdater()

	t.Run("no shipments yields no label", func(t *testing.T) {
		o := newUpdaterOrder(t)
		assert.Equal(t, order.ShipmentStateUnknown, updater.InferShipmentState(o))
	})

	t.Run("backorder takes precedence", func(t *testing.T) {
		o := newUpdaterOrder(t)
		shipped := newUpdaterShipment(t, "15")
		require.NoError(t, shipped.Ready())
		require.NoError(t, shipped.Ship())
		require.NoError(t, o.AddShipment(shipped))

		backordered := newUpdaterShipment(t, "5")
		backordered.MarkBackordered()
		require.NoError(t, o.AddShipment(backordered))

		assert.Equal(t, order.ShipmentStateBackorder, updater.InferShipmentState(o))
	})

	t.Run("mirrors a single shipment's status", func(t *testing.T) {
		o := newUpdaterOrder(t)
		shipment := newUpdaterShipment(t, "15")
		require.NoError(t, shipment.Ready())
		require.NoError(t, o.AddShipment(shipment))

		assert.Equal(t, order.ShipmentStateReady, updater.InferShipmentState(o))
	})

	t.Run("mixed statuses yield partial", func(t *testing.T) {
		o := newUpdaterOrder(t)
		pending := newUpdaterShipment(t, "15")
		require.NoError(t, o.AddShipment(pending))

		ready := newUpdaterShipment(t, "5")
		require.NoError(t, ready.Ready())
		require.NoError(t, o.AddShipment(ready))

		assert.Equal(t, order.ShipmentStatePartial, updater.InferShipmentState(o))
	})
}

func newUpdaterShipment(t *testing.T, cost string) *order.Shipment {
	t.Helper()
	shipment, err := order.NewShipment(kernel.NewUUID(), decimal.RequireFromString(cost))
	require.NoError(t, err)
	return shipment
}
