package order_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShipment(t *testing.T, cost string) *order.Shipment {
	t.Helper()
	shipment, err := order.NewShipment(kernel.NewUUID(), decimal.RequireFromString(cost))
	require.NoError(t, err)
	return shipment
}

func TestNewShipment(t *testing.T) {
	t.Run("creates a pending shipment", func(t *testing.T) {
		shipment := newTestShipment(t, "15")

		require.NoError(t, shipment.Validate())
		assert.Equal(t, order.ShipmentStatusPending, shipment.Status())
		assert.False(t, shipment.IsBackordered())
		assert.True(t, shipment.Cost().Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		_, err := order.NewShipment(kernel.NewUUID(), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})

	t.Run("allows zero cost", func(t *testing.T) {
		shipment, err := order.NewShipment(kernel.NewUUID(), decimal.Zero)
		require.NoError(t, err)
		assert.True(t, shipment.Cost().IsZero())
	})
}

func TestShipmentTransitions(t *testing.T) {
	t.Run("pending to ready to shipped", func(t *testing.T) {
		shipment := newTestShipment(t, "15")

		require.NoError(t, shipment.Ready())
		assert.Equal(t, order.ShipmentStatusReady, shipment.Status())

		require.NoError(t, shipment.Ship())
		assert.Equal(t, order.ShipmentStatusShipped, shipment.Status())
	})

	t.Run("cannot ship a pending shipment", func(t *testing.T) {
		shipment := newTestShipment(t, "15")
		assert.Error(t, shipment.Ship())
	})

	t.Run("cannot ready a shipped shipment", func(t *testing.T) {
		shipment := newTestShipment(t, "15")
		require.NoError(t, shipment.Ready())
		require.NoError(t, shipment.Ship())
		assert.Error(t, shipment.Ready())
	})
}

func TestShipmentBackorder(t *testing.T) {
	shipment := newTestShipment(t, "15")

	shipment.MarkBackordered()
	assert.True(t, shipment.IsBackordered())

	shipment.ClearBackorder()
	assert.False(t, shipment.IsBackordered())
}

func TestShipmentCalculable(t *testing.T) {
	shipment := newTestShipment(t, "15")

	assert.True(t, shipment.CalculableAmount().Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 1, shipment.CalculableUnits())
}

func TestShipmentAdjustmentTotals(t *testing.T) {
	shipment := newTestShipment(t, "15")

	shipment.SetAdjustmentTotals(
		decimal.RequireFromString("0.75"),
		decimal.Zero,
		decimal.Zero,
		decimal.RequireFromString("0.75"),
	)

	assert.True(t, shipment.AdjustmentTotal().Equal(decimal.RequireFromString("0.75")))
	assert.True(t, shipment.TotalWithAdjustments().Equal(decimal.RequireFromString("15.75")))
}
