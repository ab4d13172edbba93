package order_test

import (
	"testing"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLineItem(t *testing.T, price string, quantity int) *order.LineItem {
	t.Helper()
	taxCategoryID := kernel.NewUUID()
	item, err := order.NewLineItem(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Organic Carrots",
		decimal.RequireFromString(price),
		quantity,
		&taxCategoryID,
		order.StockPoolCatalog,
	)
	require.NoError(t, err)
	return item
}

func TestNewLineItem(t *testing.T) {
	t.Run("creates a valid line item", func(t *testing.T) {
		item := newTestLineItem(t, "10", 3)

		require.NoError(t, item.Validate())
		assert.Equal(t, "Organic Carrots", item.ProductName())
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, order.StockPoolCatalog, item.StockPool())
		assert.True(t, item.Total().Equal(decimal.NewFromInt(30)))
	})

	t.Run("allows nil tax category", func(t *testing.T) {
		item, err := order.NewLineItem(
			kernel.NewUUID(), kernel.NewUUID(), "Bread",
			decimal.NewFromInt(4), 1, nil, order.StockPoolNone,
		)
		require.NoError(t, err)
		assert.Nil(t, item.TaxCategoryID())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := order.NewLineItem(
			kernel.NewUUID(), kernel.NewUUID(), "Bread",
			decimal.NewFromInt(-1), 1, nil, order.StockPoolNone,
		)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := order.NewLineItem(
			kernel.NewUUID(), kernel.NewUUID(), "Bread",
			decimal.NewFromInt(1), -1, nil, order.StockPoolNone,
		)
		assert.Error(t, err)
	})

	t.Run("rejects empty product name", func(t *testing.T) {
		_, err := order.NewLineItem(
			kernel.NewUUID(), kernel.NewUUID(), "",
			decimal.NewFromInt(1), 1, nil, order.StockPoolNone,
		)
		assert.Error(t, err)
	})

	t.Run("allows zero quantity", func(t *testing.T) {
		item, err := order.NewLineItem(
			kernel.NewUUID(), kernel.NewUUID(), "Bread",
			decimal.NewFromInt(4), 0, nil, order.StockPoolNone,
		)
		require.NoError(t, err)
		assert.True(t, item.Total().IsZero())
	})
}

func TestLineItemCalculable(t *testing.T) {
	item := newTestLineItem(t, "10", 3)

	assert.True(t, item.CalculableAmount().Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 3, item.CalculableUnits())
}

func TestLineItemAdjustments(t *testing.T) {
	t.Run("attaches adjustments", func(t *testing.T) {
		item := newTestLineItem(t, "10", 3)
		adj, err := adjustment.NewAdjustment(
			kernel.NewUUID(), kernel.NewUUID(), "GST 5%",
			decimal.RequireFromString("1.50"),
			adjustment.Originator{Type: adjustment.OriginatorTaxRate, ID: kernel.NewUUID()},
			nil, false, adjustment.Open,
		)
		require.NoError(t, err)

		require.NoError(t, item.AddAdjustment(adj))
		assert.Len(t, item.Adjustments(), 1)
	})

	t.Run("rejects nil adjustment", func(t *testing.T) {
		item := newTestLineItem(t, "10", 3)
		assert.Error(t, item.AddAdjustment(nil))
	})
}

func TestLineItemAdjustmentTotals(t *testing.T) {
	item := newTestLineItem(t, "10", 3)

	item.SetAdjustmentTotals(
		decimal.RequireFromString("1.50"),
		decimal.Zero,
		decimal.Zero,
		decimal.RequireFromString("1.50"),
	)

	assert.True(t, item.AdjustmentTotal().Equal(decimal.RequireFromString("1.50")))
	assert.True(t, item.AdditionalTaxTotal().Equal(decimal.RequireFromString("1.50")))
	assert.True(t, item.FeeTotal().IsZero())
	assert.True(t, item.IncludedTaxTotal().IsZero())
	assert.True(t, item.TotalWithAdjustments().Equal(decimal.RequireFromString("31.50")))
}

func TestStockPoolFromString(t *testing.T) {
	tests := []struct {
		raw     string
		want    order.StockPool
		wantErr bool
	}{
		{"none", order.StockPoolNone, false},
		{"catalog", order.StockPoolCatalog, false},
		{"hub_override", order.StockPoolHubOverride, false},
		{"warehouse", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			pool, err := order.StockPoolFromString(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pool)
		})
	}
}
