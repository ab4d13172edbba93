package order_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T, amount string) *order.Payment {
	t.Helper()
	payment, err := order.NewPayment(kernel.NewUUID(), decimal.RequireFromString(amount))
	require.NoError(t, err)
	return payment
}

func TestNewPayment(t *testing.T) {
	t.Run("creates a checkout payment", func(t *testing.T) {
		payment := newTestPayment(t, "50")

		require.NoError(t, payment.Validate())
		assert.Equal(t, order.PaymentStatusCheckout, payment.Status())
		assert.True(t, payment.IsValid())
		assert.False(t, payment.IsCompleted())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := order.NewPayment(kernel.NewUUID(), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestPaymentComplete(t *testing.T) {
	t.Run("completes a checkout payment", func(t *testing.T) {
		payment := newTestPayment(t, "50")

		require.NoError(t, payment.Complete())
		assert.True(t, payment.IsCompleted())
		assert.True(t, payment.IsValid())
	})

	t.Run("cannot complete a failed payment", func(t *testing.T) {
		payment := newTestPayment(t, "50")
		payment.Fail()
		assert.Error(t, payment.Complete())
	})

	t.Run("cannot complete a voided payment", func(t *testing.T) {
		payment := newTestPayment(t, "50")
		require.NoError(t, payment.Void())
		assert.Error(t, payment.Complete())
	})
}

func TestPaymentFail(t *testing.T) {
	payment := newTestPayment(t, "50")
	payment.Fail()

	assert.Equal(t, order.PaymentStatusFailed, payment.Status())
	assert.False(t, payment.IsValid())
	assert.False(t, payment.IsCompleted())
}

func TestPaymentVoid(t *testing.T) {
	t.Run("voids an uncaptured payment", func(t *testing.T) {
		payment := newTestPayment(t, "50")

		require.NoError(t, payment.Void())
		assert.Equal(t, order.PaymentStatusVoid, payment.Status())
		assert.True(t, payment.IsValid())
	})

	t.Run("cannot void a completed payment", func(t *testing.T) {
		payment := newTestPayment(t, "50")
		require.NoError(t, payment.Complete())
		assert.Error(t, payment.Void())
	})
}

func TestPaymentStatusFromString(t *testing.T) {
	tests := []struct {
		raw     string
		want    order.PaymentStatus
		wantErr bool
	}{
		{"checkout", order.PaymentStatusCheckout, false},
		{"pending", order.PaymentStatusPending, false},
		{"completed", order.PaymentStatusCompleted, false},
		{"failed", order.PaymentStatusFailed, false},
		{"void", order.PaymentStatusVoid, false},
		{"invalid", order.PaymentStatusInvalid, false},
		{"settled", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			status, err := order.PaymentStatusFromString(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}
