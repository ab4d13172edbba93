package kernel_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"already rounded", "10.00", "10"},
		{"rounds down below half", "1.434", "1.43"},
		{"rounds up above half", "1.435", "1.44"},
		{"half rounds up", "2.505", "2.51"},
		{"included tax backout", "1.4285714285", "1.43"},
		{"negative rounds toward positive on tie", "-0.005", "0"},
		{"negative below tie rounds down", "-0.006", "-0.01"},
		{"zero", "0", "0"},
		{"credit amount", "-12.345", "-12.34"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := decimal.RequireFromString(tc.input)
			expected := decimal.RequireFromString(tc.expected)

			assert.True(t, kernel.RoundCurrency(in).Equal(expected),
				"RoundCurrency(%s) = %s, want %s", tc.input, kernel.RoundCurrency(in), expected)
		})
	}
}

func TestRoundCurrency_Idempotent(t *testing.T) {
	v := decimal.RequireFromString("7.777")
	once := kernel.RoundCurrency(v)
	twice := kernel.RoundCurrency(once)

	assert.True(t, once.Equal(twice))
}
