package calculator

import "github.com/shopspring/decimal"

// FlatRate charges a fixed amount regardless of the calculable's value.
type FlatRate struct {
	amount decimal.Decimal
}

// NewFlatRate creates a calculator that always returns the given amount.
func NewFlatRate(amount decimal.Decimal) *FlatRate {
	return &FlatRate{amount: amount}
}

// Compute returns the configured flat amount.
func (c *FlatRate) Compute(calculable Calculable) (decimal.Decimal, error) {
	if calculable == nil {
		return decimal.Zero, ErrCalculableIsRequired
	}
	return c.amount, nil
}
