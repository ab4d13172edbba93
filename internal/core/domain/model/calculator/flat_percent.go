package calculator

import "github.com/shopspring/decimal"

// FlatPercentItemTotal charges a percentage of the calculable's monetary
// base, e.g. 2.5% of a line item's price * quantity.
type FlatPercentItemTotal struct {
	// percent is expressed in whole percents, e.g. 2.5 for 2.5%.
	percent decimal.Decimal
}

// NewFlatPercentItemTotal creates a percentage-of-base calculator.
// The percent parameter is in whole percents (2.5 means 2.5%).
func NewFlatPercentItemTotal(percent decimal.Decimal) *FlatPercentItemTotal {
	return &FlatPercentItemTotal{percent: percent}
}

// Compute returns base * percent / 100.
func (c *FlatPercentItemTotal) Compute(calculable Calculable) (decimal.Decimal, error) {
	if calculable == nil {
		return decimal.Zero, ErrCalculableIsRequired
	}

	return calculable.CalculableAmount().Mul(c.percent).Div(decimal.NewFromInt(100)), nil
}
