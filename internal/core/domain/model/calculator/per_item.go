package calculator

import "github.com/shopspring/decimal"

// PerItem charges a fixed amount for every unit in the calculable,
// e.g. a $0.50 packing fee per item of a line item.
type PerItem struct {
	amount decimal.Decimal
}

// NewPerItem creates a calculator charging the given amount per unit.
func NewPerItem(amount decimal.Decimal) *PerItem {
	return &PerItem{amount: amount}
}

// Compute returns amount * units.
func (c *PerItem) Compute(calculable Calculable) (decimal.Decimal, error) {
	if calculable == nil {
		return decimal.Zero, ErrCalculableIsRequired
	}

	return c.amount.Mul(decimal.NewFromInt(int64(calculable.CalculableUnits()))), nil
}
