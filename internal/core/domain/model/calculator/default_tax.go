package calculator

import "github.com/shopspring/decimal"

// DefaultTax computes tax for a rate r against a calculable whose base p is
// either a pre-tax or a tax-inclusive figure:
//
//   - included in price: amount = p - p/(1+r), backing out the tax already
//     embedded in p;
//   - additional: amount = p * r, tax added on top.
//
// Amounts are returned unrounded; rounding happens once when the amount is
// stored on an adjustment.
type DefaultTax struct {
	rate            decimal.Decimal
	includedInPrice bool
}

// NewDefaultTax creates a tax calculator for the given rate, e.g. 0.05 for
// a 5% rate. includedInPrice selects the back-out formula.
func NewDefaultTax(rate decimal.Decimal, includedInPrice bool) *DefaultTax {
	return &DefaultTax{rate: rate, includedInPrice: includedInPrice}
}

// Rate returns the configured tax rate.
func (c *DefaultTax) Rate() decimal.Decimal {
	return c.rate
}

// IncludedInPrice reports whether the rate is embedded in displayed prices.
func (c *DefaultTax) IncludedInPrice() bool {
	return c.includedInPrice
}

// Compute returns the tax amount for the calculable's monetary base.
func (c *DefaultTax) Compute(calculable Calculable) (decimal.Decimal, error) {
	if calculable == nil {
		return decimal.Zero, ErrCalculableIsRequired
	}

	base := calculable.CalculableAmount()
	if c.includedInPrice {
		one := decimal.NewFromInt(1)
		return base.Sub(base.Div(one.Add(c.rate))), nil
	}

	return base.Mul(c.rate), nil
}
