package kernel

import "github.com/shopspring/decimal"

// currencyPlaces is the minor-unit precision used for all persisted amounts.
const currencyPlaces = 2

// RoundCurrency rounds a monetary amount to the currency's minor-unit
// precision (2 decimal places) using round-half-up: ties move toward
// positive infinity, so -0.005 rounds to 0.00 while 0.005 rounds to 0.01.
//
// Rounding is applied once at the point an amount is stored on an entity,
// never on intermediate sums, so repeated aggregation passes stay stable.
func RoundCurrency(amount decimal.Decimal) decimal.Decimal {
	shifted := amount.Shift(currencyPlaces)
	floor := shifted.Floor()
	if shifted.Sub(floor).Cmp(decimal.NewFromFloat(0.5)) >= 0 {
		floor = floor.Add(decimal.NewFromInt(1))
	}
	return floor.Shift(-currencyPlaces)
}
