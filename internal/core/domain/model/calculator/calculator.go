// Package calculator provides the pure pricing strategies that turn a
// monetary context into a charge amount. Calculators never mutate the
// calculable they read; all rounding happens at the persistence edge.
package calculator

import (
	"github.com/shopspring/decimal"

	"orders/internal/pkg/errs"
)

// Calculable is the monetary context a calculator reads. A line item exposes
// price multiplied by quantity and its unit count, a shipment exposes its
// cost with a single unit, an order exposes its item total.
type Calculable interface {
	// CalculableAmount returns the monetary base the calculator works from.
	CalculableAmount() decimal.Decimal

	// CalculableUnits returns the unit count for per-item calculators.
	CalculableUnits() int
}

// Calculator is the strategy contract: compute an amount from a calculable
// context and the calculator's own configured parameters.
type Calculator interface {
	Compute(calculable Calculable) (decimal.Decimal, error)
}

// ErrCalculableIsRequired is returned when Compute is called with a nil
// calculable context.
var ErrCalculableIsRequired = errs.NewValueIsRequiredError("calculable")
