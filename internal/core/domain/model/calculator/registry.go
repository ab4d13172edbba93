package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"orders/internal/pkg/errs"
)

// Kind identifies a configured calculator strategy. Fee and tax definitions
// reference calculators by kind; the registry resolves the kind to a concrete
// instance at construction time, so no runtime type lookup is needed.
type Kind string

const (
	KindFlatRate             Kind = "flat_rate"
	KindFlatPercentItemTotal Kind = "flat_percent_item_total"
	KindPerItem              Kind = "per_item"
	KindDefaultTax           Kind = "default_tax"
)

// Params carries the configured numeric parameters for a calculator.
// Only the fields relevant to the kind are read.
type Params struct {
	// Amount is the fixed charge for flat-rate and per-item calculators.
	Amount decimal.Decimal

	// Percent is the whole-percent rate for percentage calculators.
	Percent decimal.Decimal

	// Rate is the fractional tax rate for tax calculators, e.g. 0.05.
	Rate decimal.Decimal

	// IncludedInPrice selects the tax back-out formula.
	IncludedInPrice bool
}

// Factory constructs a calculator from its configured parameters.
type Factory func(params Params) Calculator

// Registry maps calculator kinds to factories. A registry is assembled once
// in the composition root and shared read-only afterwards.
type Registry struct {
	factories map[Kind]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Kind]Factory)}
}

// NewDefaultRegistry creates a registry with all built-in calculators
// registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindFlatRate, func(p Params) Calculator { return NewFlatRate(p.Amount) })
	r.Register(KindFlatPercentItemTotal, func(p Params) Calculator { return NewFlatPercentItemTotal(p.Percent) })
	r.Register(KindPerItem, func(p Params) Calculator { return NewPerItem(p.Amount) })
	r.Register(KindDefaultTax, func(p Params) Calculator { return NewDefaultTax(p.Rate, p.IncludedInPrice) })
	return r
}

// Register binds a kind to a factory, replacing any previous binding.
func (r *Registry) Register(kind Kind, factory Factory) {
	r.factories[kind] = factory
}

// Build constructs the calculator registered under kind with the given
// parameters. Returns an error for unknown kinds.
func (r *Registry) Build(kind Kind, params Params) (Calculator, error) {
	factory, ok := r.factories[kind]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"calculator kind",
			fmt.Errorf("%q is not a registered calculator kind", kind),
		)
	}
	return factory(params), nil
}
