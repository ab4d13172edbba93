// Package tax contains the tax-rate definition consumed by the adjustment
// engine. Zone matching and category assignment happen upstream; by the time
// a TaxRate reaches this package it is already known to apply.
package tax

import (
	"errors"

	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// ErrTaxRateIsNotConstructed is returned when a TaxRate instance was not
// created through the NewTaxRate constructor.
var ErrTaxRateIsNotConstructed = errors.New("TaxRate must be created via NewTaxRate constructor")

// TaxRate describes one rate applied to a tax category, either embedded in
// displayed prices or charged on top. It is an adjustment source: adjustments
// it originates recompute through its DefaultTax calculator.
type TaxRate struct {
	id              kernel.UUID
	name            string
	rate            decimal.Decimal
	includedInPrice bool
	taxCategoryID   kernel.UUID
	calculator      *calculator.DefaultTax

	guard kernel.ConstructorGuard
}

// NewTaxRate creates a validated tax rate. The rate is fractional, e.g. 0.05
// for 5%, and must not be negative.
func NewTaxRate(
	id kernel.UUID,
	name string,
	rate decimal.Decimal,
	includedInPrice bool,
	taxCategoryID kernel.UUID,
) (*TaxRate, error) {
	t := &TaxRate{
		includedInPrice: includedInPrice,
		guard:           kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setName(name),
		t.setRate(rate),
		t.setTaxCategoryID(taxCategoryID),
	); err != nil {
		return nil, err
	}

	t.calculator = calculator.NewDefaultTax(rate, includedInPrice)
	return t, nil
}

// Validate ensures the TaxRate was created through NewTaxRate.
func (t *TaxRate) Validate() error {
	if t == nil {
		return ErrTaxRateIsNotConstructed
	}
	return t.guard.Validate(ErrTaxRateIsNotConstructed)
}

// ID returns the tax rate's unique identifier.
func (t *TaxRate) ID() kernel.UUID {
	return t.id
}

// Name returns the display name, e.g. "VAT 5%".
func (t *TaxRate) Name() string {
	return t.name
}

// Rate returns the fractional rate.
func (t *TaxRate) Rate() decimal.Decimal {
	return t.rate
}

// IncludedInPrice reports whether the rate is embedded in displayed prices.
func (t *TaxRate) IncludedInPrice() bool {
	return t.includedInPrice
}

// TaxCategoryID returns the category of goods this rate applies to.
func (t *TaxRate) TaxCategoryID() kernel.UUID {
	return t.taxCategoryID
}

// ComputeAmount implements adjustment.Source through the tax calculator.
func (t *TaxRate) ComputeAmount(target calculator.Calculable) (decimal.Decimal, error) {
	return t.calculator.Compute(target)
}

func (t *TaxRate) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *TaxRate) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("tax rate name")
	}
	t.name = name
	return nil
}

func (t *TaxRate) setRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return errs.NewValueIsInvalidError("tax rate must not be negative")
	}
	t.rate = rate
	return nil
}

func (t *TaxRate) setTaxCategoryID(taxCategoryID kernel.UUID) error {
	if err := taxCategoryID.Validate(); err != nil {
		return err
	}
	t.taxCategoryID = taxCategoryID
	return nil
}
