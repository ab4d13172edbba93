package services

import (
	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/calculator"
)

// Adjustable is an order part that owns adjustments and caches their
// aggregated subtotals: a line item, a shipment, or the order itself.
type Adjustable interface {
	calculator.Calculable

	Adjustments() []*adjustment.Adjustment
	SetAdjustmentTotals(adjustmentTotal, feeTotal, includedTaxTotal, additionalTaxTotal decimal.Decimal)
}

// ItemAdjustments is a domain service that refreshes one adjustable's cached
// subtotal fields from its own attached adjustments.
//
// Key responsibilities:
//   - Recomputing each sourced adjustment against its adjustable
//   - Aggregating eligible adjustments into the four cached subtotals
//
// Business rules:
//   - Only the adjustable's own adjustments count; taxes levied on a fee are
//     children of that fee's adjustment and stay in the fee's ledger
//   - Price-inclusive tax is tracked separately and never enters the
//     chargeable adjustment total
//   - Ineligible adjustments are skipped but kept, so they can be reinstated
//   - Sourceless adjustments (manual charges) keep their stored amount
type ItemAdjustments struct{}

// NewItemAdjustments creates a new ItemAdjustments instance.
func NewItemAdjustments() ItemAdjustments {
	return ItemAdjustments{}
}

// Refresh recomputes the adjustable's adjustments and stores the aggregated
// subtotals on it. An adjustable with no eligible adjustments gets all four
// fields set to zero.
func (s ItemAdjustments) Refresh(adjustable Adjustable) error {
	includedTaxTotal := decimal.Zero
	additionalTaxTotal := decimal.Zero
	feeTotal := decimal.Zero

	for _, adj := range adjustable.Adjustments() {
		amount := adj.Amount()
		if adj.Source() != nil {
			recomputed, err := adj.Recompute(adjustable)
			if err != nil {
				return err
			}
			amount = recomputed
		}

		if !adj.Eligible() {
			continue
		}

		switch {
		case adj.Included():
			includedTaxTotal = includedTaxTotal.Add(amount)
		case adj.Originator().Type.IsTax():
			additionalTaxTotal = additionalTaxTotal.Add(amount)
		default:
			feeTotal = feeTotal.Add(amount)
		}
	}

	adjustmentTotal := feeTotal.Add(additionalTaxTotal)
	adjustable.SetAdjustmentTotals(adjustmentTotal, feeTotal, includedTaxTotal, additionalTaxTotal)

	return nil
}
