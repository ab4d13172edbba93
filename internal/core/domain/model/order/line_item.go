package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// StockPool identifies which inventory pool a line item draws from.
// Hubs may override producer stock levels, in which case the override pool
// is decremented on completion and must be restored on cancellation.
type StockPool int

const (
	// StockPoolNone means the line item does not track stock.
	StockPoolNone StockPool = iota

	// StockPoolCatalog draws from the producer's catalog stock.
	StockPoolCatalog

	// StockPoolHubOverride draws from the hub's own stock override.
	StockPoolHubOverride
)

func getStockPoolStrings() map[StockPool]string {
	return map[StockPool]string{
		StockPoolNone:        "none",
		StockPoolCatalog:     "catalog",
		StockPoolHubOverride: "hub_override",
	}
}

// Validate checks if the StockPool value is valid.
func (p StockPool) Validate() error {
	if _, ok := getStockPoolStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"stock pool is invalid",
			fmt.Errorf("%d is not a valid stock pool", p),
		)
	}
	return nil
}

// String returns the persisted name of the stock pool.
func (p StockPool) String() string {
	if str, ok := getStockPoolStrings()[p]; ok {
		return str
	}
	return "none"
}

// StockPoolFromString parses a persisted stock pool name.
func StockPoolFromString(raw string) (StockPool, error) {
	for pool, str := range getStockPoolStrings() {
		if str == raw {
			return pool, nil
		}
	}

	return 0, errs.NewValueIsInvalidErrorWithCause(
		"stock pool is invalid",
		fmt.Errorf("%q is not a valid stock pool", raw),
	)
}

// LineItem is one product position of the order. It records which stock pool
// it was drawn from so cancellation restores the same pool, and caches the
// aggregated totals of the adjustments targeting it.
type LineItem struct {
	id            kernel.UUID
	variantID     kernel.UUID
	productName   string
	price         decimal.Decimal
	quantity      int
	taxCategoryID *kernel.UUID
	stockPool     StockPool

	adjustments []*adjustment.Adjustment

	adjustmentTotal    decimal.Decimal
	feeTotal           decimal.Decimal
	includedTaxTotal   decimal.Decimal
	additionalTaxTotal decimal.Decimal

	guard kernel.ConstructorGuard
}

// NewLineItem creates a new line item drawing from the given stock pool.
func NewLineItem(
	id kernel.UUID,
	variantID kernel.UUID,
	productName string,
	price decimal.Decimal,
	quantity int,
	taxCategoryID *kernel.UUID,
	stockPool StockPool,
) (*LineItem, error) {
	item := &LineItem{
		guard: kernel.NewConstructorGuard(),
	}

	err := errors.Join(
		item.setID(id),
		item.setVariantID(variantID),
		item.setProductName(productName),
		item.setPrice(price),
		item.setQuantity(quantity),
		item.setTaxCategoryID(taxCategoryID),
		item.setStockPool(stockPool),
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreLineItem reconstructs a line item from persistence.
func RestoreLineItem(
	id kernel.UUID,
	variantID kernel.UUID,
	productName string,
	price decimal.Decimal,
	quantity int,
	taxCategoryID *kernel.UUID,
	stockPool StockPool,
	adjustmentTotal decimal.Decimal,
	feeTotal decimal.Decimal,
	includedTaxTotal decimal.Decimal,
	additionalTaxTotal decimal.Decimal,
) (*LineItem, error) {
	item := &LineItem{
		adjustmentTotal:    adjustmentTotal,
		feeTotal:           feeTotal,
		includedTaxTotal:   includedTaxTotal,
		additionalTaxTotal: additionalTaxTotal,
		guard:              kernel.NewConstructorGuard(),
	}

	err := errors.Join(
		item.setID(id),
		item.setVariantID(variantID),
		item.setProductName(productName),
		item.setPrice(price),
		item.setQuantity(quantity),
		item.setTaxCategoryID(taxCategoryID),
		item.setStockPool(stockPool),
	)
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (l *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	l.id = id
	return nil
}

func (l *LineItem) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("variantID", err)
	}
	l.variantID = variantID
	return nil
}

func (l *LineItem) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	l.productName = productName
	return nil
}

func (l *LineItem) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidError("price")
	}
	l.price = price
	return nil
}

func (l *LineItem) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	l.quantity = quantity
	return nil
}

func (l *LineItem) setTaxCategoryID(taxCategoryID *kernel.UUID) error {
	if taxCategoryID != nil {
		if err := taxCategoryID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("taxCategoryID", err)
		}
	}
	l.taxCategoryID = taxCategoryID
	return nil
}

func (l *LineItem) setStockPool(stockPool StockPool) error {
	if err := stockPool.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("stockPool", err)
	}
	l.stockPool = stockPool
	return nil
}

// ID returns the line item identifier.
func (l *LineItem) ID() kernel.UUID {
	return l.id
}

// VariantID returns the identifier of the purchased product variant.
func (l *LineItem) VariantID() kernel.UUID {
	return l.variantID
}

// ProductName returns the display name of the purchased product.
func (l *LineItem) ProductName() string {
	return l.productName
}

// Price returns the unit price.
func (l *LineItem) Price() decimal.Decimal {
	return l.price
}

// Quantity returns the purchased quantity.
func (l *LineItem) Quantity() int {
	return l.quantity
}

// TaxCategoryID returns the tax category of the product, if any.
func (l *LineItem) TaxCategoryID() *kernel.UUID {
	return l.taxCategoryID
}

// StockPool returns the inventory pool this line item draws from.
func (l *LineItem) StockPool() StockPool {
	return l.stockPool
}

// SetQuantity changes the purchased quantity.
func (l *LineItem) SetQuantity(quantity int) error {
	return l.setQuantity(quantity)
}

// Total returns price multiplied by quantity, before adjustments.
func (l *LineItem) Total() decimal.Decimal {
	return l.price.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Adjustments returns the adjustments targeting this line item.
func (l *LineItem) Adjustments() []*adjustment.Adjustment {
	return l.adjustments
}

// AddAdjustment attaches an adjustment to the line item.
func (l *LineItem) AddAdjustment(adj *adjustment.Adjustment) error {
	if adj == nil {
		return errs.NewValueIsRequiredError("adjustment")
	}
	if err := adj.Validate(); err != nil {
		return err
	}
	l.adjustments = append(l.adjustments, adj)
	return nil
}

// SetAdjustmentTotals stores the aggregated adjustment subtotals.
func (l *LineItem) SetAdjustmentTotals(adjustmentTotal, feeTotal, includedTaxTotal, additionalTaxTotal decimal.Decimal) {
	l.adjustmentTotal = adjustmentTotal
	l.feeTotal = feeTotal
	l.includedTaxTotal = includedTaxTotal
	l.additionalTaxTotal = additionalTaxTotal
}

// AdjustmentTotal returns the cached sum of eligible fee and additional tax adjustments.
func (l *LineItem) AdjustmentTotal() decimal.Decimal {
	return l.adjustmentTotal
}

// FeeTotal returns the cached sum of eligible fee adjustments.
func (l *LineItem) FeeTotal() decimal.Decimal {
	return l.feeTotal
}

// IncludedTaxTotal returns the cached sum of tax already contained in the price.
func (l *LineItem) IncludedTaxTotal() decimal.Decimal {
	return l.includedTaxTotal
}

// AdditionalTaxTotal returns the cached sum of tax charged on top of the price.
func (l *LineItem) AdditionalTaxTotal() decimal.Decimal {
	return l.additionalTaxTotal
}

// TotalWithAdjustments returns the line total plus the cached adjustment total.
func (l *LineItem) TotalWithAdjustments() decimal.Decimal {
	return l.Total().Add(l.adjustmentTotal)
}

// CalculableAmount returns the base amount calculators compute against.
func (l *LineItem) CalculableAmount() decimal.Decimal {
	return l.Total()
}

// CalculableUnits returns the unit count calculators compute against.
func (l *LineItem) CalculableUnits() int {
	return l.quantity
}

// Validate checks that the line item was created via its constructor.
func (l *LineItem) Validate() error {
	return l.guard.Validate(errs.NewValueIsRequiredError("lineItem"))
}
