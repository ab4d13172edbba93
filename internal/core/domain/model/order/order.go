package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrOrderAlreadyCompleted is returned when completing a non-cart order.
	ErrOrderAlreadyCompleted = errors.New("order has already been completed")
)

// Order is the aggregate root. It owns the line items, shipments, payments
// and order-level adjustments, and carries a monetary snapshot derived from
// them by the recomputation pass. The snapshot fields are caches; the
// attached collections are the source of truth.
type Order struct {
	id            kernel.UUID
	distributorID kernel.UUID
	status        Status
	completedAt   *time.Time

	lineItems   []*LineItem
	shipments   []*Shipment
	payments    []*Payment
	adjustments []*adjustment.Adjustment

	itemTotal          decimal.Decimal
	shipmentTotal      decimal.Decimal
	feeTotal           decimal.Decimal
	adjustmentTotal    decimal.Decimal
	includedTaxTotal   decimal.Decimal
	additionalTaxTotal decimal.Decimal
	paymentTotal       decimal.Decimal
	total              decimal.Decimal

	paymentState  PaymentState
	shipmentState ShipmentState
	stateChanges  []StateChange

	needsRecalculation bool

	guard kernel.ConstructorGuard
}

// NewOrder creates a new order in the cart status.
func NewOrder(id kernel.UUID, distributorID kernel.UUID) (*Order, error) {
	order := &Order{
		status: Cart,
		guard:  kernel.NewConstructorGuard(),
	}

	err := errors.Join(
		order.setID(id),
		order.setDistributorID(distributorID),
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence. The monetary snapshot
// is restored as-is; callers that need consistency guarantees run a
// recomputation pass afterwards.
func RestoreOrder(
	id kernel.UUID,
	distributorID kernel.UUID,
	status Status,
	completedAt *time.Time,
	paymentState PaymentState,
	shipmentState ShipmentState,
	itemTotal decimal.Decimal,
	shipmentTotal decimal.Decimal,
	feeTotal decimal.Decimal,
	adjustmentTotal decimal.Decimal,
	includedTaxTotal decimal.Decimal,
	additionalTaxTotal decimal.Decimal,
	paymentTotal decimal.Decimal,
	total decimal.Decimal,
	needsRecalculation bool,
) (*Order, error) {
	order := &Order{
		completedAt:        completedAt,
		paymentState:       paymentState,
		shipmentState:      shipmentState,
		itemTotal:          itemTotal,
		shipmentTotal:      shipmentTotal,
		feeTotal:           feeTotal,
		adjustmentTotal:    adjustmentTotal,
		includedTaxTotal:   includedTaxTotal,
		additionalTaxTotal: additionalTaxTotal,
		paymentTotal:       paymentTotal,
		total:              total,
		needsRecalculation: needsRecalculation,
		guard:              kernel.NewConstructorGuard(),
	}

	err := errors.Join(
		order.setID(id),
		order.setDistributorID(distributorID),
		order.setStatus(status),
	)
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setDistributorID(distributorID kernel.UUID) error {
	if err := distributorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("distributorID", err)
	}
	o.distributorID = distributorID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	o.status = status
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DistributorID returns the hub distributing this order.
func (o *Order) DistributorID() kernel.UUID {
	return o.distributorID
}

// Status returns the lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CompletedAt returns when checkout finished, or nil for a cart.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// IsComplete reports whether checkout has finished, even if the order was
// canceled afterwards.
func (o *Order) IsComplete() bool {
	return o.completedAt != nil
}

// IsCanceled reports whether the order has been canceled.
func (o *Order) IsCanceled() bool {
	return o.status == Canceled
}

// Complete transitions the order out of the cart status and stamps the
// completion time.
func (o *Order) Complete(at time.Time) error {
	next, err := o.status.Complete()
	if err != nil {
		return ErrOrderAlreadyCompleted
	}
	o.status = next
	completedAt := at
	o.completedAt = &completedAt
	o.needsRecalculation = true
	return nil
}

// Cancel transitions the order to the canceled status. The completion stamp
// is kept so payment-state inference can tell a paid cancellation apart from
// an abandoned cart.
func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = next
	o.needsRecalculation = true
	return nil
}

// LineItems returns the order's line items.
func (o *Order) LineItems() []*LineItem {
	return o.lineItems
}

// Shipments returns the order's shipments.
func (o *Order) Shipments() []*Shipment {
	return o.shipments
}

// Payments returns the order's payments.
func (o *Order) Payments() []*Payment {
	return o.payments
}

// Adjustments returns the order-level adjustments.
func (o *Order) Adjustments() []*adjustment.Adjustment {
	return o.adjustments
}

// AddLineItem attaches a line item to the order.
func (o *Order) AddLineItem(item *LineItem) error {
	if item == nil {
		return errs.NewValueIsRequiredError("lineItem")
	}
	if err := item.Validate(); err != nil {
		return err
	}
	o.lineItems = append(o.lineItems, item)
	o.needsRecalculation = true
	return nil
}

// AddShipment attaches a shipment to the order.
func (o *Order) AddShipment(shipment *Shipment) error {
	if shipment == nil {
		return errs.NewValueIsRequiredError("shipment")
	}
	if err := shipment.Validate(); err != nil {
		return err
	}
	o.shipments = append(o.shipments, shipment)
	o.needsRecalculation = true
	return nil
}

// AddPayment attaches a payment to the order.
func (o *Order) AddPayment(payment *Payment) error {
	if payment == nil {
		return errs.NewValueIsRequiredError("payment")
	}
	if err := payment.Validate(); err != nil {
		return err
	}
	o.payments = append(o.payments, payment)
	o.needsRecalculation = true
	return nil
}

// AddAdjustment attaches an order-level adjustment.
func (o *Order) AddAdjustment(adj *adjustment.Adjustment) error {
	if adj == nil {
		return errs.NewValueIsRequiredError("adjustment")
	}
	if err := adj.Validate(); err != nil {
		return err
	}
	o.adjustments = append(o.adjustments, adj)
	o.needsRecalculation = true
	return nil
}

// ItemTotal returns the cached sum of line item amounts.
func (o *Order) ItemTotal() decimal.Decimal {
	return o.itemTotal
}

// ShipmentTotal returns the cached sum of shipment costs.
func (o *Order) ShipmentTotal() decimal.Decimal {
	return o.shipmentTotal
}

// FeeTotal returns the cached sum of fee adjustments across the order.
func (o *Order) FeeTotal() decimal.Decimal {
	return o.feeTotal
}

// AdjustmentTotal returns the cached order-wide chargeable adjustment sum.
func (o *Order) AdjustmentTotal() decimal.Decimal {
	return o.adjustmentTotal
}

// IncludedTaxTotal returns the cached sum of price-inclusive tax.
func (o *Order) IncludedTaxTotal() decimal.Decimal {
	return o.includedTaxTotal
}

// AdditionalTaxTotal returns the cached sum of tax charged on top of prices.
func (o *Order) AdditionalTaxTotal() decimal.Decimal {
	return o.additionalTaxTotal
}

// PaymentTotal returns the cached sum of completed payments.
func (o *Order) PaymentTotal() decimal.Decimal {
	return o.paymentTotal
}

// Total returns the cached grand total.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// SetPaymentTotal stores the sum of completed payments.
func (o *Order) SetPaymentTotal(paymentTotal decimal.Decimal) {
	o.paymentTotal = paymentTotal
}

// SetItemTotal stores the sum of line item amounts and re-derives the total.
func (o *Order) SetItemTotal(itemTotal decimal.Decimal) {
	o.itemTotal = itemTotal
	o.deriveTotal()
}

// SetShipmentTotal stores the sum of shipment costs and re-derives the total.
func (o *Order) SetShipmentTotal(shipmentTotal decimal.Decimal) {
	o.shipmentTotal = shipmentTotal
	o.deriveTotal()
}

// SetAdjustmentTotals stores the order-wide adjustment aggregates and
// re-derives the total.
func (o *Order) SetAdjustmentTotals(adjustmentTotal, feeTotal, includedTaxTotal, additionalTaxTotal decimal.Decimal) {
	o.adjustmentTotal = adjustmentTotal
	o.feeTotal = feeTotal
	o.includedTaxTotal = includedTaxTotal
	o.additionalTaxTotal = additionalTaxTotal
	o.deriveTotal()
}

func (o *Order) deriveTotal() {
	o.total = o.itemTotal.Add(o.shipmentTotal).Add(o.adjustmentTotal)
}

// OutstandingBalance returns what the customer still owes. For a canceled
// order that has taken payments the whole payment total is owed back.
func (o *Order) OutstandingBalance() decimal.Decimal {
	if o.IsCanceled() && o.paymentTotal.IsPositive() {
		return o.paymentTotal.Neg()
	}
	return o.total.Sub(o.paymentTotal)
}

// PaymentState returns the inferred payment state label.
func (o *Order) PaymentState() PaymentState {
	return o.paymentState
}

// ShipmentState returns the inferred shipment state label.
// ShipmentStateUnknown means the order has no shipments.
func (o *Order) ShipmentState() ShipmentState {
	return o.shipmentState
}

// StateChanges returns the recorded label transitions.
func (o *Order) StateChanges() []StateChange {
	return o.stateChanges
}

// SetPaymentState stores the inferred payment state. A state change record
// is appended only when the value actually changes.
func (o *Order) SetPaymentState(state PaymentState, at time.Time) {
	if state == o.paymentState {
		return
	}
	o.stateChanges = append(o.stateChanges, NewStateChange(
		kernel.NewUUID(), "payment", o.paymentState.String(), state.String(), at,
	))
	o.paymentState = state
}

// SetShipmentState stores the inferred shipment state. A state change record
// is appended only when the value actually changes.
func (o *Order) SetShipmentState(state ShipmentState, at time.Time) {
	if state == o.shipmentState {
		return
	}
	o.stateChanges = append(o.stateChanges, NewStateChange(
		kernel.NewUUID(), "shipment", o.shipmentState.String(), state.String(), at,
	))
	o.shipmentState = state
}

// NeedsRecalculation reports whether the order's snapshot is stale.
func (o *Order) NeedsRecalculation() bool {
	return o.needsRecalculation
}

// MarkForRecalculation flags the order so the background recalculation job
// picks it up.
func (o *Order) MarkForRecalculation() {
	o.needsRecalculation = true
}

// ClearRecalculation resets the staleness flag after a successful pass.
func (o *Order) ClearRecalculation() {
	o.needsRecalculation = false
}

// CalculableAmount returns the base amount calculators compute against when
// a fee or tax applies to the whole order.
func (o *Order) CalculableAmount() decimal.Decimal {
	return o.itemTotal
}

// CalculableUnits returns the total number of purchased units.
func (o *Order) CalculableUnits() int {
	units := 0
	for _, item := range o.lineItems {
		units += item.Quantity()
	}
	return units
}

// Validate checks that the order was created via its constructor.
func (o *Order) Validate() error {
	return o.guard.Validate(errs.NewValueIsRequiredError("order"))
}
