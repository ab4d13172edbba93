package services

import (
	"time"

	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/order"
)

// UpdateHook is an extension point invoked after the totals of an order have
// been recomputed but before the snapshot is persisted.
type UpdateHook func(ord *order.Order)

// Updater is the domain service running the coherent recomputation pass over
// one order. It is idempotent: running it twice on an unchanged order yields
// identical totals, and it never triggers another pass through persistence
// hooks (the resulting snapshot is persisted with a direct write).
//
// Sequence of a full pass:
//  1. For completed orders, infer the payment state, refresh the shipments
//     and infer the shipment state
//  2. Recompute the payment, item, adjustment and shipment totals, keeping
//     the grand total consistent after every sub-step
//  3. Run the registered post-update hooks
//
// Callers must serialize passes over the same order; passes over different
// orders are independent.
type Updater struct {
	itemAdjustments ItemAdjustments
	hooks           []UpdateHook
}

// NewUpdater creates a new Updater with the given post-update hooks.
func NewUpdater(hooks ...UpdateHook) Updater {
	return Updater{
		itemAdjustments: NewItemAdjustments(),
		hooks:           hooks,
	}
}

// Update runs the full recomputation pass over the order. On success the
// order carries a consistent monetary snapshot and its staleness flag is
// cleared. On failure the order must be discarded, not persisted: the
// previously stored snapshot remains authoritative.
func (u Updater) Update(ord *order.Order, now time.Time) error {
	if err := ord.Validate(); err != nil {
		return err
	}

	if ord.IsComplete() {
		ord.SetPaymentState(u.InferPaymentState(ord), now)
		for _, shipment := range ord.Shipments() {
			if err := u.itemAdjustments.Refresh(shipment); err != nil {
				return err
			}
		}
		ord.SetShipmentState(u.InferShipmentState(ord), now)
	}

	if err := u.updateTotals(ord); err != nil {
		return err
	}

	for _, hook := range u.hooks {
		hook(ord)
	}

	ord.ClearRecalculation()
	return nil
}

// RecalculateAdjustments refreshes the adjustment subtotals of every
// adjustable reachable from the order without touching payment or shipment
// inference. Each adjustable is visited exactly once, the order itself
// included: sourced order-level adjustments recompute against the order so a
// whole-order fee tracks the item total, and taxes levied on fee adjustments
// are recomputed in the fee's own ledger.
func (u Updater) RecalculateAdjustments(ord *order.Order) error {
	seen := make(map[string]struct{})

	for _, item := range ord.LineItems() {
		if err := u.refreshOnce(item, item.ID().String(), seen); err != nil {
			return err
		}
		if err := u.recomputeChildren(item.Adjustments(), seen); err != nil {
			return err
		}
	}

	for _, shipment := range ord.Shipments() {
		if err := u.refreshOnce(shipment, shipment.ID().String(), seen); err != nil {
			return err
		}
		if err := u.recomputeChildren(shipment.Adjustments(), seen); err != nil {
			return err
		}
	}

	for _, adj := range ord.Adjustments() {
		if adj.Source() == nil {
			continue
		}
		if _, err := adj.Recompute(ord); err != nil {
			return err
		}
	}

	return u.recomputeChildren(ord.Adjustments(), seen)
}

func (u Updater) refreshOnce(adjustable Adjustable, key string, seen map[string]struct{}) error {
	if _, ok := seen[key]; ok {
		return nil
	}
	seen[key] = struct{}{}
	return u.itemAdjustments.Refresh(adjustable)
}

func (u Updater) recomputeChildren(adjustments []*adjustment.Adjustment, seen map[string]struct{}) error {
	for _, parent := range adjustments {
		if len(parent.Children()) == 0 {
			continue
		}
		if _, ok := seen[parent.ID().String()]; ok {
			continue
		}
		seen[parent.ID().String()] = struct{}{}

		for _, child := range parent.Children() {
			if child.Source() == nil {
				continue
			}
			if _, err := child.Recompute(parent); err != nil {
				return err
			}
		}
	}
	return nil
}

// InferPaymentState derives the payment state label from the order and its
// payment history. It is a pure function of its input.
func (u Updater) InferPaymentState(ord *order.Order) order.PaymentState {
	payments := ord.Payments()
	if len(payments) > 0 && !anyValidPayment(payments) {
		return order.PaymentStateFailed
	}

	if ord.IsCanceled() && ord.PaymentTotal().IsZero() {
		return order.PaymentStateVoid
	}

	balance := ord.OutstandingBalance()
	switch {
	case balance.IsPositive():
		return order.PaymentStateBalanceDue
	case balance.IsNegative():
		return order.PaymentStateCreditOwed
	default:
		return order.PaymentStatePaid
	}
}

// InferShipmentState derives the shipment state label. Backorders take
// precedence over everything else; an order without shipments has no label.
func (u Updater) InferShipmentState(ord *order.Order) order.ShipmentState {
	shipments := ord.Shipments()
	if len(shipments) == 0 {
		return order.ShipmentStateUnknown
	}

	for _, shipment := range shipments {
		if shipment.IsBackordered() {
			return order.ShipmentStateBackorder
		}
	}

	first := shipments[0].Status()
	for _, shipment := range shipments[1:] {
		if shipment.Status() != first {
			return order.ShipmentStatePartial
		}
	}

	switch first {
	case order.ShipmentStatusReady:
		return order.ShipmentStateReady
	case order.ShipmentStatusShipped:
		return order.ShipmentStateShipped
	default:
		return order.ShipmentStatePending
	}
}

func (u Updater) updateTotals(ord *order.Order) error {
	paymentTotal := decimal.Zero
	for _, payment := range ord.Payments() {
		if payment.IsCompleted() {
			paymentTotal = paymentTotal.Add(payment.Amount())
		}
	}
	ord.SetPaymentTotal(paymentTotal)

	itemTotal := decimal.Zero
	for _, item := range ord.LineItems() {
		itemTotal = itemTotal.Add(item.Total())
	}
	ord.SetItemTotal(itemTotal)

	if err := u.RecalculateAdjustments(ord); err != nil {
		return err
	}

	adjustmentTotal := decimal.Zero
	feeTotal := decimal.Zero
	includedTaxTotal := decimal.Zero
	additionalTaxTotal := decimal.Zero

	for _, item := range ord.LineItems() {
		adjustmentTotal = adjustmentTotal.Add(item.AdjustmentTotal())
		feeTotal = feeTotal.Add(item.FeeTotal())
		includedTaxTotal = includedTaxTotal.Add(item.IncludedTaxTotal())
		additionalTaxTotal = additionalTaxTotal.Add(item.AdditionalTaxTotal())
	}
	for _, shipment := range ord.Shipments() {
		adjustmentTotal = adjustmentTotal.Add(shipment.AdjustmentTotal())
		feeTotal = feeTotal.Add(shipment.FeeTotal())
		includedTaxTotal = includedTaxTotal.Add(shipment.IncludedTaxTotal())
		additionalTaxTotal = additionalTaxTotal.Add(shipment.AdditionalTaxTotal())
	}
	for _, adj := range ord.Adjustments() {
		if !adj.Eligible() {
			continue
		}
		adjustmentTotal = adjustmentTotal.Add(adj.Amount())
		feeTotal = feeTotal.Add(adj.Amount())
	}

	ord.SetAdjustmentTotals(adjustmentTotal, feeTotal, includedTaxTotal, additionalTaxTotal)

	shipmentTotal := decimal.Zero
	for _, shipment := range ord.Shipments() {
		shipmentTotal = shipmentTotal.Add(shipment.Cost())
	}
	ord.SetShipmentTotal(shipmentTotal)

	u.clearDirtyMarks(ord)
	return nil
}

// clearDirtyMarks consumes the per-adjustment change markers once the
// snapshot has absorbed every amount. The narrow RecalculateAdjustments
// entry point leaves them set; only a full pass aggregates.
func (u Updater) clearDirtyMarks(ord *order.Order) {
	for _, item := range ord.LineItems() {
		clearDirtyTree(item.Adjustments())
	}
	for _, shipment := range ord.Shipments() {
		clearDirtyTree(shipment.Adjustments())
	}
	clearDirtyTree(ord.Adjustments())
}

func clearDirtyTree(adjustments []*adjustment.Adjustment) {
	for _, adj := range adjustments {
		adj.ClearDirty()
		clearDirtyTree(adj.Children())
	}
}

func anyValidPayment(payments []*order.Payment) bool {
	for _, payment := range payments {
		if payment.IsValid() {
			return true
		}
	}
	return false
}
