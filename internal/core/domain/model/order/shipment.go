package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

// ShipmentStatus is the fulfilment state of a single shipment.
type ShipmentStatus int

const (
	// ShipmentStatusUnknown represents an invalid or undefined shipment status.
	ShipmentStatusUnknown ShipmentStatus = iota

	// ShipmentStatusPending is a shipment still being prepared.
	ShipmentStatusPending

	// ShipmentStatusReady is a shipment packed and awaiting dispatch.
	ShipmentStatusReady

	// ShipmentStatusShipped is a dispatched shipment.
	ShipmentStatusShipped
)

func getShipmentStatusStrings() map[ShipmentStatus]string {
	return map[ShipmentStatus]string{
		ShipmentStatusUnknown: "unknown",
		ShipmentStatusPending: "pending",
		ShipmentStatusReady:   "ready",
		ShipmentStatusShipped: "shipped",
	}
}

func getValidShipmentStatusStrings() map[ShipmentStatus]string {
	//nolint:exhaustive // ShipmentStatusUnknown is intentionally excluded as it's invalid
	return map[ShipmentStatus]string{
		ShipmentStatusPending: "pending",
		ShipmentStatusReady:   "ready",
		ShipmentStatusShipped: "shipped",
	}
}

// Validate checks if the ShipmentStatus value is valid.
func (s ShipmentStatus) Validate() error {
	if _, ok := getValidShipmentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment status is invalid",
			fmt.Errorf("%d is not a valid shipment status", s),
		)
	}
	return nil
}

// String returns the persisted name of the shipment status.
func (s ShipmentStatus) String() string {
	if str, ok := getShipmentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ShipmentStatusFromString parses a persisted shipment status name.
func ShipmentStatusFromString(raw string) (ShipmentStatus, error) {
	for status, str := range getValidShipmentStatusStrings() {
		if str == raw {
			return status, nil
		}
	}

	return 0, errs.NewValueIsInvalidErrorWithCause(
		"shipment status is invalid",
		fmt.Errorf("%q is not a valid shipment status", raw),
	)
}

// Shipment is a deliverable parcel of the order. It carries its own cost,
// which tax rates and fees can adjust, and caches the aggregated totals of
// those adjustments.
type Shipment struct {
	id          kernel.UUID
	cost        decimal.Decimal
	status      ShipmentStatus
	backordered bool

	adjustments []*adjustment.Adjustment

	adjustmentTotal    decimal.Decimal
	feeTotal           decimal.Decimal
	includedTaxTotal   decimal.Decimal
	additionalTaxTotal decimal.Decimal

	guard kernel.ConstructorGuard
}

// NewShipment creates a new pending shipment.
func NewShipment(id kernel.UUID, cost decimal.Decimal) (*Shipment, error) {
	shipment := &Shipment{
		status: ShipmentStatusPending,
		guard:  kernel.NewConstructorGuard(),
	}

	err := errors.Join(
		shipment.setID(id),
		shipment.setCost(cost),
	)
	if err != nil {
		return nil, err
	}

	return shipment, nil
}

// RestoreShipment reconstructs a shipment from persistence.
func RestoreShipment(
	id kernel.UUID,
	cost decimal.Decimal,
	status ShipmentStatus,
	backordered bool,
	adjustmentTotal decimal.Decimal,
	feeTotal decimal.Decimal,
	includedTaxTotal decimal.Decimal,
	additionalTaxTotal decimal.Decimal,
) (*Shipment, error) {
	shipment := &Shipment{
		backordered:        backordered,
		adjustmentTotal:    adjustmentTotal,
		feeTotal:           feeTotal,
		includedTaxTotal:   includedTaxTotal,
		additionalTaxTotal: additionalTaxTotal,
		guard:              kernel.NewConstructorGuard(),
	}

	err := errors.Join(
		shipment.setID(id),
		shipment.setCost(cost),
		shipment.setStatus(status),
	)
	if err != nil {
		return nil, err
	}

	return shipment, nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	s.id = id
	return nil
}

func (s *Shipment) setCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidError("cost")
	}
	s.cost = cost
	return nil
}

func (s *Shipment) setStatus(status ShipmentStatus) error {
	if err := status.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	s.status = status
	return nil
}

// ID returns the shipment identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Cost returns the shipping cost before adjustments.
func (s *Shipment) Cost() decimal.Decimal {
	return s.cost
}

// Status returns the fulfilment status.
func (s *Shipment) Status() ShipmentStatus {
	return s.status
}

// IsBackordered reports whether the shipment is waiting on stock.
func (s *Shipment) IsBackordered() bool {
	return s.backordered
}

// MarkBackordered flags the shipment as waiting on stock.
func (s *Shipment) MarkBackordered() {
	s.backordered = true
}

// ClearBackorder removes the backorder flag, typically after restocking.
func (s *Shipment) ClearBackorder() {
	s.backordered = false
}

// Ready transitions pending -> ready.
func (s *Shipment) Ready() error {
	if s.status != ShipmentStatusPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to ready from", s.status.String()),
		)
	}
	s.status = ShipmentStatusReady
	return nil
}

// Ship transitions ready -> shipped.
func (s *Shipment) Ship() error {
	if s.status != ShipmentStatusReady {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to ship from", s.status.String()),
		)
	}
	s.status = ShipmentStatusShipped
	return nil
}

// Adjustments returns the adjustments targeting this shipment.
func (s *Shipment) Adjustments() []*adjustment.Adjustment {
	return s.adjustments
}

// AddAdjustment attaches an adjustment to the shipment.
func (s *Shipment) AddAdjustment(adj *adjustment.Adjustment) error {
	if adj == nil {
		return errs.NewValueIsRequiredError("adjustment")
	}
	if err := adj.Validate(); err != nil {
		return err
	}
	s.adjustments = append(s.adjustments, adj)
	return nil
}

// SetAdjustmentTotals stores the aggregated adjustment subtotals.
func (s *Shipment) SetAdjustmentTotals(adjustmentTotal, feeTotal, includedTaxTotal, additionalTaxTotal decimal.Decimal) {
	s.adjustmentTotal = adjustmentTotal
	s.feeTotal = feeTotal
	s.includedTaxTotal = includedTaxTotal
	s.additionalTaxTotal = additionalTaxTotal
}

// AdjustmentTotal returns the cached sum of eligible fee and additional tax adjustments.
func (s *Shipment) AdjustmentTotal() decimal.Decimal {
	return s.adjustmentTotal
}

// FeeTotal returns the cached sum of eligible fee adjustments.
func (s *Shipment) FeeTotal() decimal.Decimal {
	return s.feeTotal
}

// IncludedTaxTotal returns the cached sum of tax already contained in the cost.
func (s *Shipment) IncludedTaxTotal() decimal.Decimal {
	return s.includedTaxTotal
}

// AdditionalTaxTotal returns the cached sum of tax charged on top of the cost.
func (s *Shipment) AdditionalTaxTotal() decimal.Decimal {
	return s.additionalTaxTotal
}

// TotalWithAdjustments returns the cost plus the cached adjustment total.
func (s *Shipment) TotalWithAdjustments() decimal.Decimal {
	return s.cost.Add(s.adjustmentTotal)
}

// CalculableAmount returns the base amount calculators compute against.
func (s *Shipment) CalculableAmount() decimal.Decimal {
	return s.cost
}

// CalculableUnits returns the unit count calculators compute against.
func (s *Shipment) CalculableUnits() int {
	return 1
}

// Validate checks that the shipment was created via its constructor.
func (s *Shipment) Validate() error {
	return s.guard.Validate(errs.NewValueIsRequiredError("shipment"))
}
