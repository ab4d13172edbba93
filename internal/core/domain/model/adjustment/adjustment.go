// Package adjustment contains the monetary ledger entry of the recalculation
// engine. An adjustment represents a signed change (tax, fee, credit) to the
// thing it is attached to, with its own open/closed/finalized lifecycle.
package adjustment

import (
	"errors"

	"github.com/shopspring/decimal"

	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
)

var (
	// ErrAdjustmentIsNotConstructed is returned when an Adjustment instance was
	// not created through NewAdjustment or RestoreAdjustment.
	ErrAdjustmentIsNotConstructed = errors.New("Adjustment must be created via NewAdjustment constructor")

	// ErrSourceIsRequired is returned when a recompute is requested for an
	// adjustment that has no source bound to produce its amount.
	ErrSourceIsRequired = errs.NewValueIsRequiredError("adjustment source")
)

// Source is the capability an originator exposes to the adjustment: compute
// an amount from a calculable context. Tax rates and enterprise fees both
// satisfy it.
type Source interface {
	ComputeAmount(target calculator.Calculable) (decimal.Decimal, error)
}

// Adjustment is a signed monetary ledger entry attached to a line item,
// shipment, order, or another adjustment (tax levied on a fee attaches to
// the fee adjustment, not its line item).
//
// Flags:
//   - included: the amount is tax already embedded in a displayed price; it
//     counts toward included_tax_total but never toward the chargeable
//     adjustment or fee totals.
//   - mandatory: the entry is persisted even at zero amount, e.g. to make
//     "$0 shipping" explicit.
//   - eligible: gates whether the amount counts toward order-level
//     aggregation; ineligible adjustments are preserved so they can be
//     reinstated.
//
// Once the state machine reaches Finalized the amount is immutable:
// recompute requests silently return the stored amount.
type Adjustment struct {
	id         kernel.UUID
	orderID    kernel.UUID
	label      string
	amount     decimal.Decimal
	included   bool
	mandatory  bool
	eligible   bool
	state      State
	originator Originator
	source     Source

	// children are adjustments whose adjustable is this adjustment,
	// e.g. tax charged on an enterprise fee. They affect this entry's own
	// bookkeeping only, never the parent adjustable's totals.
	children []*Adjustment

	// dirty is set whenever an eligible amount changes; the full
	// recomputation pass clears it once the order snapshot has absorbed
	// the change. Notification only - no recomputation is triggered from
	// here.
	dirty bool

	guard kernel.ConstructorGuard
}

// NewAdjustment creates a validated adjustment in the given initial state.
// The amount is rounded to currency precision on the way in. A source may be
// nil for manual admin entries, which are never recomputed from a source.
func NewAdjustment(
	id kernel.UUID,
	orderID kernel.UUID,
	label string,
	amount decimal.Decimal,
	originator Originator,
	source Source,
	mandatory bool,
	initialState State,
) (*Adjustment, error) {
	a := &Adjustment{
		eligible:  true,
		mandatory: mandatory,
		source:    source,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setLabel(label),
		a.setOriginator(originator),
		a.setState(initialState),
	); err != nil {
		return nil, err
	}

	a.amount = kernel.RoundCurrency(amount)
	a.dirty = true
	return a, nil
}

// NewCalculatedAdjustment materializes a computed amount as a ledger entry.
// A zero amount produces no entry unless the charge is mandatory, so
// optional originators never leave empty rows behind. Returns nil without
// error when the entry is skipped.
func NewCalculatedAdjustment(
	id kernel.UUID,
	orderID kernel.UUID,
	label string,
	amount decimal.Decimal,
	originator Originator,
	source Source,
	mandatory bool,
	initialState State,
) (*Adjustment, error) {
	if kernel.RoundCurrency(amount).IsZero() && !mandatory {
		return nil, nil
	}
	return NewAdjustment(id, orderID, label, amount, originator, source, mandatory, initialState)
}

// RestoreAdjustment reconstructs an adjustment from persistence with all
// flags in their stored values. The source must be re-bound by the caller
// from the originator reference; it may stay nil until a recompute is needed.
func RestoreAdjustment(
	id kernel.UUID,
	orderID kernel.UUID,
	label string,
	amount decimal.Decimal,
	included bool,
	mandatory bool,
	eligible bool,
	state State,
	originator Originator,
	source Source,
) (*Adjustment, error) {
	a, err := NewAdjustment(id, orderID, label, amount, originator, source, mandatory, state)
	if err != nil {
		return nil, err
	}

	a.included = included
	a.eligible = eligible
	a.dirty = false
	return a, nil
}

// Validate ensures the Adjustment was created through a constructor.
func (a *Adjustment) Validate() error {
	if a == nil {
		return ErrAdjustmentIsNotConstructed
	}
	return a.guard.Validate(ErrAdjustmentIsNotConstructed)
}

// ID returns the adjustment's unique identifier.
func (a *Adjustment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the owning order's identifier.
func (a *Adjustment) OrderID() kernel.UUID {
	return a.orderID
}

// Label returns the human-readable description of the charge.
func (a *Adjustment) Label() string {
	return a.label
}

// Amount returns the signed amount; positive is a charge, negative a credit.
func (a *Adjustment) Amount() decimal.Decimal {
	return a.amount
}

// Included reports whether the amount is price-inclusive tax.
func (a *Adjustment) Included() bool {
	return a.included
}

// Mandatory reports whether a zero amount is still persisted.
func (a *Adjustment) Mandatory() bool {
	return a.mandatory
}

// Eligible reports whether the amount counts toward order-level aggregation.
func (a *Adjustment) Eligible() bool {
	return a.eligible
}

// State returns the current lifecycle state.
func (a *Adjustment) State() State {
	return a.state
}

// Originator returns the reference to whatever produced the amount.
func (a *Adjustment) Originator() Originator {
	return a.originator
}

// Source returns the bound amount source, nil for manual entries.
func (a *Adjustment) Source() Source {
	return a.source
}

// BindSource attaches the amount source after restoration from persistence.
func (a *Adjustment) BindSource(source Source) {
	a.source = source
}

// Children returns adjustments attached to this adjustment, such as tax
// levied on a fee.
func (a *Adjustment) Children() []*Adjustment {
	return a.children
}

// AddChild attaches a sub-adjustment to this adjustment. The child's
// amounts stay in this entry's own ledger and never roll up into the
// parent adjustable's totals.
func (a *Adjustment) AddChild(child *Adjustment) error {
	if err := child.Validate(); err != nil {
		return err
	}
	a.children = append(a.children, child)
	return nil
}

// SetEligible toggles the aggregation gate. Flipping eligibility marks the
// entry dirty so the next pass picks the change up.
func (a *Adjustment) SetEligible(eligible bool) {
	if a.eligible == eligible {
		return
	}
	a.eligible = eligible
	a.dirty = true
}

// IsDirty reports whether the amount or eligibility changed since the last
// aggregation pass.
func (a *Adjustment) IsDirty() bool {
	return a.dirty
}

// ClearDirty resets the dirty marker; the full recomputation pass calls it
// once the change has been aggregated into the order snapshot.
func (a *Adjustment) ClearDirty() {
	a.dirty = false
}

// Recompute refreshes the amount from the bound source against the given
// target context. Finalized adjustments are immutable: the stored amount is
// returned unchanged and no error is raised, since a frozen ledger entry is
// a normal steady state rather than a fault.
func (a *Adjustment) Recompute(target calculator.Calculable) (decimal.Decimal, error) {
	if a.state == Finalized {
		return a.amount, nil
	}

	if a.source == nil {
		return decimal.Zero, ErrSourceIsRequired
	}

	computed, err := a.source.ComputeAmount(target)
	if err != nil {
		return decimal.Zero, err
	}

	rounded := kernel.RoundCurrency(computed)
	if !rounded.Equal(a.amount) {
		a.amount = rounded
		if a.eligible {
			a.dirty = true
		}
	}

	return a.amount, nil
}

// SetIncludedTax treats the current amount as a tax-inclusive gross figure,
// backs the embedded tax component out at the given rate and stores it as
// the amount, marking the entry as price-inclusive tax:
//
//	tax = amount - amount/(1+rate)
func (a *Adjustment) SetIncludedTax(rate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	tax := a.amount.Sub(a.amount.Div(one.Add(rate)))

	a.amount = kernel.RoundCurrency(tax)
	a.included = true
	if a.eligible {
		a.dirty = true
	}

	return a.amount
}

// CalculableAmount returns the adjustment's own amount, making the
// adjustment a valid target for taxes levied on it.
func (a *Adjustment) CalculableAmount() decimal.Decimal {
	return a.amount
}

// CalculableUnits returns the unit count for calculators targeting this
// adjustment. A ledger entry is always a single unit.
func (a *Adjustment) CalculableUnits() int {
	return 1
}

// Close transitions the adjustment from Open to Closed.
func (a *Adjustment) Close() error {
	newState, err := a.state.Close()
	if err != nil {
		return err
	}

	a.state = newState
	return nil
}

// Reopen transitions the adjustment from Closed back to Open.
func (a *Adjustment) Reopen() error {
	newState, err := a.state.Reopen()
	if err != nil {
		return err
	}

	a.state = newState
	return nil
}

// Finalize freezes the amount permanently. Valid from Open or Closed.
func (a *Adjustment) Finalize() error {
	newState, err := a.state.Finalize()
	if err != nil {
		return err
	}

	a.state = newState
	return nil
}

func (a *Adjustment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Adjustment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Adjustment) setLabel(label string) error {
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	a.label = label
	return nil
}

func (a *Adjustment) setOriginator(originator Originator) error {
	if err := originator.Validate(); err != nil {
		return err
	}
	a.originator = originator
	return nil
}

func (a *Adjustment) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	a.state = state
	return nil
}
