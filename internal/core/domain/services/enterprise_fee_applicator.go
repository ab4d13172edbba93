package services

import (
	"fmt"

	"orders/internal/core/domain/model/adjustment"
	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
)

// AppliedFee is the result of materializing a fee definition: the ledger
// entry attached to the adjustable plus the reporting metadata row keyed by
// its id. Metadata is write-only for the recomputation pipeline; only
// reporting reads it.
type AppliedFee struct {
	Adjustment *adjustment.Adjustment
	Metadata   *fee.AdjustmentMetadata
}

// EnterpriseFeeApplicator is a domain service that turns an enterprise fee
// definition into a concrete adjustment on a line item or a whole order.
//
// Business rules:
//   - Fee adjustments are mandatory, so a zero computed amount still
//     produces a ledger entry
//   - Fee adjustments start closed: they are frozen against recomputation
//     triggered by cart edits but can be reopened by fee changes
//   - The tax category comes from the line item's product when the fee
//     inherits it, otherwise from the fee definition itself
type EnterpriseFeeApplicator struct{}

// NewEnterpriseFeeApplicator creates a new EnterpriseFeeApplicator instance.
func NewEnterpriseFeeApplicator() EnterpriseFeeApplicator {
	return EnterpriseFeeApplicator{}
}

// ApplyToLineItem computes the fee against the line item and attaches the
// resulting adjustment to it.
func (s EnterpriseFeeApplicator) ApplyToLineItem(
	enterpriseFee *fee.EnterpriseFee,
	ord *order.Order,
	item *order.LineItem,
	role fee.Role,
) (*AppliedFee, error) {
	if err := enterpriseFee.Validate(); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	label := fmt.Sprintf("%s - %s", item.ProductName(), feeLabel(enterpriseFee, role))

	applied, err := s.apply(enterpriseFee, ord, item, role, label)
	if err != nil {
		return nil, err
	}

	if err := item.AddAdjustment(applied.Adjustment); err != nil {
		return nil, err
	}
	return applied, nil
}

// ApplyToOrder computes the fee against the whole order and attaches the
// resulting adjustment at order level.
func (s EnterpriseFeeApplicator) ApplyToOrder(
	enterpriseFee *fee.EnterpriseFee,
	ord *order.Order,
	role fee.Role,
) (*AppliedFee, error) {
	if err := enterpriseFee.Validate(); err != nil {
		return nil, err
	}

	label := fmt.Sprintf("whole order - %s", feeLabel(enterpriseFee, role))

	applied, err := s.apply(enterpriseFee, ord, ord, role, label)
	if err != nil {
		return nil, err
	}

	if err := ord.AddAdjustment(applied.Adjustment); err != nil {
		return nil, err
	}
	return applied, nil
}

// TaxCategoryFor resolves which tax category governs taxes on the fee when
// applied to the given line item.
func (s EnterpriseFeeApplicator) TaxCategoryFor(enterpriseFee *fee.EnterpriseFee, item *order.LineItem) *kernel.UUID {
	if enterpriseFee.InheritsTaxCategory() {
		return item.TaxCategoryID()
	}
	return enterpriseFee.TaxCategoryID()
}

func (s EnterpriseFeeApplicator) apply(
	enterpriseFee *fee.EnterpriseFee,
	ord *order.Order,
	target Adjustable,
	role fee.Role,
	label string,
) (*AppliedFee, error) {
	amount, err := enterpriseFee.ComputeAmount(target)
	if err != nil {
		return nil, err
	}

	adj, err := adjustment.NewCalculatedAdjustment(
		kernel.NewUUID(),
		ord.ID(),
		label,
		amount,
		adjustment.Originator{Type: adjustment.OriginatorEnterpriseFee, ID: enterpriseFee.ID()},
		enterpriseFee,
		true,
		adjustment.Closed,
	)
	if err != nil {
		return nil, err
	}

	metadata, err := fee.NewAdjustmentMetadata(
		adj.ID(),
		enterpriseFee.EnterpriseID(),
		enterpriseFee.Name(),
		enterpriseFee.FeeType(),
		role,
	)
	if err != nil {
		return nil, err
	}

	return &AppliedFee{Adjustment: adj, Metadata: metadata}, nil
}

func feeLabel(enterpriseFee *fee.EnterpriseFee, role fee.Role) string {
	return fmt.Sprintf("%s fee by %s %s", enterpriseFee.FeeType(), role.String(), enterpriseFee.EnterpriseName())
}
