package commands

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/pkg/errs"
)

// ErrLineItemNotFound is returned when the targeted line item does not belong
// to the order the fee is being applied to.
var ErrLineItemNotFound = errors.New("line item not found on order")

// ApplyEnterpriseFeeCommandHandler materializes a fee definition into a
// concrete adjustment. The calculator is resolved from the registry, the fee
// is applied through the applicator, and the adjustment plus its reporting
// metadata are persisted in one transaction. The order is flagged for
// recalculation so the snapshot catches up.
type ApplyEnterpriseFeeCommandHandler struct {
	uowFactory OrderUoWFactory
	registry   *calculator.Registry
	applicator services.EnterpriseFeeApplicator
}

// NewApplyEnterpriseFeeCommandHandler creates a handler for fee application.
func NewApplyEnterpriseFeeCommandHandler(
	uowFactory OrderUoWFactory,
	registry *calculator.Registry,
) ApplyEnterpriseFeeCommandHandler {
	return ApplyEnterpriseFeeCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		applicator: services.NewEnterpriseFeeApplicator(),
	}
}

// Handle processes the fee application command.
func (h *ApplyEnterpriseFeeCommandHandler) Handle(ctx context.Context, cmd ApplyEnterpriseFeeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	calc, err := h.registry.Build(cmd.CalculatorKind(), cmd.CalculatorParams())
	if err != nil {
		return err
	}

	enterpriseFee, err := fee.NewEnterpriseFee(
		cmd.FeeID(),
		cmd.EnterpriseID(),
		cmd.EnterpriseName(),
		cmd.FeeName(),
		cmd.FeeType(),
		calc,
		cmd.InheritsTaxCategory(),
		cmd.TaxCategoryID(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var applied *services.AppliedFee
	if lineItemID := cmd.LineItemID(); lineItemID != nil {
		item := findLineItem(aggregate, lineItemID)
		if item == nil {
			return errs.NewObjectNotFoundErrorWithCause("lineItemID", lineItemID.String(), ErrLineItemNotFound)
		}
		applied, err = h.applicator.ApplyToLineItem(enterpriseFee, aggregate, item, cmd.Role())
	} else {
		applied, err = h.applicator.ApplyToOrder(enterpriseFee, aggregate, cmd.Role())
	}
	if err != nil {
		return err
	}

	aggregate.MarkForRecalculation()

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = orderRepo.AddAdjustmentMetadata(ctx, applied.Metadata); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func findLineItem(aggregate *order.Order, id *kernel.UUID) *order.LineItem {
	for _, item := range aggregate.LineItems() {
		if item.ID().IsEqual(*id) {
			return item
		}
	}
	return nil
}
