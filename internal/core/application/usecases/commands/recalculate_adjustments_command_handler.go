package commands

import (
	"context"

	"orders/internal/core/domain/services"
)

// RecalculateAdjustmentsCommandHandler refreshes the adjustment subtotals of
// every adjustable reachable from an order without running state inference.
// The order is flagged for a later full pass so the snapshot columns catch
// up through the background job.
type RecalculateAdjustmentsCommandHandler struct {
	uowFactory OrderUoWFactory
	updater    services.Updater
}

// NewRecalculateAdjustmentsCommandHandler creates a handler for the narrow
// adjustment refresh operation.
func NewRecalculateAdjustmentsCommandHandler(uowFactory OrderUoWFactory, updater services.Updater) RecalculateAdjustmentsCommandHandler {
	return RecalculateAdjustmentsCommandHandler{
		uowFactory: uowFactory,
		updater:    updater,
	}
}

// Handle processes the adjustment refresh command.
func (h *RecalculateAdjustmentsCommandHandler) Handle(ctx context.Context, cmd RecalculateAdjustmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	if err = h.updater.RecalculateAdjustments(aggregate); err != nil {
		return err
	}
	aggregate.MarkForRecalculation()

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
