package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/services"
)

// RecalculateOrderCommandHandler handles the full recomputation pass for a
// single order. The whole pass runs inside one transaction: the aggregate is
// loaded, the Updater recomputes it in memory, and the snapshot is written
// back with a direct column update. A failure rolls the transaction back and
// leaves the previously persisted snapshot authoritative.
type RecalculateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	updater    services.Updater
}

// NewRecalculateOrderCommandHandler creates a handler for order recalculation.
// Requires an OrderUoWFactory for transactional persistence and the Updater
// domain service.
func NewRecalculateOrderCommandHandler(uowFactory OrderUoWFactory, updater services.Updater) RecalculateOrderCommandHandler {
	return RecalculateOrderCommandHandler{
		uowFactory: uowFactory,
		updater:    updater,
	}
}

// Handle processes the recalculation command.
func (h *RecalculateOrderCommandHandler) Handle(ctx context.Context, cmd RecalculateOrderCommand) error {
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

	if err = h.updater.Update(aggregate, time.Now().UTC()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = orderRepo.UpdateTotals(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
