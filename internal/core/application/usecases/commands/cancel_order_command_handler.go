package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
)

// CancelOrderCommandHandler cancels an order inside one transaction: the
// lifecycle transition, the stock restoration for every line item that was
// drawn from a pool, and the recomputation pass that re-derives the payment
// state all commit or roll back together.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	updater    services.Updater
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// Requires a UoWFactory spanning order and stock repositories.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, updater services.Updater) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		updater:    updater,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	wasComplete := aggregate.IsComplete()
	if err = aggregate.Cancel(); err != nil {
		return err
	}

	// stock was only decremented at completion, so only a completed order
	// has anything to give back
	if wasComplete {
		stockRepo := uow.StockRepository()
		for _, item := range aggregate.LineItems() {
			if item.StockPool() == order.StockPoolNone {
				continue
			}
			err = stockRepo.Restore(ctx, item.VariantID(), aggregate.DistributorID(), item.StockPool(), item.Quantity())
			if err != nil {
				return err
			}
		}
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
