package commands

import (
	"context"
	"errors"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
)

// CompleteOrderCommandHandler finishes checkout for an order. The lifecycle
// transition, the stock decrements and the first recomputation pass commit
// together. A pool that cannot cover a line item does not fail checkout: the
// shipments are flagged backordered and the shortfall surfaces through the
// inferred shipment state.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	updater    services.Updater
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
// Requires a UoWFactory spanning order and stock repositories.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory, updater services.Updater) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		updater:    updater,
	}
}

// Handle processes the completion command.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	now := time.Now().UTC()
	if err = aggregate.Complete(now); err != nil {
		return err
	}

	stockRepo := uow.StockRepository()
	for _, item := range aggregate.LineItems() {
		if item.StockPool() == order.StockPoolNone {
			continue
		}

		err = stockRepo.Decrement(ctx, item.VariantID(), aggregate.DistributorID(), item.StockPool(), item.Quantity())
		if errors.Is(err, ports.ErrInsufficientStock) {
			for _, shipment := range aggregate.Shipments() {
				shipment.MarkBackordered()
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	if err = h.updater.Update(aggregate, now); err != nil {
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
