package commands_test

import (
	"errors"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCompletedAggregate(t *testing.T) *order.Order {
	t.Helper()

	aggregate := newRecalculationAggregate(t)
	require.NoError(t, aggregate.Complete(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)))

	return aggregate
}

func TestNewCancelOrderCommand(t *testing.T) {
	t.Run("valid order ID", func(t *testing.T) {
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCancelOrderCommand(orderID)

		require.NoError(t, err)
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.NoError(t, cmd.Validate())
	})

	t.Run("empty order ID", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.UUID{})

		require.Error(t, err)
	})
}

func TestCancelOrderCommandHandler_Handle_CompletedOrderRestoresStock(t *testing.T) {
	ctx := t.Context()

	aggregate := newCompletedAggregate(t)
	item := aggregate.LineItems()[0]

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Restore", ctx, item.VariantID(), aggregate.DistributorID(), order.StockPoolCatalog, 2).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("UpdateTotals", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, services.NewUpdater())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.IsCanceled())
	assert.NotNil(t, aggregate.CompletedAt())
	orderRepo.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_CartOrderKeepsStockUntouched(t *testing.T) {
	ctx := t.Context()

	aggregate := newRecalculationAggregate(t)

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("UpdateTotals", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, services.NewUpdater())
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.IsCanceled())
	uow.AssertNotCalled(t, "StockRepository")
}

func TestCancelOrderCommandHandler_Handle_AlreadyCanceled(t *testing.T) {
	ctx := t.Context()

	aggregate := newRecalculationAggregate(t)
	require.NoError(t, aggregate.Cancel())

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, services.NewUpdater())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCancelOrderCommandHandler_Handle_RestoreError(t *testing.T) {
	ctx := t.Context()

	aggregate := newCompletedAggregate(t)
	item := aggregate.LineItems()[0]

	cmd, err := commands.NewCancelOrderCommand(aggregate.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("Restore", ctx, item.VariantID(), aggregate.DistributorID(), order.StockPoolCatalog, 2).
			Return(errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, services.NewUpdater())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "database error")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewCancelOrderCommandHandler(factory, services.NewUpdater())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
