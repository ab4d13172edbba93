package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFeeCommand(t *testing.T, orderID kernel.UUID, lineItemID *kernel.UUID) commands.ApplyEnterpriseFeeCommand {
	t.Helper()

	cmd, err := commands.NewApplyEnterpriseFeeCommand(
		orderID,
		lineItemID,
		kernel.NewUUID(),
		kernel.NewUUID(),
		"Sunny Fields",
		"standard packing",
		"packing",
		fee.RoleDistributor,
		calculator.KindFlatRate,
		calculator.Params{Amount: decimal.NewFromInt(5)},
		false,
		nil,
	)
	require.NoError(t, err)

	return cmd
}

func TestNewApplyEnterpriseFeeCommand(t *testing.T) {
	t.Run("whole order target", func(t *testing.T) {
		orderID := kernel.NewUUID()
		cmd := newFeeCommand(t, orderID, nil)

		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Nil(t, cmd.LineItemID())
		assert.Equal(t, "Sunny Fields", cmd.EnterpriseName())
		assert.Equal(t, fee.RoleDistributor, cmd.Role())
		assert.NoError(t, cmd.Validate())
	})

	t.Run("line item target", func(t *testing.T) {
		lineItemID := kernel.NewUUID()
		cmd := newFeeCommand(t, kernel.NewUUID(), &lineItemID)

		require.NotNil(t, cmd.LineItemID())
		assert.True(t, cmd.LineItemID().IsEqual(lineItemID))
	})

	t.Run("missing enterprise name", func(t *testing.T) {
		_, err := commands.NewApplyEnterpriseFeeCommand(
			kernel.NewUUID(), nil, kernel.NewUUID(), kernel.NewUUID(),
			"", "standard packing", "packing", fee.RoleDistributor,
			calculator.KindFlatRate, calculator.Params{Amount: decimal.NewFromInt(5)},
			false, nil,
		)

		require.Error(t, err)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := commands.NewApplyEnterpriseFeeCommand(
			kernel.NewUUID(), nil, kernel.NewUUID(), kernel.NewUUID(),
			"Sunny Fields", "standard packing", "packing", fee.Role("owner"),
			calculator.KindFlatRate, calculator.Params{Amount: decimal.NewFromInt(5)},
			false, nil,
		)

		require.Error(t, err)
	})
}

func TestApplyEnterpriseFeeCommandHandler_Handle_WholeOrder(t *testing.T) {
	ctx := t.Context()

	aggregate := newRecalculationAggregate(t)
	cmd := newFeeCommand(t, aggregate.ID(), nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AddAdjustmentMetadata", ctx, mock.AnythingOfType("*fee.AdjustmentMetadata")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyEnterpriseFeeCommandHandler(factory, calculator.NewDefaultRegistry())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.NeedsRecalculation())
	require.Len(t, aggregate.Adjustments(), 1)
	applied := aggregate.Adjustments()[0]
	assert.True(t, decimal.NewFromInt(5).Equal(applied.Amount()))
	assert.Equal(t, "whole order - packing fee by distributor Sunny Fields", applied.Label())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestApplyEnterpriseFeeCommandHandler_Handle_LineItem(t *testing.T) {
	ctx := t.Context()

	aggregate := newRecalculationAggregate(t)
	item := aggregate.LineItems()[0]
	lineItemID := item.ID()
	cmd := newFeeCommand(t, aggregate.ID(), &lineItemID)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		orderRepo.On("AddAdjustmentMetadata", ctx, mock.AnythingOfType("*fee.AdjustmentMetadata")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyEnterpriseFeeCommandHandler(factory, calculator.NewDefaultRegistry())
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, item.Adjustments(), 1)
	assert.Equal(t, "Carrots 1kg - packing fee by distributor Sunny Fields", item.Adjustments()[0].Label())
	assert.Empty(t, aggregate.Adjustments())
}

func TestApplyEnterpriseFeeCommandHandler_Handle_LineItemNotFound(t *testing.T) {
	ctx := t.Context()

	aggregate := newRecalculationAggregate(t)
	strangerID := kernel.NewUUID()
	cmd := newFeeCommand(t, aggregate.ID(), &strangerID)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, cmd.OrderID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyEnterpriseFeeCommandHandler(factory, calculator.NewDefaultRegistry())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Contains(t, err.Error(), commands.ErrLineItemNotFound.Error())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestApplyEnterpriseFeeCommandHandler_Handle_UnknownCalculatorKind(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewApplyEnterpriseFeeCommand(
		kernel.NewUUID(), nil, kernel.NewUUID(), kernel.NewUUID(),
		"Sunny Fields", "standard packing", "packing", fee.RoleDistributor,
		calculator.Kind("weight_based"), calculator.Params{},
		false, nil,
	)
	require.NoError(t, err)

	factory := new(MockOrderUoWFactory)
	handler := commands.NewApplyEnterpriseFeeCommandHandler(factory, calculator.NewDefaultRegistry())
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	factory.AssertNotCalled(t, "Create")
}

func TestApplyEnterpriseFeeCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ApplyEnterpriseFeeCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewApplyEnterpriseFeeCommandHandler(factory, calculator.NewDefaultRegistry())
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrApplyEnterpriseFeeCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
