package cmd

import (
	"orders/internal/adapters/out/postgres"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *calculator.Registry
	updater    services.Updater
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   calculator.NewDefaultRegistry(),
		updater:    services.NewUpdater(),
	}
}

func (c *CompositionRoot) CreateRecalculateOrderCommandHandler() *commands.RecalculateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewRecalculateOrderCommandHandler(f, c.updater)
	return &handler
}

func (c *CompositionRoot) CreateRecalculateAdjustmentsCommandHandler() *commands.RecalculateAdjustmentsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewRecalculateAdjustmentsCommandHandler(f, c.updater)
	return &handler
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() *commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewCompleteOrderCommandHandler(f, c.updater)
	return &handler
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewCancelOrderCommandHandler(f, c.updater)
	return &handler
}

func (c *CompositionRoot) CreateApplyEnterpriseFeeCommandHandler() *commands.ApplyEnterpriseFeeCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewApplyEnterpriseFeeCommandHandler(f, c.registry)
	return &handler
}

func (c *CompositionRoot) CreateGetOrderTotalsQueryHandler() queries.GetOrderTotalsQueryHandler {
	return queries.NewGetOrderTotalsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersAwaitingRecalculationQueryHandler() queries.GetOrdersAwaitingRecalculationQueryHandler {
	return queries.NewGetOrdersAwaitingRecalculationQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
