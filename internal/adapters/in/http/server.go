package http

import (
	"errors"
	"net/http"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/calculator"
	"orders/internal/core/domain/model/fee"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server exposes the order recalculation use cases over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	recalculateOrderHandler       *commands.RecalculateOrderCommandHandler
	recalculateAdjustmentsHandler *commands.RecalculateAdjustmentsCommandHandler
	completeOrderHandler          *commands.CompleteOrderCommandHandler
	cancelOrderHandler            *commands.CancelOrderCommandHandler
	applyEnterpriseFeeHandler     *commands.ApplyEnterpriseFeeCommandHandler

	// Query handlers
	getOrderTotalsHandler                 queries.GetOrderTotalsQueryHandler
	getOrdersAwaitingRecalculationHandler queries.GetOrdersAwaitingRecalculationQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	recalculateOrderHandler *commands.RecalculateOrderCommandHandler,
	recalculateAdjustmentsHandler *commands.RecalculateAdjustmentsCommandHandler,
	completeOrderHandler *commands.CompleteOrderCommandHandler,
	cancelOrderHandler *commands.CancelOrderCommandHandler,
	applyEnterpriseFeeHandler *commands.ApplyEnterpriseFeeCommandHandler,
	getOrderTotalsHandler queries.GetOrderTotalsQueryHandler,
	getOrdersAwaitingRecalculationHandler queries.GetOrdersAwaitingRecalculationQueryHandler,
) *Server {
	return &Server{
		recalculateOrderHandler:               recalculateOrderHandler,
		recalculateAdjustmentsHandler:         recalculateAdjustmentsHandler,
		completeOrderHandler:                  completeOrderHandler,
		cancelOrderHandler:                    cancelOrderHandler,
		applyEnterpriseFeeHandler:             applyEnterpriseFeeHandler,
		getOrderTotalsHandler:                 getOrderTotalsHandler,
		getOrdersAwaitingRecalculationHandler: getOrdersAwaitingRecalculationHandler,
	}
}

// RegisterRoutes binds all order endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders/:orderID/recalculate", s.RecalculateOrder)
	api.POST("/orders/:orderID/recalculate-adjustments", s.RecalculateAdjustments)
	api.POST("/orders/:orderID/complete", s.CompleteOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/fees", s.ApplyEnterpriseFee)

	api.GET("/orders/:orderID/totals", s.GetOrderTotals)
	api.GET("/orders/awaiting-recalculation", s.GetOrdersAwaitingRecalculation)
}

// Error is the JSON error envelope returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderTotals is the JSON representation of an order's monetary snapshot.
type OrderTotals struct {
	ID                 string          `json:"id"`
	Status             string          `json:"status"`
	PaymentState       string          `json:"paymentState"`
	ShipmentState      string          `json:"shipmentState"`
	ItemTotal          decimal.Decimal `json:"itemTotal"`
	ShipmentTotal      decimal.Decimal `json:"shipmentTotal"`
	FeeTotal           decimal.Decimal `json:"feeTotal"`
	AdjustmentTotal    decimal.Decimal `json:"adjustmentTotal"`
	IncludedTaxTotal   decimal.Decimal `json:"includedTaxTotal"`
	AdditionalTaxTotal decimal.Decimal `json:"additionalTaxTotal"`
	PaymentTotal       decimal.Decimal `json:"paymentTotal"`
	Total              decimal.Decimal `json:"total"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
}

// BacklogOrder is a single entry of the recalculation backlog.
type BacklogOrder struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// NewEnterpriseFee is the request body for applying an enterprise fee.
type NewEnterpriseFee struct {
	LineItemID          *string         `json:"lineItemId,omitempty"`
	FeeID               string          `json:"feeId"`
	EnterpriseID        string          `json:"enterpriseId"`
	EnterpriseName      string          `json:"enterpriseName"`
	FeeName             string          `json:"feeName"`
	FeeType             string          `json:"feeType"`
	Role                string          `json:"role"`
	CalculatorKind      string          `json:"calculatorKind"`
	Amount              decimal.Decimal `json:"amount"`
	Percent             decimal.Decimal `json:"percent"`
	InheritsTaxCategory bool            `json:"inheritsTaxCategory"`
	TaxCategoryID       *string         `json:"taxCategoryId,omitempty"`
}

// RecalculateOrder handles POST /api/v1/orders/:orderID/recalculate - runs a
// full recalculation pass and persists the refreshed snapshot.
func (s *Server) RecalculateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	cmd, err := commands.NewRecalculateOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid recalculation request: " + err.Error(),
		})
	}

	if handleErr := s.recalculateOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to recalculate order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecalculateAdjustments handles POST /api/v1/orders/:orderID/recalculate-adjustments -
// refreshes the adjustment ledger and flags the order for a totals pass.
func (s *Server) RecalculateAdjustments(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	cmd, err := commands.NewRecalculateAdjustmentsCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid recalculation request: " + err.Error(),
		})
	}

	if handleErr := s.recalculateAdjustmentsHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to recalculate adjustments")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:orderID/complete - moves the
// order through checkout, reserving stock for every line item.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid completion request: " + err.Error(),
		})
	}

	if handleErr := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, order.ErrOrderAlreadyCompleted) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order has already been completed",
			})
		}
		return s.commandError(ctx, handleErr, "Failed to complete order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel - cancels the order
// and returns reserved stock for completed orders.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid cancellation request: " + err.Error(),
		})
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to cancel order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ApplyEnterpriseFee handles POST /api/v1/orders/:orderID/fees - applies an
// enterprise fee to the whole order or to a single line item.
func (s *Server) ApplyEnterpriseFee(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	var newFee NewEnterpriseFee
	if err = ctx.Bind(&newFee); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := s.buildFeeCommand(orderID, newFee)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid fee data: " + err.Error(),
		})
	}

	if handleErr := s.applyEnterpriseFeeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to apply enterprise fee")
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrderTotals handles GET /api/v1/orders/:orderID/totals - serves the
// stored monetary snapshot of an order.
func (s *Server) GetOrderTotals(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID",
		})
	}

	query, err := queries.NewGetOrderTotalsQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid totals request: " + err.Error(),
		})
	}

	totals, err := s.getOrderTotalsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order totals",
		})
	}

	return ctx.JSON(http.StatusOK, OrderTotals{
		ID:                 totals.ID.String(),
		Status:             totals.Status,
		PaymentState:       totals.PaymentState,
		ShipmentState:      totals.ShipmentState,
		ItemTotal:          totals.ItemTotal,
		ShipmentTotal:      totals.ShipmentTotal,
		FeeTotal:           totals.FeeTotal,
		AdjustmentTotal:    totals.AdjustmentTotal,
		IncludedTaxTotal:   totals.IncludedTaxTotal,
		AdditionalTaxTotal: totals.AdditionalTaxTotal,
		PaymentTotal:       totals.PaymentTotal,
		Total:              totals.Total,
		OutstandingBalance: totals.OutstandingBalance,
	})
}

// GetOrdersAwaitingRecalculation handles GET /api/v1/orders/awaiting-recalculation -
// lists the orders whose snapshot is stale.
func (s *Server) GetOrdersAwaitingRecalculation(ctx echo.Context) error {
	query, err := queries.NewGetOrdersAwaitingRecalculationQuery()
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build backlog query",
		})
	}

	backlog, err := s.getOrdersAwaitingRecalculationHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve recalculation backlog",
		})
	}

	response := make([]BacklogOrder, len(backlog))
	for i, entry := range backlog {
		response[i] = BacklogOrder{
			ID:          entry.ID.String(),
			Status:      entry.Status,
			CompletedAt: entry.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) buildFeeCommand(orderID kernel.UUID, newFee NewEnterpriseFee) (commands.ApplyEnterpriseFeeCommand, error) {
	feeID, err := kernel.UUIDFromString(newFee.FeeID)
	if err != nil {
		return commands.ApplyEnterpriseFeeCommand{}, err
	}

	enterpriseID, err := kernel.UUIDFromString(newFee.EnterpriseID)
	if err != nil {
		return commands.ApplyEnterpriseFeeCommand{}, err
	}

	var lineItemID *kernel.UUID
	if newFee.LineItemID != nil {
		parsed, parseErr := kernel.UUIDFromString(*newFee.LineItemID)
		if parseErr != nil {
			return commands.ApplyEnterpriseFeeCommand{}, parseErr
		}
		lineItemID = &parsed
	}

	var taxCategoryID *kernel.UUID
	if newFee.TaxCategoryID != nil {
		parsed, parseErr := kernel.UUIDFromString(*newFee.TaxCategoryID)
		if parseErr != nil {
			return commands.ApplyEnterpriseFeeCommand{}, parseErr
		}
		taxCategoryID = &parsed
	}

	return commands.NewApplyEnterpriseFeeCommand(
		orderID,
		lineItemID,
		feeID,
		enterpriseID,
		newFee.EnterpriseName,
		newFee.FeeName,
		newFee.FeeType,
		fee.Role(newFee.Role),
		calculator.Kind(newFee.CalculatorKind),
		calculator.Params{
			Amount:  newFee.Amount,
			Percent: newFee.Percent,
		},
		newFee.InheritsTaxCategory,
		taxCategoryID,
	)
}

func (s *Server) commandError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, errs.ErrValueIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
