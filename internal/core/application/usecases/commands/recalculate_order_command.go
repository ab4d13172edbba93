package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrRecalculateOrderCommandIsNotConstructed = errors.New(
	"RecalculateOrderCommand must be created via NewRecalculateOrderCommand constructor",
)

// RecalculateOrderCommand represents a request to run the full recomputation
// pass over one order: refresh adjustments, recompute the monetary snapshot
// and infer the payment/shipment state labels.
//
// Example:
//
//	cmd, err := NewRecalculateOrderCommand(orderID)
//	if err != nil {
//	    return fmt.Errorf("invalid recalculation request: %w", err)
//	}
//
//	handler := NewRecalculateOrderCommandHandler(uowFactory, updater)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to recalculate order: %w", err)
//	}
type RecalculateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecalculateOrderCommand creates a command to recalculate an order.
// Validates that the order ID is a proper UUID.
func NewRecalculateOrderCommand(orderID kernel.UUID) (RecalculateOrderCommand, error) {
	cmd := RecalculateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RecalculateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecalculateOrderCommandIsNotConstructed if validation fails.
func (c RecalculateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to recalculate.
func (c RecalculateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RecalculateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
