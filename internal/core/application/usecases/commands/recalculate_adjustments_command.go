package commands

import (
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/guard"
)

var ErrRecalculateAdjustmentsCommandIsNotConstructed = errors.New(
	"RecalculateAdjustmentsCommand must be created via NewRecalculateAdjustmentsCommand constructor",
)

// RecalculateAdjustmentsCommand represents a request to refresh only the
// adjustment subtotals of an order, leaving payment and shipment state
// inference untouched. Used by callers that changed fee or tax configuration
// without touching the order contents.
type RecalculateAdjustmentsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecalculateAdjustmentsCommand creates a command to refresh an order's
// adjustment subtotals. Validates that the order ID is a proper UUID.
func NewRecalculateAdjustmentsCommand(orderID kernel.UUID) (RecalculateAdjustmentsCommand, error) {
	cmd := RecalculateAdjustmentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RecalculateAdjustmentsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecalculateAdjustmentsCommandIsNotConstructed if validation fails.
func (c RecalculateAdjustmentsCommand) Validate() error {
	return c.guard.Validate(ErrRecalculateAdjustmentsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order whose adjustments to refresh.
func (c RecalculateAdjustmentsCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RecalculateAdjustmentsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
