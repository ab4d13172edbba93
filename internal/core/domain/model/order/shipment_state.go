package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// ShipmentState is a derived label summarizing the shipments on the order.
// Backorders take precedence over every other label so that fulfilment staff
// see supply problems first.
type ShipmentState int

const (
	// ShipmentStateUnknown represents an invalid or undefined shipment state.
	ShipmentStateUnknown ShipmentState = iota

	// ShipmentStateBackorder indicates at least one shipment is waiting on stock.
	ShipmentStateBackorder

	// ShipmentStatePending indicates all shipments are still being prepared.
	ShipmentStatePending

	// ShipmentStateReady indicates all shipments are packed and awaiting dispatch.
	ShipmentStateReady

	// ShipmentStateShipped indicates all shipments have been dispatched.
	ShipmentStateShipped

	// ShipmentStatePartial indicates shipments are in mixed states.
	ShipmentStatePartial
)

func getShipmentStateStrings() map[ShipmentState]string {
	return map[ShipmentState]string{
		ShipmentStateUnknown:   "unknown",
		ShipmentStateBackorder: "backorder",
		ShipmentStatePending:   "pending",
		ShipmentStateReady:     "ready",
		ShipmentStateShipped:   "shipped",
		ShipmentStatePartial:   "partial",
	}
}

func getValidShipmentStateStrings() map[ShipmentState]string {
	//nolint:exhaustive // ShipmentStateUnknown is intentionally excluded as it's invalid
	return map[ShipmentState]string{
		ShipmentStateBackorder: "backorder",
		ShipmentStatePending:   "pending",
		ShipmentStateReady:     "ready",
		ShipmentStateShipped:   "shipped",
		ShipmentStatePartial:   "partial",
	}
}

// Validate checks if the ShipmentState value is valid.
func (s ShipmentState) Validate() error {
	if _, ok := getValidShipmentStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipment state is invalid",
			fmt.Errorf("%d is not a valid shipment state", s),
		)
	}
	return nil
}

// String returns the persisted name of the shipment state.
func (s ShipmentState) String() string {
	if str, ok := getShipmentStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ShipmentStateFromString parses a persisted shipment state name.
func ShipmentStateFromString(raw string) (ShipmentState, error) {
	for state, str := range getValidShipmentStateStrings() {
		if str == raw {
			return state, nil
		}
	}

	return 0, errs.NewValueIsInvalidErrorWithCause(
		"shipment state is invalid",
		fmt.Errorf("%q is not a valid shipment state", raw),
	)
}
