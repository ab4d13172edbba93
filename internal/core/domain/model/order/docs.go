// Package order provides domain entities and business logic for order
// financials. It implements the Order aggregate root together with its line
// items, shipments, payments and the inferred state labels.
//
// The package includes:
//   - Order: The aggregate root owning collections and the monetary snapshot
//   - LineItem, Shipment, Payment: The adjustable and payable parts of an order
//   - Status: A state machine for the order lifecycle (cart -> complete -> canceled)
//   - PaymentState, ShipmentState: Labels inferred by the recomputation pass
//   - StateChange: An append-only log of label transitions
//
// Key business rules:
//   - Snapshot fields (item total, shipment total, adjustment totals, grand
//     total) are caches derived from the attached collections
//   - The grand total always equals item total + shipment total + adjustment total
//   - Completion is sticky: a canceled order remembers it was completed so
//     refunds can be inferred
//   - State change records are appended only when a label actually changes
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
