// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the order financials system. It implements
// complex business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - ItemAdjustments: A domain service refreshing an adjustable's cached subtotals
//   - EnterpriseFeeApplicator: A domain service materializing fee definitions into adjustments
//   - Updater: A domain service running the coherent recomputation pass over an order
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
