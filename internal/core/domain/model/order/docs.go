// Package order provides the domain model for the order-fulfillment lifecycle.
// It implements the Order aggregate root, its immutable line items, and the
// embedded shipment tracking record with its append-only history.
//
// The package includes:
//   - Order: the aggregate root owning identity, items, totals, and lifecycle
//   - OrderItem: a priced, dated line item frozen at creation time
//   - ShippingTracking: the shipment sub-record with append-only history
//   - Status: the order/tracking status vocabulary and auto-progression rules
//   - Address: the optional shipping destination
//
// Key business rules:
//   - Orders must have a non-empty item list; items never change after creation
//   - Order number and tracking number are generated exactly once, at creation
//   - Every status transition appends exactly one history entry, atomically
//   - A transition to the current status is a no-op (no append, no write)
//   - Digital-only orders never auto-progress and never receive shipping updates
//   - Cancellation is a terminal status, not a deletion
//
// The package follows Domain-Driven Design principles: private fields, factory
// constructors, and validated state changes keep the aggregate in a consistent
// state at all times.
package order
