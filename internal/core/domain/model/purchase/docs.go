// Package purchase provides the domain model for customer orders: the
// Purchase aggregate root, its line items, and the lifecycle state machine.
//
// The package includes:
//   - Purchase: the aggregate root holding customer snapshot, items, total,
//     delivery group assignment, and lifecycle status
//   - Item: one immutable purchase line with its catalog price snapshot
//   - Status: a state machine enforcing valid lifecycle transitions
//
// Key business rules:
//   - the total amount is fixed at creation from price snapshots and never
//     recomputed
//   - payment and cancellation are possible only while waiting for payment
//   - dispatching assigns the delivery group exactly once, moving a paid
//     purchase to waiting delivery
//   - delivery confirmation is possible only while waiting for delivery
package purchase
