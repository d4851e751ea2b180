// Package order provides domain entities and business logic for order
// management in the water-refill fulfillment system. It implements the Order
// aggregate root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - StatusChange: An immutable audit ledger entry, one per transition
//   - Assignment: An append-only audit row, one per rider assignment event
//   - ETA: A derived, non-authoritative delivery estimate
//
// Key business rules:
//   - Orders must have valid order and customer identifiers and a positive gallon count
//   - Status follows the fixed transition table owned by Status; COMPLETED and
//     CANCELLED are terminal
//   - Cancellation is only legal while the order is PENDING
//   - Payment status reaches PAID only via the payment reconciler or the cash
//     confirmation path, guarded against double confirmation
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
