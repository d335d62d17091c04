// Package order implements the order lifecycle domain model.
//
// The package is organized around a single aggregate:
//   - Order: the persisted aggregate root, carrying the business state,
//     the idempotency reference, the workflow binding and the
//     optimistic-concurrency version
//   - Payment, LoyaltyEntry, StockReservation: dependent records owned by
//     one order
//   - Aggregate: the transient composition of one order with its records,
//     and the sole authority for state transitions and business rules
//
// The state machine is declared once, as a table of directed edges consulted
// by IsValidTransition. The Aggregate layers two checks on top of it: the
// structural check (does the edge exist) and, optionally, business-rule
// preconditions of the target state (entering Paid requires completed
// payments covering the order total). Self-transitions are idempotent no-ops
// handled above the table, so redelivered commands do not fail.
//
// All entities expose factory constructors (NewX for fresh instances,
// RestoreX for reconstruction from persistence) and keep their fields
// private. Time is injected through kernel.Clock, never read from the global
// clock, so every transition is deterministic under test.
package order
