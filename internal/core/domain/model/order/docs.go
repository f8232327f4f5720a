// Package order provides the Order aggregate of the steel plant order management
// service and the state machine that governs its lifecycle.
//
// The package includes:
//   - Order: the aggregate root; owns identity, ownership, material details and status
//   - Status: the lifecycle state machine
//   - Details: the user editable material request fields
//   - Number: the human readable ORD-<year>-<sequence> identifier
//   - Event: lifecycle facts recorded by the aggregate
//
// Key business rules:
//   - Status only moves forward: DRAFT -> FINALIZED -> COMPLETED, no skipping
//   - Only DRAFT orders can be edited or deleted
//   - Only FINALIZED orders can be completed
//   - Dispatch quantity and completion notes are set once, at completion; the dispatch
//     quantity may differ from the ordered quantity (partial shipments)
//   - Owner, number and creation time never change after creation
//
// Permission checks are not part of this package: the aggregate enforces what may happen
// to an order, the access policy enforces who may make it happen.
package order
