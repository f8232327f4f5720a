// Package services provides domain services whose rules span more than one
// aggregate.
//
// The package includes:
//   - AccessPolicy: the role based permission table consulted by every command
//     and query before it reads or changes an order, a user or statistics
//
// The permission table is declarative: a role, a resource and an action map to
// a scope, and the scope is then checked against the concrete aggregate
// (ownership, fulfilment status).
package services
