// Package kernel provides the shared primitives of the order management domain.
//
// The package includes:
//   - UUID: the identifier value object used by every aggregate
//   - DomainEvent / EventSource: the contract aggregates use to expose what happened
//     to them, so the persistence layer can forward it after a successful write
//
// Values in this package are immutable and safe for concurrent use.
package kernel
