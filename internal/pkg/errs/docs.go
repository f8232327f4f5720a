// Package errs provides the typed errors shared by the order management service.
// Every error type follows the same shape so that callers can classify failures
// with errors.Is against a sentinel and errors.As against the concrete type:
//
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the failure details
//   - constructors with and without a cause
//   - Error() for the human readable message
//   - Unwrap() returning the sentinel
//
// The taxonomy maps onto the failure kinds the service exposes:
//
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: the referenced order or user does not exist
//   - AccessDeniedError: the actor is authenticated but the role or ownership does not allow the action
//   - ErrUnauthorized: no valid identity was presented
//   - StateIsInvalidError: the action is not legal for the current order status
//   - ConcurrentModificationError: a concurrent write changed the row first
//
// Anything else reaching the transport layer is treated as a store failure.
package errs
