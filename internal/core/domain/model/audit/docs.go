// Package audit describes the append-only trail of mutations.
//
// An Entry is written by the same unit of work that performs the change it
// describes, so either both are persisted or neither is. Entries are never
// updated or deleted.
package audit
