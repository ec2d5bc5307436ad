// Package store defines the persistence interfaces for the application's
// domain entities, along with the shared error taxonomy used by all
// implementations.
//
// Interfaces accept context.Context and return plain domain structs, keeping
// callers independent of the storage backend. The canonical implementation
// lives in internal/platform/postgres.
package store
