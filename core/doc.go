// Package core contains the pure domain logic for asset availability:
// the AssetAvailability entity, the closed set of lock variants, and the
// domain events produced by its transitions.
//
// The package performs no I/O and holds no infrastructure dependencies.
// Every mutating operation returns an OperationResult carrying either a
// success event or a rejection event with a stable reason code - invalid
// transitions are business outcomes, not errors.
//
// The entity is not safe for concurrent use. Callers must guarantee at
// most one in-flight mutating call per instance; arbitration between
// racing callers belongs to the persistence boundary (see the repository
// engines and the retry logic in the shell package).
package core
