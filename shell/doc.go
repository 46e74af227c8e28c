// Package shell contains the infrastructure-facing glue around the pure
// domain core: mapping domain events to storable DTOs and back, the flat
// lock representation used by the repository engines, the ports consumed
// by the command and query handlers (repository, outbox, clock, logging,
// metrics), and the optimistic-concurrency retry logic.
package shell
