// Package testutil provides test doubles for the handler and HTTP tests:
// an in-memory asset repository with optimistic-concurrency semantics and
// failure injection, a capturing event outbox, and a fixed clock.
package testutil
