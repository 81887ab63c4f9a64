// Package domain defines the core domain models for TraceMesh.
//
// The package contains pure entities and value objects with no IO or
// framework coupling:
//
//   - Span: one unit of instrumented work with ULID-based identity
//   - AttributeStore: concurrency-safe ordered tags and metrics
//   - DomainError: structured error codes (TR-*)
//
// Concurrency:
//
// AttributeStore is safe for any number of concurrent readers and
// writers; tags and metrics are locked independently and sub-collections
// are published exactly once via compare-and-swap. Span identity fields
// are immutable after creation.
//
// @adr AD-0101
package domain
