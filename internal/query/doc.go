// Package query implements a demand-driven, memoizing computation runtime on
// top of mutable inputs.
//
// # Model
//
// The runtime holds a single monotonically increasing Revision. Input cells
// (see Input) are explicitly written; every write bumps the revision and
// stamps the cell. Derived queries (see Derived) are pure functions of inputs
// and other derived queries; their results are cached per key together with
// the revision they were computed at and the set of input cells the
// computation actually read.
//
// A cached value is valid iff every recorded cell still carries a write stamp
// not newer than the value's computed revision. Nothing is recomputed on
// write: invalidation is detected lazily on the next read.
//
// # Dependency tracking
//
// Tracking is dynamic. While a compute function runs, every Input.Get it
// performs (directly or through nested Derived.Get calls) lands in the
// current computation's dependency set, so a query that branches on content
// records exactly what it read this time around. Dependency sets are
// flattened to input cells: when a nested derived query hits its cache, the
// cells it recorded at its own computation time are merged into the caller's
// set. For an acyclic query graph this yields the same validity semantics as
// recursive re-verification while keeping the check a flat stamp comparison.
//
// # Constraints
//
// The runtime performs no cycle detection; query graphs must be acyclic by
// construction. All operations are single-threaded: a Runtime must not be
// shared across goroutines without external synchronization.
package query
