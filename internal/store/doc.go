// Package store provides SQLite-backed storage for compiled rule sets.
//
// Rule sets are content-addressed: the primary key is the domain-separated
// hash from internal/ir, so a second put of the same rule set is a no-op.
// Each compile invocation is also logged as a run with a UUID and a logical
// sequence number.
//
// # Ordering
//
//   - Runs are ordered by seq INTEGER (logical clock), never timestamps
//   - Every list query ends with: ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
