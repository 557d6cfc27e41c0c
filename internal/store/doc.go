// Package store provides SQLite-backed run history for the harness.
//
// Each recorded run holds one row per trial with its outcome and the digest
// of the tree the backend produced. Comparing two runs yields the trials
// that regressed between them.
//
// # Ordering
//
// Runs are ordered by a logical seq assigned at write time, never by
// timestamps. Trial rows keep the execution order of their run. Every query
// ends in an ORDER BY over seq so results are stable across databases.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
