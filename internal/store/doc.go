// Package store provides SQLite-backed storage for the document cache and
// the run history.
//
// # Tables
//
//   - documents: fetched manifest and test documents keyed by request URL
//   - runs: one row per recorded suite run, identified by a UUIDv7
//   - results: the ordered verdicts of a run
//
// # Ordering
//
// Results are read back ORDER BY seq ASC, where seq is the position of the
// test in the flattened manifest. Runs are listed newest first with the id
// as a tie breaker, which is stable because UUIDv7 ids sort by time.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads while a run is being recorded
//   - synchronous=NORMAL: balance durability and speed
//   - busy_timeout=5000: tolerate concurrent first fetches of one URL
//   - foreign_keys=ON: results cannot outlive their run
package store
