// Package database provides SQLite-based storage for analysis run history.
//
// This package implements the HistoryDB, which stores one record per
// completed analysis run: the document name, when it ran, the overall
// score, issue and fix counts, and the full report as JSON. The history
// powers the `history` and `compare` commands, letting content owners
// track whether a deck is getting more or less accessible over time.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
