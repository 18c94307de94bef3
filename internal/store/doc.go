// Package store holds the record store adapters behind the attendance log:
// a SQLite database for single-host deployments and an XLSX workbook for
// sites that keep the shared spreadsheet as the system of record, plus the
// short-TTL read-through cache both are served through.
//
// Every adapter speaks the same surface: ReadAll returns the full log as
// ordered rows of string cells, Append adds exactly one row. Rows are
// ragged: trailing empty columns are dropped on write and must be
// bounds-checked on read.
//
// # Append-only
//
// No adapter ever updates or deletes a row. The SQLite backend additionally
// enforces at most one clock-in-class and one clock-out-class row per
// (name, day) with a partial unique index, turning the recorder's
// check-then-append race into an idempotent conflict
// (attendance.ErrAlreadyRecorded). The workbook backend has no conditional
// append and stays last-write-wins; duplicate rows are tolerated read-side
// by status derivation.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
