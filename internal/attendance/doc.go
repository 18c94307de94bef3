// Package attendance implements the core of the location-gated attendance
// logger: the record model, status derivation, and the recorder that
// validates and appends new events.
//
// The system of record is an append-only log of rows in an external tabular
// store. Rows are never edited or deleted; all state (clocked in, clocked
// out, absent) is derived by scanning the log. The derivation treats
// presence, not count, as significant, so duplicate rows produced by
// concurrent writers inflate raw counts but never corrupt status.
//
// # Event types
//
// Five event types exist, stored with their Korean labels as wire values
// (the labels the shared spreadsheet uses):
//
//   - 출근 (clock-in)
//   - 지각 (late; clock-in at/after the cutoff, reason required)
//   - 퇴근 (clock-out)
//   - 조퇴 (early leave; clock-out before the cutoff, reason required)
//   - 결근 (absent; reason required, no location or distance gate)
//
// A reason containing the marker "[업무]" marks the event as excused for
// monthly reporting. The marker is stored verbatim; excusal is applied at
// aggregation time, never at write time.
//
// # Row schema
//
// Rows are positional string cells, ragged by design:
//
//	[timestamp, name, eventType, location, distanceMeters,
//	 earlyReason?, lateReason?, absentReason?]
//
// Readers must bounds-check rather than assume fixed width. Rows with
// fewer than three cells are skipped, never fatal.
package attendance
