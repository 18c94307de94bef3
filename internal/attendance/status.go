package attendance

import (
	"log/slog"
	"strings"
	"time"
)

// Status is the derived state of one user on one day.
type Status struct {
	// ClockedIn is true if any 출근 or 지각 row exists for the day.
	ClockedIn bool

	// ClockedOut is true if any 퇴근 or 조퇴 row exists for the day.
	ClockedOut bool

	// Absent is true if any 결근 row exists for the day.
	Absent bool
}

// DeriveStatus scans the full record set and answers whether the named user
// is clocked in, clocked out, or marked absent on the given day.
//
// It is a pure function of its inputs: O(n) over rows, no side effects
// beyond diagnostics. Presence, not count, matters: duplicate rows from
// racing writers change nothing. Rows shorter than three cells are skipped
// with a debug log; derivation itself never fails.
//
// The day comparison is a string prefix match on the timestamp cell, so an
// unparsable time-of-day portion cannot poison the scan.
func DeriveStatus(rows [][]string, name string, day time.Time, logger *slog.Logger) Status {
	if logger == nil {
		logger = slog.Default()
	}
	name = NormalizeName(name)
	prefix := day.Format(DateLayout)

	var st Status
	for i, row := range rows {
		if len(row) < 3 {
			logger.Debug("skipping short row", "row", i, "cells", len(row))
			continue
		}
		if !strings.HasPrefix(row[cellTimestamp], prefix) {
			continue
		}
		if NormalizeName(row[cellName]) != name {
			continue
		}
		switch event := EventType(row[cellEvent]); {
		case event.IsClockInClass():
			st.ClockedIn = true
		case event.IsClockOutClass():
			st.ClockedOut = true
		case event == EventAbsent:
			st.Absent = true
		}
	}
	return st
}
