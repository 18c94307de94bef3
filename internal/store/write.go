package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/minseo-lab/chulgeun/internal/attendance"
)

// Positional row schema shared with the sheet:
// [timestamp, name, eventType, location, distanceMeters,
//  earlyReason?, lateReason?, absentReason?]
const (
	colTimestamp = iota
	colName
	colEvent
	colLocation
	colDistance
	colEarlyReason
	colLateReason
	colAbsentReason
)

// Append inserts one row. ON CONFLICT DO NOTHING makes the insert
// idempotent against the partial unique (name, day, class) index; a
// swallowed conflict is reported as attendance.ErrAlreadyRecorded so the
// recorder can surface it as a rejection instead of a second row.
func (s *Store) Append(ctx context.Context, cells []string) error {
	if len(cells) < 3 {
		return fmt.Errorf("append: row too short: %d cells", len(cells))
	}
	ts := cells[colTimestamp]
	if len(ts) < len(attendance.DateLayout) {
		return fmt.Errorf("append: malformed timestamp %q", ts)
	}
	day := ts[:len(attendance.DateLayout)]
	event := attendance.EventType(cells[colEvent])

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance
		(id, ts, day, name, event, class, location, distance, early_reason, late_reason, absent_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		uuid.Must(uuid.NewV7()).String(),
		ts,
		day,
		attendance.NormalizeName(cells[colName]),
		string(event),
		classOf(event),
		cell(cells, colLocation),
		cell(cells, colDistance),
		cell(cells, colEarlyReason),
		cell(cells, colLateReason),
		cell(cells, colAbsentReason),
	)
	if err != nil {
		return fmt.Errorf("append: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("append: rows affected: %w", err)
	}
	if n == 0 {
		return attendance.ErrAlreadyRecorded
	}
	return nil
}
