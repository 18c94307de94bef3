package attendance

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Wire layout of a stored timestamp: site-local time, second precision.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// ExcusedMarker marks a late/early-leave reason as excused ("[work]").
// Stored verbatim in the reason cell; interpreted only by the aggregator.
const ExcusedMarker = "[업무]"

// EventType identifies one attendance event. The values are the Korean
// labels written to the backing store, matching the shared sheet.
type EventType string

const (
	EventClockIn    EventType = "출근"
	EventLate       EventType = "지각"
	EventClockOut   EventType = "퇴근"
	EventEarlyLeave EventType = "조퇴"
	EventAbsent     EventType = "결근"
)

// IsClockInClass reports whether the event starts a workday (출근 or 지각).
func (e EventType) IsClockInClass() bool {
	return e == EventClockIn || e == EventLate
}

// IsClockOutClass reports whether the event ends a workday (퇴근 or 조퇴).
func (e EventType) IsClockOutClass() bool {
	return e == EventClockOut || e == EventEarlyLeave
}

// Valid reports whether e is one of the five known event types.
func (e EventType) Valid() bool {
	switch e {
	case EventClockIn, EventLate, EventClockOut, EventEarlyLeave, EventAbsent:
		return true
	}
	return false
}

// RequiresReason reports whether the event type must carry a non-empty
// reason (지각, 조퇴, 결근).
func (e EventType) RequiresReason() bool {
	return e == EventLate || e == EventEarlyLeave || e == EventAbsent
}

// Cell positions in a stored row. Later columns are omitted entirely for
// event types that do not use them, so rows are ragged.
const (
	cellTimestamp = iota
	cellName
	cellEvent
	cellLocation
	cellDistance
	cellEarlyReason
	cellLateReason
	cellAbsentReason
	cellCount
)

// Record is one attendance event. Records are append-only: created exactly
// once by the Recorder and never mutated.
type Record struct {
	// ID is a UUIDv7 assigned at creation. Rows imported from legacy
	// sheets have no ID; the field is empty for them.
	ID string

	// Timestamp is the event time in the site-local timezone.
	Timestamp time.Time

	// Name is the NFC-normalized identity string.
	Name string

	// Event is the event type.
	Event EventType

	// Location is "lat,lon" as reported by the client; empty for 결근.
	Location string

	// Distance is the formatted distance to the site, e.g. "73.1m";
	// empty for 결근.
	Distance string

	// Reason is free text; required for 지각, 조퇴 and 결근.
	Reason string
}

// Date returns the record's calendar date in DateLayout form.
func (r Record) Date() string {
	return r.Timestamp.Format(DateLayout)
}

// Excused reports whether the reason carries the excused marker.
func (r Record) Excused() bool {
	return strings.Contains(r.Reason, ExcusedMarker)
}

// Cells encodes the record as a positional row for the store. The reason
// lands in the column its event type owns; trailing empty columns are
// dropped so the row shape matches what the sheet holds.
func (r Record) Cells() []string {
	row := make([]string, cellCount)
	row[cellTimestamp] = r.Timestamp.Format(TimestampLayout)
	row[cellName] = r.Name
	row[cellEvent] = string(r.Event)
	row[cellLocation] = r.Location
	row[cellDistance] = r.Distance
	switch r.Event {
	case EventEarlyLeave:
		row[cellEarlyReason] = r.Reason
	case EventLate:
		row[cellLateReason] = r.Reason
	case EventAbsent:
		row[cellAbsentReason] = r.Reason
	}
	for len(row) > 3 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}

// ParseRow decodes one stored row. Rows with fewer than three cells or an
// unparsable timestamp return an error; callers on the read side skip such
// rows instead of failing the whole scan.
func ParseRow(cells []string, loc *time.Location) (Record, error) {
	if len(cells) < 3 {
		return Record{}, fmt.Errorf("row too short: %d cells", len(cells))
	}
	ts, err := time.ParseInLocation(TimestampLayout, cells[cellTimestamp], loc)
	if err != nil {
		return Record{}, fmt.Errorf("parse timestamp %q: %w", cells[cellTimestamp], err)
	}
	rec := Record{
		Timestamp: ts,
		Name:      NormalizeName(cells[cellName]),
		Event:     EventType(cells[cellEvent]),
	}
	if len(cells) > cellLocation {
		rec.Location = cells[cellLocation]
	}
	if len(cells) > cellDistance {
		rec.Distance = cells[cellDistance]
	}
	rec.Reason = reasonCell(cells, rec.Event)
	return rec, nil
}

// reasonCell picks the reason column owned by the event type, bounds-checked
// against ragged rows.
func reasonCell(cells []string, event EventType) string {
	var idx int
	switch event {
	case EventEarlyLeave:
		idx = cellEarlyReason
	case EventLate:
		idx = cellLateReason
	case EventAbsent:
		idx = cellAbsentReason
	default:
		return ""
	}
	if len(cells) > idx {
		return cells[idx]
	}
	return ""
}

// NormalizeName trims surrounding whitespace and normalizes the name to
// NFC so that visually identical Hangul compares equal regardless of how
// the client composed it.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
