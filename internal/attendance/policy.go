package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a site-local wall-clock cutoff (hour and minute).
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:MM" cutoff string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid cutoff %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid cutoff hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid cutoff minute in %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// String formats the cutoff as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int { return t.Hour*60 + t.Minute }

// Policy holds the time-of-day classification rules evaluated against the
// site-local clock.
type Policy struct {
	// ClockInCutoff: clock-in strictly before it is 출근; at or after
	// it is 지각 and a reason becomes mandatory.
	ClockInCutoff TimeOfDay

	// ClockOutCutoff: clock-out at or after it is 퇴근; strictly before
	// it is 조퇴 and a reason becomes mandatory.
	ClockOutCutoff TimeOfDay
}

// DefaultPolicy returns the observed site rules: late from 10:00, early
// leave before 18:00.
func DefaultPolicy() Policy {
	return Policy{
		ClockInCutoff:  TimeOfDay{Hour: 10},
		ClockOutCutoff: TimeOfDay{Hour: 18},
	}
}

// ClassifyClockIn maps a clock-in attempt at the given site-local time to
// 출근 or 지각. The boundary is exact: 09:59:59 is 출근, 10:00:00 is 지각.
func (p Policy) ClassifyClockIn(now time.Time) EventType {
	if now.Hour()*60+now.Minute() < p.ClockInCutoff.minutes() {
		return EventClockIn
	}
	return EventLate
}

// ClassifyClockOut maps a clock-out attempt at the given site-local time to
// 퇴근 or 조퇴. At or after the cutoff is 퇴근.
func (p Policy) ClassifyClockOut(now time.Time) EventType {
	if now.Hour()*60+now.Minute() >= p.ClockOutCutoff.minutes() {
		return EventClockOut
	}
	return EventEarlyLeave
}
