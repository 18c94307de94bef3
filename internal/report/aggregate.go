// Package report turns the raw attendance log into per-user monthly
// summaries and the CSV the admin hands to payroll.
package report

import (
	"log/slog"
	"sort"
	"time"

	"github.com/minseo-lab/chulgeun/internal/attendance"
)

// DaySummary is one user's derived state for one calendar date.
type DaySummary struct {
	Date string `json:"date"` // YYYY-MM-DD

	// In is the earliest clock-in-class time that day, "HH:MM"; empty
	// when the day has no clock-in-class row.
	In string `json:"in,omitempty"`

	// Out is the latest clock-out-class time that day, "HH:MM".
	Out string `json:"out,omitempty"`

	Late         bool `json:"late,omitempty"`
	LateExcused  bool `json:"late_excused,omitempty"`
	Early        bool `json:"early,omitempty"`
	EarlyExcused bool `json:"early_excused,omitempty"`
	Absent       bool `json:"absent,omitempty"`

	// DurationHours is out minus in; zero (and excluded from the
	// monthly average) unless both ends exist.
	DurationHours float64 `json:"duration_hours,omitempty"`
}

// UserSummary is one user's monthly roll-up. PresentDays counts distinct
// dates with any record, including dates whose only record is 결근, which
// matches the behavior the reports have always shown.
type UserSummary struct {
	Name             string       `json:"name"`
	PresentDays      int          `json:"present_days"`
	LateCount        int          `json:"late_count"`
	EarlyCount       int          `json:"early_count"`
	AbsentCount      int          `json:"absent_count"`
	AvgDurationHours float64      `json:"avg_duration_hours"`
	Days             []DaySummary `json:"days"`
}

// dayAgg accumulates one user-day while scanning.
type dayAgg struct {
	in           time.Time
	out          time.Time
	late         bool
	lateExcused  bool
	early        bool
	earlyExcused bool
	absent       bool
}

// AggregateMonth rolls every parsable record of the given month up into
// per-user summaries, sorted by user name. Unparsable rows are dropped
// with a diagnostic. An empty month yields no summaries.
//
// Per user-day: in = earliest 출근/지각 time, out = latest 퇴근/조퇴 time,
// duration = out − in when both exist. A late day counts toward LateCount
// unless at least one 지각 row that day carries the excused marker; the
// early-leave rule is symmetric. Absence has no excusal.
func AggregateMonth(rows [][]string, year int, month time.Month, loc *time.Location, logger *slog.Logger) []UserSummary {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.Local
	}

	users := make(map[string]map[string]*dayAgg)
	for i, row := range rows {
		rec, err := attendance.ParseRow(row, loc)
		if err != nil {
			logger.Debug("dropping unparsable row", "row", i, "err", err)
			continue
		}
		if rec.Timestamp.Year() != year || rec.Timestamp.Month() != month {
			continue
		}

		days := users[rec.Name]
		if days == nil {
			days = make(map[string]*dayAgg)
			users[rec.Name] = days
		}
		date := rec.Date()
		agg := days[date]
		if agg == nil {
			agg = &dayAgg{}
			days[date] = agg
		}

		switch {
		case rec.Event.IsClockInClass():
			if agg.in.IsZero() || rec.Timestamp.Before(agg.in) {
				agg.in = rec.Timestamp
			}
			if rec.Event == attendance.EventLate {
				agg.late = true
				if rec.Excused() {
					agg.lateExcused = true
				}
			}
		case rec.Event.IsClockOutClass():
			if agg.out.IsZero() || rec.Timestamp.After(agg.out) {
				agg.out = rec.Timestamp
			}
			if rec.Event == attendance.EventEarlyLeave {
				agg.early = true
				if rec.Excused() {
					agg.earlyExcused = true
				}
			}
		case rec.Event == attendance.EventAbsent:
			agg.absent = true
		default:
			logger.Debug("dropping row with unknown event", "row", i, "event", string(rec.Event))
		}
	}

	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]UserSummary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, summarize(name, users[name]))
	}
	return summaries
}

func summarize(name string, days map[string]*dayAgg) UserSummary {
	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	s := UserSummary{Name: name, PresentDays: len(dates)}
	var durSum float64
	var durCount int
	for _, date := range dates {
		agg := days[date]
		day := DaySummary{
			Date:         date,
			Late:         agg.late,
			LateExcused:  agg.lateExcused,
			Early:        agg.early,
			EarlyExcused: agg.earlyExcused,
			Absent:       agg.absent,
		}
		if !agg.in.IsZero() {
			day.In = agg.in.Format("15:04")
		}
		if !agg.out.IsZero() {
			day.Out = agg.out.Format("15:04")
		}
		if !agg.in.IsZero() && !agg.out.IsZero() {
			day.DurationHours = agg.out.Sub(agg.in).Hours()
			durSum += day.DurationHours
			durCount++
		}
		if agg.late && !agg.lateExcused {
			s.LateCount++
		}
		if agg.early && !agg.earlyExcused {
			s.EarlyCount++
		}
		if agg.absent {
			s.AbsentCount++
		}
		s.Days = append(s.Days, day)
	}
	if durCount > 0 {
		s.AvgDurationHours = durSum / float64(durCount)
	}
	return s
}
