package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// utf8BOM prefixes the export so spreadsheet applications detect UTF-8
// instead of mangling the Korean text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var koreanWeekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// BusinessDays returns the Monday-to-Friday dates of the month in order.
func BusinessDays(year int, month time.Month) []time.Time {
	var days []time.Time
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Month() == month {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// WriteMonthCSV writes the monthly export: UTF-8 with BOM, one row per
// user, a summary column, then one column per business day holding that
// day's in~out times or the absence mark.
func WriteMonthCSV(w io.Writer, summaries []UserSummary, year int, month time.Month) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	days := BusinessDays(year, month)
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(days)+2)
	header = append(header, "이름", "요약")
	for _, d := range days {
		header = append(header, fmt.Sprintf("%d(%s)", d.Day(), koreanWeekdays[d.Weekday()]))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range summaries {
		byDate := make(map[string]DaySummary, len(s.Days))
		for _, day := range s.Days {
			byDate[day.Date] = day
		}

		row := make([]string, 0, len(days)+2)
		row = append(row, s.Name, fmt.Sprintf(
			"출근 %d일 / 지각 %d / 조퇴 %d / 결근 %d / 평균 %.1f시간",
			s.PresentDays, s.LateCount, s.EarlyCount, s.AbsentCount, s.AvgDurationHours))
		for _, d := range days {
			row = append(row, dayCell(byDate[d.Format("2006-01-02")]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", s.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// dayCell renders one business-day column: "in~out" when the times exist,
// the absence mark when the day is absence-only, empty otherwise.
func dayCell(day DaySummary) string {
	switch {
	case day.In != "" && day.Out != "":
		return day.In + "~" + day.Out
	case day.In != "":
		return day.In + "~"
	case day.Out != "":
		return "~" + day.Out
	case day.Absent:
		return "결근"
	}
	return ""
}
