package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessDays_March2026(t *testing.T) {
	days := BusinessDays(2026, time.March)
	require.Len(t, days, 22)
	assert.Equal(t, 2, days[0].Day(), "March 1st 2026 is a Sunday")
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, 31, days[len(days)-1].Day())
	for _, d := range days {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}

func TestWriteMonthCSV_StartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMonthCSV(&buf, nil, 2026, time.March))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteMonthCSV_Golden(t *testing.T) {
	rows := [][]string{
		{"2026-03-02 09:00:00", "김철수", "출근", "37.4,126.9", "1.0m"},
		{"2026-03-02 18:05:00", "김철수", "퇴근", "37.4,126.9", "1.0m"},
		{"2026-03-03 10:15:00", "김철수", "지각", "37.4,126.9", "1.0m", "", "병원"},
		{"2026-03-03 18:00:00", "김철수", "퇴근", "37.4,126.9", "1.0m"},
		{"2026-03-02 09:30:00", "홍길동", "출근", "37.4,126.9", "1.0m"},
		{"2026-03-02 17:00:00", "홍길동", "조퇴", "37.4,126.9", "1.0m", "[업무] 외근"},
		{"2026-03-04 08:00:00", "홍길동", "결근", "", "", "", "", "독감"},
	}
	summaries := AggregateMonth(rows, 2026, time.March, time.UTC, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteMonthCSV(&buf, summaries, 2026, time.March))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "monthly_csv", buf.Bytes())
}

func TestDayCell(t *testing.T) {
	assert.Equal(t, "09:00~18:05", dayCell(DaySummary{In: "09:00", Out: "18:05"}))
	assert.Equal(t, "09:00~", dayCell(DaySummary{In: "09:00"}))
	assert.Equal(t, "~18:05", dayCell(DaySummary{Out: "18:05"}))
	assert.Equal(t, "결근", dayCell(DaySummary{Absent: true}))
	assert.Equal(t, "", dayCell(DaySummary{}))
}
