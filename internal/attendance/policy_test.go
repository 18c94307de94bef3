package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(h, m, s int) time.Time {
	return time.Date(2026, 3, 2, h, m, s, 0, time.UTC)
}

func TestPolicy_ClockInBoundary(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, EventClockIn, p.ClassifyClockIn(at(9, 59, 59)))
	assert.Equal(t, EventLate, p.ClassifyClockIn(at(10, 0, 0)))
	assert.Equal(t, EventLate, p.ClassifyClockIn(at(10, 0, 1)))
	assert.Equal(t, EventClockIn, p.ClassifyClockIn(at(0, 0, 0)))
}

func TestPolicy_ClockOutBoundary(t *testing.T) {
	p := DefaultPolicy()

	assert.Equal(t, EventEarlyLeave, p.ClassifyClockOut(at(17, 59, 59)))
	assert.Equal(t, EventClockOut, p.ClassifyClockOut(at(18, 0, 0)))
	assert.Equal(t, EventClockOut, p.ClassifyClockOut(at(23, 59, 0)))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("10:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 10}, tod)
	assert.Equal(t, "10:00", tod.String())

	tod, err = ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, tod)

	for _, bad := range []string{"", "10", "25:00", "10:60", "ab:cd"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
