package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindow(t *testing.T) {
	ref := time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC)

	start, end := DayWindow(ref)

	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 12, 23, 59, 59, 999000000, time.UTC), end)
}

func TestWeekWindowStartsOnSunday(t *testing.T) {
	// 2025-03-12 is a Wednesday
	ref := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	start, end := WeekWindow(ref)

	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Saturday, end.Weekday())
	assert.Equal(t, 15, end.Day())

	// a Sunday anchors its own week
	sun := time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)
	start, _ = WeekWindow(sun)
	assert.Equal(t, 9, start.Day())
}

func TestMonthWindow(t *testing.T) {
	ref := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)

	start, end := MonthWindow(ref)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), start)
	// february 2025 has 28 days
	assert.Equal(t, 28, end.Day())
	assert.Equal(t, time.February, end.Month())
}

func TestViewWindow(t *testing.T) {
	ref := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

	for _, view := range []View{ViewDay, ViewWeek, ViewMonth} {
		start, end, err := ViewWindow(view, ref)
		require.NoError(t, err)
		assert.True(t, start.Before(end))
	}

	_, _, err := ViewWindow(View("fortnight"), ref)
	require.Error(t, err)
}

func TestLedgerWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	start, end, err := LedgerWindow(PeriodMonth, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now, end)

	start, _, err = LedgerWindow(PeriodThreeMonths, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), start)

	start, _, err = LedgerWindow(PeriodSixMonths, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)

	start, _, err = LedgerWindow(PeriodYear, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)

	_, _, err = LedgerWindow(LedgerPeriod("decade"), now)
	require.Error(t, err)
}

func TestLedgerWindowCrossesYear(t *testing.T) {
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)

	start, _, err := LedgerWindow(PeriodThreeMonths, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestInsightStart(t *testing.T) {
	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

	start, err := InsightStart(InsightMonth, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), start)

	start, err = InsightStart(InsightSemester, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)

	start, err = InsightStart(InsightYear, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)

	_, err = InsightStart(InsightPeriod("quarter"), now)
	require.Error(t, err)
}
