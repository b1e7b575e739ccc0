package period

import (
	"time"

	"github.com/mbiancareli/studio-manager/internal/httperr"
)

// ===============================
// View windows (appointments)
// ===============================

type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// endOfDay returns the last represented instant of the day holding t
// (23:59:59.999), so range queries stay inclusive on both ends.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Millisecond)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayWindow is the inclusive [00:00:00.000, 23:59:59.999] range of ref's day.
func DayWindow(ref time.Time) (time.Time, time.Time) {
	return startOfDay(ref), endOfDay(ref)
}

// WeekWindow is the Sunday-to-Saturday week containing ref.
func WeekWindow(ref time.Time) (time.Time, time.Time) {
	start := startOfDay(ref.AddDate(0, 0, -int(ref.Weekday())))
	return start, endOfDay(start.AddDate(0, 0, 6))
}

// MonthWindow is the first-to-last calendar day of ref's month.
func MonthWindow(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return start, endOfDay(start.AddDate(0, 1, -1))
}

// ViewWindow resolves a named view mode to its inclusive date range.
func ViewWindow(view View, ref time.Time) (time.Time, time.Time, error) {
	switch view {
	case ViewDay:
		start, end := DayWindow(ref)
		return start, end, nil
	case ViewWeek:
		start, end := WeekWindow(ref)
		return start, end, nil
	case ViewMonth:
		start, end := MonthWindow(ref)
		return start, end, nil
	}
	return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_view")
}

// ===============================
// Ledger periods (finances)
// ===============================

type LedgerPeriod string

const (
	PeriodMonth       LedgerPeriod = "month"
	PeriodThreeMonths LedgerPeriod = "3months"
	PeriodSixMonths   LedgerPeriod = "6months"
	PeriodYear        LedgerPeriod = "year"
	PeriodCustom      LedgerPeriod = "custom"
)

// LedgerWindow maps a named ledger period to [start, now]. The 3- and
// 6-month windows start on the first day of two/five calendar months
// before the current one. Custom periods are resolved by the caller from
// its explicit bounds.
func LedgerWindow(p LedgerPeriod, now time.Time) (time.Time, time.Time, error) {
	firstOfMonth := func(monthsBack int) time.Time {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
			AddDate(0, -monthsBack, 0)
	}

	switch p {
	case PeriodMonth:
		return firstOfMonth(0), now, nil
	case PeriodThreeMonths:
		return firstOfMonth(2), now, nil
	case PeriodSixMonths:
		return firstOfMonth(5), now, nil
	case PeriodYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), now, nil
	}
	return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_period")
}

// ===============================
// Insight periods
// ===============================

type InsightPeriod string

const (
	InsightMonth    InsightPeriod = "month"
	InsightSemester InsightPeriod = "semester"
	InsightYear     InsightPeriod = "year"
)

// InsightStart maps a named insight period to its open-ended start date.
func InsightStart(p InsightPeriod, now time.Time) (time.Time, error) {
	switch p {
	case InsightMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case InsightSemester:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
			AddDate(0, -5, 0), nil
	case InsightYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	}
	return time.Time{}, httperr.ErrBusiness("invalid_period")
}
