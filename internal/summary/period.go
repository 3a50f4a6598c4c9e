package summary

import (
	"strings"
	"time"

	pkgerrors "github.com/soldhq/sales-ledger/pkg/errors"
)

// Period names a supported summary window.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a period token.
func ParsePeriod(raw string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "period must be day, week or month")
	}
}

// WindowStart computes the start of the closed summary window ending
// at now, using UTC calendar-field subtraction rather than fixed
// durations.
func WindowStart(period Period, now time.Time) time.Time {
	now = now.UTC()
	switch period {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return minusOneMonth(now)
	default:
		return now
	}
}

// minusOneMonth subtracts one calendar month, clamping the day of
// month to the last valid day of the target month. Mar 31 maps to
// Feb 28 (29 in leap years) instead of normalizing into early March.
func minusOneMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month-1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	lastDay := daysIn(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
