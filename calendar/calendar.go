package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// USD is the US Treasury cash market calendar (SIFMA full closes).
	USD CalendarID = "USD"
	// WeekendsOnly treats every weekday as a business day.
	WeekendsOnly CalendarID = "WEEKENDS"
)

func isHoliday(cal CalendarID, t time.Time) bool {
	switch cal {
	case USD:
		return isUSBondMarketHoliday(t)
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// PreviousBusinessDay is the last business day strictly before t, at midnight UTC.
// Settlement prices published today are quoted as of this date.
func PreviousBusinessDay(cal CalendarID, t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, day, -1)
}
