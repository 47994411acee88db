package calendar

import "time"

// juneteenthFirstYear is the first year the bond market closed for Juneteenth.
const juneteenthFirstYear = 2022

// isUSBondMarketHoliday follows the SIFMA full-close schedule. Holidays on a
// Saturday close the preceding Friday, except New Year's Day, which is not
// moved back into December. Sunday holidays close the Monday after.
func isUSBondMarketHoliday(t time.Time) bool {
	y, m, d := t.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	newYear := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	if newYear.Weekday() != time.Saturday && date.Equal(observed(newYear)) {
		return true
	}
	if date.Equal(goodFriday(y)) {
		return true
	}

	fixed := []time.Time{
		time.Date(y, time.July, 4, 0, 0, 0, 0, time.UTC),
		time.Date(y, time.November, 11, 0, 0, 0, 0, time.UTC),
		time.Date(y, time.December, 25, 0, 0, 0, 0, time.UTC),
	}
	if y >= juneteenthFirstYear {
		fixed = append(fixed, time.Date(y, time.June, 19, 0, 0, 0, 0, time.UTC))
	}
	for _, h := range fixed {
		if date.Equal(observed(h)) {
			return true
		}
	}

	floating := []time.Time{
		nthWeekday(y, time.January, time.Monday, 3),    // Martin Luther King Jr. Day
		nthWeekday(y, time.February, time.Monday, 3),   // Washington's Birthday
		lastWeekday(y, time.May, time.Monday),          // Memorial Day
		nthWeekday(y, time.September, time.Monday, 1),  // Labor Day
		nthWeekday(y, time.October, time.Monday, 2),    // Columbus Day
		nthWeekday(y, time.November, time.Thursday, 4), // Thanksgiving
	}
	for _, h := range floating {
		if date.Equal(h) {
			return true
		}
	}
	return false
}

// observed moves Saturday holidays to Friday and Sunday holidays to Monday.
func observed(h time.Time) time.Time {
	switch h.Weekday() {
	case time.Saturday:
		return h.AddDate(0, 0, -1)
	case time.Sunday:
		return h.AddDate(0, 0, 1)
	default:
		return h
	}
}

// goodFriday uses the anonymous Gregorian computus for Easter Sunday.
func goodFriday(year int) time.Time {
	a := year % 19
	b, c := year/100, year%100
	d, e := b/4, b%4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i, k := c/4, c%4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	easter := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return easter.AddDate(0, 0, -2)
}

func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(wd) + 7) % 7
	return last.AddDate(0, 0, -offset)
}
