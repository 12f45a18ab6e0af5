package calendar

import "time"

// USFederalHolidays returns the observed US federal holidays that fall in year.
//
// Fixed-date holidays follow the nearest-workday rule: Saturday moves to the
// preceding Friday, Sunday to the following Monday. A Saturday New Year's Day of
// year+1 is therefore observed on Dec 31 of year and is included here.
func USFederalHolidays(year int) []time.Time {
	days := []time.Time{
		nthWeekday(year, time.January, time.Monday, 3),    // Martin Luther King Jr. Day
		nthWeekday(year, time.February, time.Monday, 3),   // Washington's Birthday
		lastWeekday(year, time.May, time.Monday),          // Memorial Day
		nthWeekday(year, time.September, time.Monday, 1),  // Labor Day
		nthWeekday(year, time.October, time.Monday, 2),    // Columbus Day
		nthWeekday(year, time.November, time.Thursday, 4), // Thanksgiving
	}

	fixed := []struct {
		month time.Month
		day   int
		since int
	}{
		{time.January, 1, 0},
		{time.June, 19, 2021}, // Juneteenth
		{time.July, 4, 0},
		{time.November, 11, 0},
		{time.December, 25, 0},
	}
	for _, f := range fixed {
		if year < f.since {
			continue
		}
		obs := nearestWorkday(date(year, f.month, f.day))
		// New Year's Day on a Saturday is observed in the previous year.
		if obs.Year() == year {
			days = append(days, obs)
		}
	}
	if next := nearestWorkday(date(year+1, time.January, 1)); next.Year() == year {
		days = append(days, next)
	}
	return days
}

// IsBusinessDayUS reports whether d is neither a weekend nor an observed US federal holiday.
func IsBusinessDayUS(d time.Time) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	day := truncateToDate(d)
	y, m, dd := day.Date()
	key := date(y, m, dd)
	for _, h := range USFederalHolidays(y) {
		if h.Equal(key) {
			return false
		}
	}
	return true
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func nearestWorkday(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

// nthWeekday returns the n-th occurrence (1-based) of wd in the given month.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int) time.Time {
	first := date(year, month, 1)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+7*(n-1))
}

func lastWeekday(year int, month time.Month, wd time.Weekday) time.Time {
	last := date(year, month+1, 1).AddDate(0, 0, -1)
	offset := (int(last.Weekday()) - int(wd) + 7) % 7
	return last.AddDate(0, 0, -offset)
}
