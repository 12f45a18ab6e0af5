package calendar

import (
	"time"

	"github.com/guttosm/stockcharts/internal/domain/models"
)

// BusinessDays returns the last window US business days before now's calendar
// date, ordered oldest to newest.
//
// Behavior:
//   - Skips Saturdays, Sundays and observed US federal holidays.
//   - The newest entry is the business day immediately preceding now.
//   - When includeToday is true, now's date is appended as an extra
//     (window+1)-th entry representing the live quote slot.
//
// Returns a *models.ValidationError when window <= 0.
func BusinessDays(window int, now time.Time, includeToday bool) ([]models.TradingDay, error) {
	if window <= 0 {
		return nil, &models.ValidationError{Field: "window", Reason: "must be a positive number of business days"}
	}

	today := truncateToDate(now)
	newestFirst := make([]time.Time, 0, window)
	for d := today.AddDate(0, 0, -1); len(newestFirst) < window; d = d.AddDate(0, 0, -1) {
		if IsBusinessDayUS(d) {
			newestFirst = append(newestFirst, d)
		}
	}

	out := make([]models.TradingDay, 0, window+1)
	for i := len(newestFirst) - 1; i >= 0; i-- {
		out = append(out, Format(newestFirst[i]))
	}
	if includeToday {
		out = append(out, Format(today))
	}
	return out, nil
}

// Format renders t as a TradingDay (YYYY-MM-DD) in t's own location.
func Format(t time.Time) models.TradingDay {
	return models.TradingDay(t.Format(models.DayLayout))
}

// Clock resolves "today" in the market timezone and the day served by the
// live-quote endpoint.
//
// Override, when set, replaces today as the live day.
type Clock struct {
	Location *time.Location
	Override models.TradingDay
	Now      func() time.Time
}

// Today returns the current instant in the clock's location.
func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// LiveDay returns the trading day whose price comes from the last-trade endpoint.
func (c Clock) LiveDay() models.TradingDay {
	if c.Override != "" {
		return c.Override
	}
	return Format(c.Today())
}
