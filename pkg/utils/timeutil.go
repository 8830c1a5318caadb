package utils

import (
	"time"
)

// Eastern is the US Eastern location (NYSE/Nasdaq market time).
var Eastern *time.Location

func init() {
	var err error
	Eastern, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: fixed EST offset if the tz database is not available
		Eastern = time.FixedZone("EST", -5*60*60)
	}
}

// Timestamp returns the current wall-clock time as an ISO-8601 string.
// Tool results carry this so the model can tell when data was fetched.
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// NowEastern returns the current time in US Eastern.
func NowEastern() time.Time {
	return time.Now().In(Eastern)
}

// MarketOpenTime returns the regular-session open (9:30 AM ET) for a date.
func MarketOpenTime(date time.Time) time.Time {
	d := date.In(Eastern)
	return time.Date(d.Year(), d.Month(), d.Day(), 9, 30, 0, 0, Eastern)
}

// MarketCloseTime returns the regular-session close (4:00 PM ET) for a date.
func MarketCloseTime(date time.Time) time.Time {
	d := date.In(Eastern)
	return time.Date(d.Year(), d.Month(), d.Day(), 16, 0, 0, 0, Eastern)
}

// IsMarketOpen checks if the US equity market is currently in regular session.
func IsMarketOpen() bool {
	return IsMarketOpenAt(NowEastern())
}

// IsMarketOpenAt checks if the market would be in regular session at t.
func IsMarketOpenAt(t time.Time) bool {
	t = t.In(Eastern)
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	if IsMarketHoliday(t) {
		return false
	}
	open := MarketOpenTime(t)
	close := MarketCloseTime(t)
	return !t.Before(open) && !t.After(close)
}

// IsMarketHoliday checks if the given date is a US market holiday.
func IsMarketHoliday(t time.Time) bool {
	_, isHoliday := nyseHolidays2026[t.In(Eastern).Format("2006-01-02")]
	return isHoliday
}

// NYSE full-day holidays for 2026 (update annually).
var nyseHolidays2026 = map[string]string{
	"2026-01-01": "New Year's Day",
	"2026-01-19": "Martin Luther King, Jr. Day",
	"2026-02-16": "Washington's Birthday",
	"2026-04-03": "Good Friday",
	"2026-05-25": "Memorial Day",
	"2026-06-19": "Juneteenth",
	"2026-07-03": "Independence Day (observed)",
	"2026-09-07": "Labor Day",
	"2026-11-26": "Thanksgiving Day",
	"2026-12-25": "Christmas Day",
}

// MarketStatus returns a short status string for the US equity market.
func MarketStatus() string {
	now := NowEastern()

	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return "CLOSED (Weekend)"
	}
	if IsMarketHoliday(now) {
		return "CLOSED (" + nyseHolidays2026[now.Format("2006-01-02")] + ")"
	}

	open := MarketOpenTime(now)
	close := MarketCloseTime(now)

	switch {
	case now.Before(open):
		return "PRE-MARKET"
	case !now.After(close):
		return "OPEN"
	default:
		return "AFTER-HOURS"
	}
}
