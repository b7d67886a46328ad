// Package calendar resolves which location owns each calendar day of a trip
// and which colour represents it.
//
// The resolution is a pure function of the trips and subtrips handed to
// Resolve: trips are applied first as a fallback, subtrips then overwrite
// the days they cover in input order. Resolver adds an optional LRU cache
// in front of Resolve. EncodeICS renders a resolution as iCalendar.
package calendar

import (
	"time"

	"github.com/golang-sql/civil"
)

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (civil.Date, error) {
	return civil.ParseDate(s)
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) civil.Date {
	return civil.DateOf(t)
}

// Midnight returns d as midnight UTC, the representation domain types use
// for date-only values.
func Midnight(d civil.Date) time.Time {
	return d.In(time.UTC)
}

// EachDay calls fn for every date from start to end inclusive.
// It does nothing when end is before start.
func EachDay(start, end civil.Date, fn func(civil.Date)) {
	for d := start; !d.After(end); d = d.AddDays(1) {
		fn(d)
	}
}
