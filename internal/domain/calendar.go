package domain

import "time"

// DayLocation is the resolved owner of a single calendar day. It is derived
// from the trips and subtrips in memory and never persisted.
type DayLocation struct {
	Location string
	IsTrip   bool // true when the day falls back to a trip's destination
	OwnerID  string
	Color    string // "#RRGGBB"
}

// LegendEntry is one row of the legend rendered next to a calendar.
type LegendEntry struct {
	Location string
	Color    string
	IsTrip   bool
	OwnerID  string
}

// SkippedEntity records a trip or subtrip that was left out of a calendar
// because its dates could not be used.
type SkippedEntity struct {
	OwnerID string
	IsTrip  bool
	Reason  string
}

// CalendarDay is one day of a calendar view. Location is nil when neither a
// trip nor a subtrip covers the day. Items is never nil.
type CalendarDay struct {
	Date     time.Time // midnight UTC
	Location *DayLocation
	Items    []ItineraryItem
}

// CalendarView is the per-day rendering model for one or more trips.
type CalendarView struct {
	Days    []CalendarDay
	Legend  []LegendEntry
	Skipped []SkippedEntity
}
