package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per itinerary item, with trip
// fields repeated for every item on that trip. Trips with no items yield one
// row with zero values for all item fields.
//
// DayLocation is the location that owns the item's calendar day after
// subtrip/trip resolution; empty when no trip or subtrip covers that day.
type ExportRow struct {
	// Trip fields, repeated for every item on the trip.
	TripID          string
	TripTitle       string
	TripDestination string
	TripStartDate   string // "2006-01-02"
	TripEndDate     string // "2006-01-02"

	// Item fields, zero values when the trip has no items.
	ItemType     string
	ItemTitle    string
	ItemLocation string
	StartTime    *time.Time
	EndTime      *time.Time
	Cost         *float64
	Currency     string
	Notes        string

	DayLocation string
}
