// Package domain contains the core data types for the trip planner.
// It is imported by every other internal package (repo, service, calendar,
// handler) and depends on nothing but uuid.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level travel plan: one destination over an inclusive
// range of calendar dates. Subtrips and itinerary items belong to a trip.
//
// StartDate and EndDate carry only the calendar date; the time-of-day part
// is always midnight UTC.
type Trip struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Color       string // "#RRGGBB" or empty when the user picked none
	Emoji       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
