package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subtrip is a finer-grained location inside a trip ("Location" in the UI).
// Its dates are expected, but not required, to fall inside the trip's range,
// and subtrips of the same trip may overlap.
type Subtrip struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	Color       string
	Description string
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
