package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemType tags an itinerary item with what kind of event it is.
type ItemType string

const (
	ItemFlight         ItemType = "flight"
	ItemTransport      ItemType = "transport"
	ItemAccommodation  ItemType = "accommodation"
	ItemMeal           ItemType = "meal"
	ItemActivity       ItemType = "activity"
	ItemLandmark       ItemType = "landmark"
	ItemEvent          ItemType = "event"
	ItemLocalTransport ItemType = "local_transport"
	ItemShopping       ItemType = "shopping"
	ItemOutdoor        ItemType = "outdoor"
	ItemMuseum         ItemType = "museum"
	ItemWellness       ItemType = "wellness"
	ItemSocial         ItemType = "social"
	ItemFreeTime       ItemType = "free_time"
	ItemCheckin        ItemType = "checkin"
)

// ItemTypes lists every valid ItemType in display order.
var ItemTypes = []ItemType{
	ItemFlight, ItemTransport, ItemAccommodation, ItemMeal, ItemActivity,
	ItemLandmark, ItemEvent, ItemLocalTransport, ItemShopping, ItemOutdoor,
	ItemMuseum, ItemWellness, ItemSocial, ItemFreeTime, ItemCheckin,
}

// Valid reports whether t is one of ItemTypes.
func (t ItemType) Valid() bool {
	for _, v := range ItemTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ItineraryItem is a scheduled event within a trip, optionally tied to one
// of the trip's subtrips. EndTime is nil for point-in-time events.
type ItineraryItem struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	SubtripID *uuid.UUID
	Type      ItemType
	Title     string
	Location  string
	StartTime time.Time
	EndTime   *time.Time
	Notes     string
	Cost      *float64
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemFilter narrows an itinerary listing. Zero values mean "no filter".
// From and To are inclusive bounds on StartTime.
type ItemFilter struct {
	From *time.Time
	To   *time.Time
	Type ItemType
}
