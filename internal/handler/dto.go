package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies. Field names follow openapi.yaml.

// TripRequest is the body of POST /trips and PUT /trips/{tripId}.
type TripRequest struct {
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Color       *string            `json:"color,omitempty"`
	Emoji       *string            `json:"emoji,omitempty"`
	Description *string            `json:"description,omitempty"`
}

// Trip is the JSON representation of a trip.
type Trip struct {
	ID          openapi_types.UUID `json:"id"`
	Title       string             `json:"title"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Color       *string            `json:"color,omitempty"`
	Emoji       *string            `json:"emoji,omitempty"`
	Description *string            `json:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SubtripRequest is the body of POST and PUT on subtrips.
type SubtripRequest struct {
	Location    string             `json:"location"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Color       *string            `json:"color,omitempty"`
	Description *string            `json:"description,omitempty"`
	OrderIndex  *int               `json:"order_index,omitempty"`
}

// Subtrip is the JSON representation of a subtrip.
type Subtrip struct {
	ID          openapi_types.UUID `json:"id"`
	TripID      openapi_types.UUID `json:"trip_id"`
	Location    string             `json:"location"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Color       *string            `json:"color,omitempty"`
	Description *string            `json:"description,omitempty"`
	OrderIndex  int                `json:"order_index"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ItemRequest is the body of POST and PUT on itinerary items.
type ItemRequest struct {
	Type      string              `json:"type"`
	Title     string              `json:"title"`
	Location  *string             `json:"location,omitempty"`
	StartTime time.Time           `json:"start_time"`
	EndTime   *time.Time          `json:"end_time,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	Cost      *float64            `json:"cost,omitempty"`
	Currency  *string             `json:"currency,omitempty"`
	SubtripID *openapi_types.UUID `json:"subtrip_id,omitempty"`
}

// Item is the JSON representation of an itinerary item.
type Item struct {
	ID        openapi_types.UUID  `json:"id"`
	TripID    openapi_types.UUID  `json:"trip_id"`
	SubtripID *openapi_types.UUID `json:"subtrip_id,omitempty"`
	Type      string              `json:"type"`
	Title     string              `json:"title"`
	Location  *string             `json:"location,omitempty"`
	StartTime time.Time           `json:"start_time"`
	EndTime   *time.Time          `json:"end_time,omitempty"`
	Notes     *string             `json:"notes,omitempty"`
	Cost      *float64            `json:"cost,omitempty"`
	Currency  *string             `json:"currency,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// MoveRequest is the body of POST /trips/{tripId}/items/{itemId}/move.
type MoveRequest struct {
	Date *openapi_types.Date `json:"date"`
}

// DayLocation is the resolved location of one calendar day.
type DayLocation struct {
	Location string `json:"location"`
	IsTrip   bool   `json:"is_trip"`
	OwnerID  string `json:"owner_id"`
	Color    string `json:"color"`
}

// CalendarDay is one day of a calendar view. Location is null when no
// trip or subtrip covers the day.
type CalendarDay struct {
	Date     openapi_types.Date `json:"date"`
	Location *DayLocation       `json:"location"`
	Items    []Item             `json:"items"`
}

// LegendEntry is one distinct location shown in a calendar legend.
type LegendEntry struct {
	Location string `json:"location"`
	Color    string `json:"color"`
	IsTrip   bool   `json:"is_trip"`
	OwnerID  string `json:"owner_id"`
}

// SkippedEntity reports a trip or subtrip left out of a view.
type SkippedEntity struct {
	OwnerID string `json:"owner_id"`
	IsTrip  bool   `json:"is_trip"`
	Reason  string `json:"reason"`
}

// CalendarView is the body of every calendar endpoint.
type CalendarView struct {
	Days    []CalendarDay   `json:"days"`
	Legend  []LegendEntry   `json:"legend"`
	Skipped []SkippedEntity `json:"skipped"`
}

// PreviewSpan is an unsaved trip or subtrip. Dates are raw strings so that
// malformed values are reported in skipped rather than rejected.
type PreviewSpan struct {
	ID        string `json:"id"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Color     string `json:"color,omitempty"`
}

// PreviewRequest is the body of POST /calendar/preview.
type PreviewRequest struct {
	Trips    []PreviewSpan `json:"trips"`
	Subtrips []PreviewSpan `json:"subtrips"`
}

// ExportRow is one line of GET /export.
type ExportRow struct {
	TripID          openapi_types.UUID `json:"trip_id"`
	TripTitle       string             `json:"trip_title"`
	TripDestination string             `json:"trip_destination"`
	TripStartDate   openapi_types.Date `json:"trip_start_date"`
	TripEndDate     openapi_types.Date `json:"trip_end_date"`
	ItemType        *string            `json:"item_type,omitempty"`
	ItemTitle       *string            `json:"item_title,omitempty"`
	ItemLocation    *string            `json:"item_location,omitempty"`
	StartTime       *time.Time         `json:"start_time,omitempty"`
	EndTime         *time.Time         `json:"end_time,omitempty"`
	Cost            *float64           `json:"cost,omitempty"`
	Currency        *string            `json:"currency,omitempty"`
	Notes           *string            `json:"notes,omitempty"`
	DayLocation     *string            `json:"day_location,omitempty"`
}

// optional returns nil for the empty string so omitempty drops it.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deref returns the pointed-to string, or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
