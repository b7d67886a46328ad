package handler

import (
	"net/http"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CreateItem handles POST /trips/{tripId}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	var body ItemRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.itinerary.Create(r.Context(), uid, requestToItem(tripID, uuid.Nil, body))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, itemToResponse(created))
}

// ListItems handles GET /trips/{tripId}/items.
// Optional filters: ?from= and ?to= (local calendar dates, inclusive) and ?type=.
func (s *Server) ListItems(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	from, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryDate(w, r, "to")
	if !ok {
		return
	}
	var itemType *string
	if !queryParam(w, r, "type", &itemType) {
		return
	}

	f := s.itemFilter(from, to)
	f.Type = domain.ItemType(deref(itemType))

	items, err := s.itinerary.List(r.Context(), uid, tripID, f)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, itemsToResponse(items))
}

// GetItem handles GET /trips/{tripId}/items/{itemId}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	uid, tripID, id, ok := itemPath(w, r)
	if !ok {
		return
	}

	item, err := s.itinerary.GetByID(r.Context(), uid, tripID, id)
	if err != nil {
		s.fail(w, r, err, "item")
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(item))
}

// UpdateItem handles PUT /trips/{tripId}/items/{itemId}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	uid, tripID, id, ok := itemPath(w, r)
	if !ok {
		return
	}
	var body ItemRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	updated, err := s.itinerary.Update(r.Context(), uid, requestToItem(tripID, id, body))
	if err != nil {
		s.fail(w, r, err, "item")
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(updated))
}

// DeleteItem handles DELETE /trips/{tripId}/items/{itemId}.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	uid, tripID, id, ok := itemPath(w, r)
	if !ok {
		return
	}

	if err := s.itinerary.Delete(r.Context(), uid, tripID, id); err != nil {
		s.fail(w, r, err, "item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveItem handles POST /trips/{tripId}/items/{itemId}/move.
// The body names the target day: {"date":"2025-06-03"}.
func (s *Server) MoveItem(w http.ResponseWriter, r *http.Request) {
	uid, tripID, id, ok := itemPath(w, r)
	if !ok {
		return
	}
	var body MoveRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Date == nil {
		badRequest(w, "date is required")
		return
	}

	moved, err := s.itinerary.Move(r.Context(), uid, tripID, id, civil.DateOf(body.Date.Time))
	if err != nil {
		s.fail(w, r, err, "item")
		return
	}
	writeJSON(w, http.StatusOK, itemToResponse(moved))
}

func itemPath(w http.ResponseWriter, r *http.Request) (uid, tripID, id uuid.UUID, ok bool) {
	if uid, ok = userID(w, r); !ok {
		return
	}
	if tripID, ok = pathUUID(w, r, "tripId"); !ok {
		return
	}
	id, ok = pathUUID(w, r, "itemId")
	return
}

// itemFilter turns inclusive local dates into start-time bounds.
func (s *Server) itemFilter(from, to *civil.Date) domain.ItemFilter {
	var f domain.ItemFilter
	if from != nil {
		start := from.In(s.loc)
		f.From = &start
	}
	if to != nil {
		end := to.AddDays(1).In(s.loc).Add(-time.Nanosecond)
		f.To = &end
	}
	return f
}

// --- mapping helpers --------------------------------------------------------

func requestToItem(tripID, id uuid.UUID, body ItemRequest) domain.ItineraryItem {
	return domain.ItineraryItem{
		ID:        id,
		TripID:    tripID,
		SubtripID: body.SubtripID,
		Type:      domain.ItemType(body.Type),
		Title:     body.Title,
		Location:  deref(body.Location),
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Notes:     deref(body.Notes),
		Cost:      body.Cost,
		Currency:  deref(body.Currency),
	}
}

func itemToResponse(it domain.ItineraryItem) Item {
	return Item{
		ID:        it.ID,
		TripID:    it.TripID,
		SubtripID: it.SubtripID,
		Type:      string(it.Type),
		Title:     it.Title,
		Location:  optional(it.Location),
		StartTime: it.StartTime,
		EndTime:   it.EndTime,
		Notes:     optional(it.Notes),
		Cost:      it.Cost,
		Currency:  optional(it.Currency),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// itemsToResponse always returns a non-nil slice so the JSON is [] not null.
func itemsToResponse(items []domain.ItineraryItem) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = itemToResponse(it)
	}
	return out
}
