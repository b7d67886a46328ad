package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// CreateSubtrip handles POST /trips/{tripId}/subtrips.
func (s *Server) CreateSubtrip(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	var body SubtripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.subtrips.Create(r.Context(), uid, requestToSubtrip(tripID, uuid.Nil, body))
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, subtripToResponse(created))
}

// ListSubtrips handles GET /trips/{tripId}/subtrips.
// Subtrips come back ordered by start date, then order index.
func (s *Server) ListSubtrips(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}

	subs, err := s.subtrips.ListByTripID(r.Context(), uid, tripID)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	out := make([]Subtrip, len(subs))
	for i, sub := range subs {
		out[i] = subtripToResponse(sub)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetSubtrip handles GET /trips/{tripId}/subtrips/{subtripId}.
func (s *Server) GetSubtrip(w http.ResponseWriter, r *http.Request) {
	uid, tripID, id, ok := subtripPath(w, r)
	if !ok {
		return
	}

	sub, err := s.subtrips.GetByID(r.Context(), uid, tripID, id)
	if err != nil {
		s.fail(w, r, err, "subtrip")
		return
	}
	writeJSON(w, http.StatusOK, subtripToResponse(sub))
}

// UpdateSubtrip handles PUT /trips/{tripId}/subtrips/{subtripId}.
func (s *Server) UpdateSubtrip(w http.ResponseWriter, r *http.Request) {
	uid, tripID, id, ok := subtripPath(w, r)
	if !ok {
		return
	}
	var body SubtripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	updated, err := s.subtrips.Update(r.Context(), uid, requestToSubtrip(tripID, id, body))
	if err != nil {
		s.fail(w, r, err, "subtrip")
		return
	}
	writeJSON(w, http.StatusOK, subtripToResponse(updated))
}

// DeleteSubtrip handles DELETE /trips/{tripId}/subtrips/{subtripId}.
// Items linked to the subtrip stay on the trip with no subtrip.
func (s *Server) DeleteSubtrip(w http.ResponseWriter, r *http.Request) {
	uid, tripID, id, ok := subtripPath(w, r)
	if !ok {
		return
	}

	if err := s.subtrips.Delete(r.Context(), uid, tripID, id); err != nil {
		s.fail(w, r, err, "subtrip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func subtripPath(w http.ResponseWriter, r *http.Request) (uid, tripID, id uuid.UUID, ok bool) {
	if uid, ok = userID(w, r); !ok {
		return
	}
	if tripID, ok = pathUUID(w, r, "tripId"); !ok {
		return
	}
	id, ok = pathUUID(w, r, "subtripId")
	return
}

// --- mapping helpers --------------------------------------------------------

func requestToSubtrip(tripID, id uuid.UUID, body SubtripRequest) domain.Subtrip {
	sub := domain.Subtrip{
		ID:          id,
		TripID:      tripID,
		Location:    body.Location,
		StartDate:   body.StartDate.Time,
		EndDate:     body.EndDate.Time,
		Color:       deref(body.Color),
		Description: deref(body.Description),
	}
	if body.OrderIndex != nil {
		sub.OrderIndex = *body.OrderIndex
	}
	return sub
}

func subtripToResponse(sub domain.Subtrip) Subtrip {
	return Subtrip{
		ID:          sub.ID,
		TripID:      sub.TripID,
		Location:    sub.Location,
		StartDate:   openapi_types.Date{Time: sub.StartDate},
		EndDate:     openapi_types.Date{Time: sub.EndDate},
		Color:       optional(sub.Color),
		Description: optional(sub.Description),
		OrderIndex:  sub.OrderIndex,
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
}
