package handler

import (
	"fmt"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// GetTripCalendar handles GET /trips/{tripId}/calendar.
// ?from= and ?to= narrow the view; by default it covers the whole trip.
func (s *Server) GetTripCalendar(w http.ResponseWriter, r *http.Request) {
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

	view, err := s.calendar.TripView(r.Context(), uid, tripID, from, to)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// GetTripICS handles GET /trips/{tripId}/calendar.ics.
func (s *Server) GetTripICS(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}

	trip, doc, err := s.calendar.ICS(r.Context(), uid, tripID)
	if err != nil {
		s.fail(w, r, err, "trip")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.ics"`, trip.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// GetCalendar handles GET /calendar.
// Both ?from= and ?to= are required.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
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
	if from == nil || to == nil {
		badRequest(w, "from and to are required")
		return
	}

	view, err := s.calendar.Overview(r.Context(), uid, *from, *to)
	if err != nil {
		s.fail(w, r, err, "calendar")
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// PreviewCalendar handles POST /calendar/preview.
// Nothing is stored; spans with unusable dates come back in skipped.
func (s *Server) PreviewCalendar(w http.ResponseWriter, r *http.Request) {
	if _, ok := userID(w, r); !ok {
		return
	}
	var body PreviewRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	view, err := s.calendar.Preview(previewSpans(body.Trips), previewSpans(body.Subtrips))
	if err != nil {
		s.fail(w, r, err, "calendar")
		return
	}
	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// --- mapping helpers --------------------------------------------------------

func previewSpans(in []PreviewSpan) []calendar.Span {
	out := make([]calendar.Span, len(in))
	for i, p := range in {
		out[i] = calendar.Span{
			OwnerID:  p.ID,
			Location: p.Location,
			Start:    p.StartDate,
			End:      p.EndDate,
			Color:    p.Color,
		}
	}
	return out
}

// viewToResponse converts a view into its JSON shape. Every slice is
// non-nil so clients always see arrays.
func viewToResponse(v domain.CalendarView) CalendarView {
	out := CalendarView{
		Days:    make([]CalendarDay, len(v.Days)),
		Legend:  make([]LegendEntry, len(v.Legend)),
		Skipped: make([]SkippedEntity, len(v.Skipped)),
	}
	for i, d := range v.Days {
		day := CalendarDay{
			Date:  openapi_types.Date{Time: d.Date},
			Items: itemsToResponse(d.Items),
		}
		if d.Location != nil {
			day.Location = &DayLocation{
				Location: d.Location.Location,
				IsTrip:   d.Location.IsTrip,
				OwnerID:  d.Location.OwnerID,
				Color:    d.Location.Color,
			}
		}
		out.Days[i] = day
	}
	for i, e := range v.Legend {
		out.Legend[i] = LegendEntry{Location: e.Location, Color: e.Color, IsTrip: e.IsTrip, OwnerID: e.OwnerID}
	}
	for i, sk := range v.Skipped {
		out.Skipped[i] = SkippedEntity{OwnerID: sk.OwnerID, IsTrip: sk.IsTrip, Reason: sk.Reason}
	}
	return out
}
