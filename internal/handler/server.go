// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, calendar.go, etc.) but share the Server struct
// so they can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-sql/civil"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// TripServicer defines the trip operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SubtripServicer defines the subtrip operations the handlers depend on.
type SubtripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, s domain.Subtrip) (domain.Subtrip, error)
	GetByID(ctx context.Context, userID, tripID, id uuid.UUID) (domain.Subtrip, error)
	ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Subtrip, error)
	Update(ctx context.Context, userID uuid.UUID, s domain.Subtrip) (domain.Subtrip, error)
	Delete(ctx context.Context, userID, tripID, id uuid.UUID) error
}

// ItineraryServicer defines the itinerary item operations the handlers depend on.
type ItineraryServicer interface {
	Create(ctx context.Context, userID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)
	GetByID(ctx context.Context, userID, tripID, id uuid.UUID) (domain.ItineraryItem, error)
	List(ctx context.Context, userID, tripID uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error)
	Update(ctx context.Context, userID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error)
	Delete(ctx context.Context, userID, tripID, id uuid.UUID) error
	Move(ctx context.Context, userID, tripID, id uuid.UUID, day civil.Date) (domain.ItineraryItem, error)
}

// CalendarServicer defines the calendar operations the handlers depend on.
type CalendarServicer interface {
	TripView(ctx context.Context, userID, tripID uuid.UUID, from, to *civil.Date) (domain.CalendarView, error)
	Overview(ctx context.Context, userID uuid.UUID, from, to civil.Date) (domain.CalendarView, error)
	Preview(trips, subtrips []calendar.Span) (domain.CalendarView, error)
	ICS(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, string, error)
}

// ExportServicer defines the export operation the handlers depend on.
type ExportServicer interface {
	Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error)
}

// Services bundles the dependencies of Server.
type Services struct {
	Trips     TripServicer
	Subtrips  SubtripServicer
	Itinerary ItineraryServicer
	Calendar  CalendarServicer
	Export    ExportServicer
}

// Server holds the dependencies shared by every handler.
type Server struct {
	log       *slog.Logger
	loc       *time.Location
	trips     TripServicer
	subtrips  SubtripServicer
	itinerary ItineraryServicer
	calendar  CalendarServicer
	export    ExportServicer
}

// NewServer constructs the Server with all its dependencies. loc is the
// zone that date-only query parameters are interpreted in.
func NewServer(log *slog.Logger, loc *time.Location, svc Services) *Server {
	return &Server{
		log:       log,
		loc:       loc,
		trips:     svc.Trips,
		subtrips:  svc.Subtrips,
		itinerary: svc.Itinerary,
		calendar:  svc.Calendar,
		export:    svc.Export,
	}
}

// Routes returns the API router. /healthz and /openapi.yaml are public;
// every other route runs behind requireAuth.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", s.CreateTrip)
			r.Get("/", s.ListTrips)

			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)

				r.Get("/calendar", s.GetTripCalendar)
				r.Get("/calendar.ics", s.GetTripICS)

				r.Route("/subtrips", func(r chi.Router) {
					r.Post("/", s.CreateSubtrip)
					r.Get("/", s.ListSubtrips)
					r.Get("/{subtripId}", s.GetSubtrip)
					r.Put("/{subtripId}", s.UpdateSubtrip)
					r.Delete("/{subtripId}", s.DeleteSubtrip)
				})

				r.Route("/items", func(r chi.Router) {
					r.Post("/", s.CreateItem)
					r.Get("/", s.ListItems)
					r.Get("/{itemId}", s.GetItem)
					r.Put("/{itemId}", s.UpdateItem)
					r.Delete("/{itemId}", s.DeleteItem)
					r.Post("/{itemId}/move", s.MoveItem)
				})
			})
		})

		r.Get("/calendar", s.GetCalendar)
		r.Post("/calendar/preview", s.PreviewCalendar)
		r.Get("/export", s.GetExport)
	})

	return r
}
