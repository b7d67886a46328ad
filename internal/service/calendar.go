package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// SpanResolver resolves trips and subtrips into a day map.
// *calendar.Resolver is the production implementation.
type SpanResolver interface {
	Resolve(trips, subtrips []calendar.Span) *calendar.Resolution
}

// CalendarService builds per-day calendar views from stored trips or from
// unsaved input.
type CalendarService struct {
	trips    repo.TripRepo
	subtrips repo.SubtripRepo
	items    repo.ItineraryRepo
	resolver SpanResolver
	loc      *time.Location
	now      func() time.Time
}

// NewCalendarService constructs a CalendarService. Item timestamps are
// bucketed into the calendar days of loc.
func NewCalendarService(trips repo.TripRepo, subtrips repo.SubtripRepo, items repo.ItineraryRepo, resolver SpanResolver, loc *time.Location) *CalendarService {
	return &CalendarService{
		trips:    trips,
		subtrips: subtrips,
		items:    items,
		resolver: resolver,
		loc:      loc,
		now:      time.Now,
	}
}

// tripData is one trip with everything hanging off it.
type tripData struct {
	trip     domain.Trip
	subtrips []domain.Subtrip
	items    []domain.ItineraryItem
	res      *calendar.Resolution
}

// TripView returns the calendar of one trip. Without from/to the view covers
// the trip's dates, widened to any subtrip lying outside them.
func (s *CalendarService) TripView(ctx context.Context, userID, tripID uuid.UUID, from, to *civil.Date) (domain.CalendarView, error) {
	data, err := s.loadTrip(ctx, userID, tripID)
	if err != nil {
		return domain.CalendarView{}, fmt.Errorf("service.CalendarService.TripView: %w", err)
	}

	first, last := calendar.DateOf(data.trip.StartDate), calendar.DateOf(data.trip.EndDate)
	if bfirst, blast, ok := data.res.Bounds(); ok {
		if bfirst.Before(first) {
			first = bfirst
		}
		if blast.After(last) {
			last = blast
		}
	}
	if from != nil {
		first = *from
	}
	if to != nil {
		last = *to
	}
	if err := checkRange(first, last); err != nil {
		return domain.CalendarView{}, err
	}

	return s.buildView(data.res, first, last, data.items), nil
}

// Overview returns one calendar across every trip of the user that overlaps
// [from, to]. All trips are applied before any subtrip, so a subtrip of one
// trip also beats an overlapping second trip.
func (s *CalendarService) Overview(ctx context.Context, userID uuid.UUID, from, to civil.Date) (domain.CalendarView, error) {
	if err := checkRange(from, to); err != nil {
		return domain.CalendarView{}, err
	}

	trips, err := s.trips.ListOverlapping(ctx, userID, calendar.Midnight(from), calendar.Midnight(to))
	if err != nil {
		return domain.CalendarView{}, fmt.Errorf("service.CalendarService.Overview: %w", err)
	}
	ids := make([]uuid.UUID, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}

	var (
		subtrips []domain.Subtrip
		items    []domain.ItineraryItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subtrips, err = s.subtrips.ListByTripIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("list subtrips: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.items.ListByTripIDs(gctx, ids, s.dayFilter(from, to))
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.CalendarView{}, fmt.Errorf("service.CalendarService.Overview: %w", err)
	}

	res := s.resolver.Resolve(tripSpans(trips...), subtripSpans(subtrips))
	return s.buildView(res, from, to, items), nil
}

// Preview resolves trips and subtrips that were never stored. Every span
// needs a non-empty id, unique among spans of its kind. The view spans every
// day from the first covered day to the last; when that range is longer than
// calendar.MaxSpanDays only the covered days are listed. Spans with unusable
// dates are reported in Skipped instead of failing the request.
func (s *CalendarService) Preview(trips, subtrips []calendar.Span) (domain.CalendarView, error) {
	if err := checkOwnerIDs(trips, "trip"); err != nil {
		return domain.CalendarView{}, err
	}
	if err := checkOwnerIDs(subtrips, "subtrip"); err != nil {
		return domain.CalendarView{}, err
	}

	res := s.resolver.Resolve(trips, subtrips)

	first, last, ok := res.Bounds()
	if !ok {
		return s.viewOf(res, []civil.Date{}, nil), nil
	}
	if checkRange(first, last) != nil {
		return s.viewOf(res, res.Days(), nil), nil
	}
	return s.buildView(res, first, last, nil), nil
}

func checkOwnerIDs(spans []calendar.Span, kind string) error {
	seen := make(map[string]bool, len(spans))
	for i, sp := range spans {
		if sp.OwnerID == "" {
			return fmt.Errorf("%w: %s %d: id is required", domain.ErrValidation, kind, i)
		}
		if seen[sp.OwnerID] {
			return fmt.Errorf("%w: %s id %q is used more than once", domain.ErrValidation, kind, sp.OwnerID)
		}
		seen[sp.OwnerID] = true
	}
	return nil
}

// ICS renders a trip as an iCalendar document and returns it with the trip.
func (s *CalendarService) ICS(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, string, error) {
	data, err := s.loadTrip(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, "", fmt.Errorf("service.CalendarService.ICS: %w", err)
	}
	return data.trip, calendar.EncodeICS(data.trip.Title, data.res, data.items, s.now().UTC()), nil
}

// loadTrip checks ownership, then loads subtrips and items concurrently.
func (s *CalendarService) loadTrip(ctx context.Context, userID, tripID uuid.UUID) (tripData, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return tripData{}, err
	}
	data := tripData{trip: trip}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.subtrips, err = s.subtrips.ListByTripID(gctx, tripID)
		if err != nil {
			return fmt.Errorf("list subtrips: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.items, err = s.items.ListByTripID(gctx, tripID, domain.ItemFilter{})
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return tripData{}, err
	}

	data.res = s.resolver.Resolve(tripSpans(trip), subtripSpans(data.subtrips))
	return data, nil
}

// dayFilter selects items starting on any local day from from to to.
func (s *CalendarService) dayFilter(from, to civil.Date) domain.ItemFilter {
	start := from.In(s.loc)
	end := to.AddDays(1).In(s.loc).Add(-time.Nanosecond)
	return domain.ItemFilter{From: &start, To: &end}
}

func (s *CalendarService) buildView(res *calendar.Resolution, first, last civil.Date, items []domain.ItineraryItem) domain.CalendarView {
	dates := make([]civil.Date, 0, last.DaysSince(first)+1)
	calendar.EachDay(first, last, func(d civil.Date) {
		dates = append(dates, d)
	})
	return s.viewOf(res, dates, items)
}

// viewOf lists dates in the given order, each with its location and the
// items starting on it in the service's zone.
func (s *CalendarService) viewOf(res *calendar.Resolution, dates []civil.Date, items []domain.ItineraryItem) domain.CalendarView {
	byDay := make(map[civil.Date][]domain.ItineraryItem)
	for _, it := range items {
		d := calendar.DateOf(it.StartTime.In(s.loc))
		byDay[d] = append(byDay[d], it)
	}

	days := make([]domain.CalendarDay, 0, len(dates))
	for _, d := range dates {
		day := domain.CalendarDay{Date: calendar.Midnight(d), Items: byDay[d]}
		if day.Items == nil {
			day.Items = []domain.ItineraryItem{}
		}
		if loc, ok := res.DayLocation(d); ok {
			day.Location = &loc
		}
		days = append(days, day)
	}

	return domain.CalendarView{Days: days, Legend: legendOf(res), Skipped: skippedOf(res)}
}

func checkRange(first, last civil.Date) error {
	if last.Before(first) {
		return fmt.Errorf("%w: to must not be before from", domain.ErrValidation)
	}
	if last.DaysSince(first) >= calendar.MaxSpanDays {
		return fmt.Errorf("%w: calendar range exceeds %d days", domain.ErrValidation, calendar.MaxSpanDays)
	}
	return nil
}

func legendOf(res *calendar.Resolution) []domain.LegendEntry {
	legend := res.LegendEntries()
	if legend == nil {
		return []domain.LegendEntry{}
	}
	return legend
}

func skippedOf(res *calendar.Resolution) []domain.SkippedEntity {
	out := []domain.SkippedEntity{}
	for _, v := range res.Skipped() {
		out = append(out, domain.SkippedEntity{
			OwnerID: v.OwnerID,
			IsTrip:  v.IsTrip,
			Reason:  fmt.Sprintf("%s %q: %v", v.Field, v.Value, v.Err),
		})
	}
	return out
}

func tripSpans(trips ...domain.Trip) []calendar.Span {
	out := make([]calendar.Span, len(trips))
	for i, t := range trips {
		out[i] = calendar.TripSpan(t)
	}
	return out
}

func subtripSpans(subs []domain.Subtrip) []calendar.Span {
	out := make([]calendar.Span, len(subs))
	for i, s := range subs {
		out[i] = calendar.SubtripSpan(s)
	}
	return out
}
