package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// ExportService assembles a flat export of every trip and itinerary item of a user.
type ExportService struct {
	trips    repo.TripRepo
	subtrips repo.SubtripRepo
	items    repo.ItineraryRepo
	resolver SpanResolver
	loc      *time.Location
	log      *slog.Logger
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, subtrips repo.SubtripRepo, items repo.ItineraryRepo, resolver SpanResolver, loc *time.Location, log *slog.Logger) *ExportService {
	return &ExportService{trips: trips, subtrips: subtrips, items: items, resolver: resolver, loc: loc, log: log}
}

// Export returns one ExportRow per itinerary item across all of the user's
// trips, in trip order then item order. Trips with no items contribute one
// row with empty item fields. Each item's DayLocation is the location that
// owns its calendar day within its own trip.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
	trips, err := s.trips.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if len(trips) == 0 {
		return []domain.ExportRow{}, nil
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
		items, err = s.items.ListByTripIDs(gctx, ids, domain.ItemFilter{})
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	subsByTrip := make(map[uuid.UUID][]domain.Subtrip)
	for _, sub := range subtrips {
		subsByTrip[sub.TripID] = append(subsByTrip[sub.TripID], sub)
	}
	itemsByTrip := make(map[uuid.UUID][]domain.ItineraryItem)
	for _, it := range items {
		itemsByTrip[it.TripID] = append(itemsByTrip[it.TripID], it)
	}

	rows := make([]domain.ExportRow, 0, len(items)+len(trips))
	for _, trip := range trips {
		base := domain.ExportRow{
			TripID:          trip.ID.String(),
			TripTitle:       trip.Title,
			TripDestination: trip.Destination,
			TripStartDate:   trip.StartDate.Format(calendar.DateLayout),
			TripEndDate:     trip.EndDate.Format(calendar.DateLayout),
		}

		tripItems := itemsByTrip[trip.ID]
		if len(tripItems) == 0 {
			rows = append(rows, base)
			continue
		}

		res := s.resolver.Resolve(tripSpans(trip), subtripSpans(subsByTrip[trip.ID]))
		for _, it := range tripItems {
			row := base
			row.ItemType = string(it.Type)
			row.ItemTitle = it.Title
			row.ItemLocation = it.Location
			start := it.StartTime
			row.StartTime = &start
			row.EndTime = it.EndTime
			row.Cost = it.Cost
			row.Currency = it.Currency
			row.Notes = it.Notes
			if loc, ok := res.DayLocation(calendar.DateOf(it.StartTime.In(s.loc))); ok {
				row.DayLocation = loc.Location
			}
			rows = append(rows, row)
		}
	}

	s.log.DebugContext(ctx, "export built", "user_id", userID, "trips", len(trips), "rows", len(rows))
	return rows, nil
}
