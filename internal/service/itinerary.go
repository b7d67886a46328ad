package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

var currencyCode = regexp.MustCompile(`^[A-Z]{3}$`)

// moveHour is the local time of day an item lands on when it is dragged to
// another day.
const moveHour = 12

// ItineraryService implements business logic for itinerary items.
type ItineraryService struct {
	trips    repo.TripRepo
	subtrips repo.SubtripRepo
	items    repo.ItineraryRepo
	loc      *time.Location
}

// NewItineraryService constructs an ItineraryService. loc is the zone whose
// calendar days items are moved between.
func NewItineraryService(trips repo.TripRepo, subtrips repo.SubtripRepo, items repo.ItineraryRepo, loc *time.Location) *ItineraryService {
	return &ItineraryService{trips: trips, subtrips: subtrips, items: items, loc: loc}
}

// Create validates the item and persists it on one of the user's trips.
// A non-nil SubtripID must name a subtrip of the same trip.
func (s *ItineraryService) Create(ctx context.Context, userID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if _, err := s.trips.GetByID(ctx, userID, item.TripID); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	item = normalizeItem(item)
	if err := s.validate(ctx, item); err != nil {
		return domain.ItineraryItem{}, err
	}
	result, err := s.items.Create(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns one item of one of the user's trips.
func (s *ItineraryService) GetByID(ctx context.Context, userID, tripID, id uuid.UUID) (domain.ItineraryItem, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	result, err := s.items.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the trip's items matching f ordered by start time.
// Always returns a non-nil slice.
func (s *ItineraryService) List(ctx context.Context, userID, tripID uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error) {
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown item type %q", domain.ErrValidation, f.Type)
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, fmt.Errorf("%w: to must not be before from", domain.ErrValidation)
	}
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	items, err := s.items.ListByTripID(ctx, tripID, f)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	if items == nil {
		return []domain.ItineraryItem{}, nil
	}
	return items, nil
}

// Update validates and replaces an existing item.
func (s *ItineraryService) Update(ctx context.Context, userID uuid.UUID, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	if _, err := s.trips.GetByID(ctx, userID, item.TripID); err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	item = normalizeItem(item)
	if err := s.validate(ctx, item); err != nil {
		return domain.ItineraryItem{}, err
	}
	result, err := s.items.Update(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an item.
func (s *ItineraryService) Delete(ctx context.Context, userID, tripID, id uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	if err := s.items.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// Move reassigns an item to day. When the item already starts on day in the
// service's zone it is returned unchanged. Otherwise it starts at noon local
// time on day and its end, if any, moves by the same amount.
func (s *ItineraryService) Move(ctx context.Context, userID, tripID, id uuid.UUID, day civil.Date) (domain.ItineraryItem, error) {
	if !day.IsValid() {
		return domain.ItineraryItem{}, fmt.Errorf("%w: date is not a valid calendar date", domain.ErrValidation)
	}
	item, err := s.GetByID(ctx, userID, tripID, id)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Move: %w", err)
	}

	if calendar.DateOf(item.StartTime.In(s.loc)) == day {
		return item, nil
	}

	start := time.Date(day.Year, day.Month, day.Day, moveHour, 0, 0, 0, s.loc)
	if item.EndTime != nil {
		end := item.EndTime.Add(start.Sub(item.StartTime))
		item.EndTime = &end
	}
	item.StartTime = start

	result, err := s.items.Update(ctx, item)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("service.ItineraryService.Move: %w", err)
	}
	return result, nil
}

func normalizeItem(it domain.ItineraryItem) domain.ItineraryItem {
	it.Title = strings.TrimSpace(it.Title)
	it.Location = strings.TrimSpace(it.Location)
	it.Currency = strings.ToUpper(strings.TrimSpace(it.Currency))
	return it
}

func (s *ItineraryService) validate(ctx context.Context, it domain.ItineraryItem) error {
	if !it.Type.Valid() {
		return fmt.Errorf("%w: unknown item type %q", domain.ErrValidation, it.Type)
	}
	if it.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if it.StartTime.IsZero() {
		return fmt.Errorf("%w: start_time is required", domain.ErrValidation)
	}
	if it.EndTime != nil && it.EndTime.Before(it.StartTime) {
		return fmt.Errorf("%w: end_time must not be before start_time", domain.ErrValidation)
	}
	if it.Cost != nil && *it.Cost < 0 {
		return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
	}
	if it.Currency != "" && !currencyCode.MatchString(it.Currency) {
		return fmt.Errorf("%w: currency must be a three-letter ISO 4217 code", domain.ErrValidation)
	}
	if it.SubtripID != nil {
		_, err := s.subtrips.GetByID(ctx, it.TripID, *it.SubtripID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: subtrip_id does not belong to this trip", domain.ErrValidation)
		}
		if err != nil {
			return fmt.Errorf("service.ItineraryService.validate: %w", err)
		}
	}
	return nil
}
