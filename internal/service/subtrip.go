package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

// SubtripService implements business logic for Subtrip operations.
// Every call first checks that the parent trip belongs to the user.
type SubtripService struct {
	trips    repo.TripRepo
	subtrips repo.SubtripRepo
}

// NewSubtripService constructs a SubtripService backed by the provided repos.
func NewSubtripService(trips repo.TripRepo, subtrips repo.SubtripRepo) *SubtripService {
	return &SubtripService{trips: trips, subtrips: subtrips}
}

// Create validates the subtrip, verifies the parent trip, then persists.
// The subtrip's dates may lie outside the trip's range.
func (s *SubtripService) Create(ctx context.Context, userID uuid.UUID, sub domain.Subtrip) (domain.Subtrip, error) {
	if _, err := s.trips.GetByID(ctx, userID, sub.TripID); err != nil {
		return domain.Subtrip{}, fmt.Errorf("service.SubtripService.Create: %w", err)
	}
	sub = normalizeSubtrip(sub)
	if err := validateSubtrip(sub); err != nil {
		return domain.Subtrip{}, err
	}
	result, err := s.subtrips.Create(ctx, sub)
	if err != nil {
		return domain.Subtrip{}, fmt.Errorf("service.SubtripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single subtrip of one of the user's trips.
func (s *SubtripService) GetByID(ctx context.Context, userID, tripID, id uuid.UUID) (domain.Subtrip, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.Subtrip{}, fmt.Errorf("service.SubtripService.GetByID: %w", err)
	}
	result, err := s.subtrips.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.Subtrip{}, fmt.Errorf("service.SubtripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns the trip's subtrips ordered by start date, then order index.
// Always returns a non-nil slice.
func (s *SubtripService) ListByTripID(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Subtrip, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.SubtripService.ListByTripID: %w", err)
	}
	subs, err := s.subtrips.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.SubtripService.ListByTripID: %w", err)
	}
	if subs == nil {
		return []domain.Subtrip{}, nil
	}
	return subs, nil
}

// Update validates and replaces an existing subtrip.
func (s *SubtripService) Update(ctx context.Context, userID uuid.UUID, sub domain.Subtrip) (domain.Subtrip, error) {
	if _, err := s.trips.GetByID(ctx, userID, sub.TripID); err != nil {
		return domain.Subtrip{}, fmt.Errorf("service.SubtripService.Update: %w", err)
	}
	sub = normalizeSubtrip(sub)
	if err := validateSubtrip(sub); err != nil {
		return domain.Subtrip{}, err
	}
	result, err := s.subtrips.Update(ctx, sub)
	if err != nil {
		return domain.Subtrip{}, fmt.Errorf("service.SubtripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a subtrip. Items that referenced it stay on the trip.
func (s *SubtripService) Delete(ctx context.Context, userID, tripID, id uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.SubtripService.Delete: %w", err)
	}
	if err := s.subtrips.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.SubtripService.Delete: %w", err)
	}
	return nil
}

func normalizeSubtrip(sub domain.Subtrip) domain.Subtrip {
	sub.Location = strings.TrimSpace(sub.Location)
	sub.Color = strings.ToUpper(strings.TrimSpace(sub.Color))
	sub.StartDate = dateOnly(sub.StartDate)
	sub.EndDate = dateOnly(sub.EndDate)
	return sub
}

func validateSubtrip(sub domain.Subtrip) error {
	if sub.Location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if sub.StartDate.IsZero() || sub.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if sub.EndDate.Before(sub.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if sub.OrderIndex < 0 {
		return fmt.Errorf("%w: order_index must not be negative", domain.ErrValidation)
	}
	return validateColor(sub.Color)
}
