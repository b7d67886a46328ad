package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-sql/civil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
type mockItineraryRepo struct {
	create        func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	getByID       func(ctx context.Context, tripID, id uuid.UUID) (domain.ItineraryItem, error)
	listByTripID  func(ctx context.Context, tripID uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error)
	listByTripIDs func(ctx context.Context, tripIDs []uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error)
	update        func(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error)
	delete        func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockItineraryRepo) Create(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.create(ctx, item)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.ItineraryItem, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockItineraryRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error) {
	return m.listByTripID(ctx, tripID, f)
}
func (m *mockItineraryRepo) ListByTripIDs(ctx context.Context, tripIDs []uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error) {
	return m.listByTripIDs(ctx, tripIDs, f)
}
func (m *mockItineraryRepo) Update(ctx context.Context, item domain.ItineraryItem) (domain.ItineraryItem, error) {
	return m.update(ctx, item)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

func validItem(tripID uuid.UUID) domain.ItineraryItem {
	return domain.ItineraryItem{
		ID:        uuid.New(),
		TripID:    tripID,
		Type:      domain.ItemMuseum,
		Title:     "Louvre",
		StartTime: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
	}
}

func echoItems() *mockItineraryRepo {
	return &mockItineraryRepo{
		create: func(_ context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) { return it, nil },
		update: func(_ context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) { return it, nil },
	}
}

func newItineraryService(trip domain.Trip, subs *mockSubtripRepo, items *mockItineraryRepo, loc *time.Location) *service.ItineraryService {
	return service.NewItineraryService(ownedBy(trip), subs, items, loc)
}

// ---- Create / Update -------------------------------------------------------

func TestItineraryService_Create_Valid(t *testing.T) {
	trip := validTrip()
	svc := newItineraryService(trip, &mockSubtripRepo{}, echoItems(), time.UTC)

	item := validItem(trip.ID)
	cost := 17.0
	item.Cost = &cost
	item.Currency = "eur"

	got, err := svc.Create(context.Background(), trip.UserID, item)

	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Currency)
}

func TestItineraryService_Create_Invalid(t *testing.T) {
	cases := map[string]func(*domain.ItineraryItem){
		"unknown type":   func(it *domain.ItineraryItem) { it.Type = "spa" },
		"blank title":    func(it *domain.ItineraryItem) { it.Title = " " },
		"missing start":  func(it *domain.ItineraryItem) { it.StartTime = time.Time{} },
		"negative cost":  func(it *domain.ItineraryItem) { c := -1.0; it.Cost = &c },
		"bad currency":   func(it *domain.ItineraryItem) { it.Currency = "EURO" },
		"digit currency": func(it *domain.ItineraryItem) { it.Currency = "E1R" },
		"end before start": func(it *domain.ItineraryItem) {
			end := it.StartTime.Add(-time.Minute)
			it.EndTime = &end
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			trip := validTrip()
			svc := newItineraryService(trip, &mockSubtripRepo{}, echoItems(), time.UTC)
			item := validItem(trip.ID)
			mutate(&item)

			_, err := svc.Create(context.Background(), trip.UserID, item)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestItineraryService_Create_SubtripOfAnotherTrip(t *testing.T) {
	trip := validTrip()
	subs := &mockSubtripRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Subtrip, error) {
			return domain.Subtrip{}, domain.ErrNotFound
		},
	}
	svc := newItineraryService(trip, subs, echoItems(), time.UTC)

	item := validItem(trip.ID)
	foreign := uuid.New()
	item.SubtripID = &foreign

	_, err := svc.Create(context.Background(), trip.UserID, item)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_Create_SubtripOfSameTrip(t *testing.T) {
	trip := validTrip()
	sub := validSubtrip(trip.ID)
	subs := &mockSubtripRepo{
		getByID: func(_ context.Context, tripID, id uuid.UUID) (domain.Subtrip, error) {
			require.Equal(t, trip.ID, tripID)
			require.Equal(t, sub.ID, id)
			return sub, nil
		},
	}
	svc := newItineraryService(trip, subs, echoItems(), time.UTC)

	item := validItem(trip.ID)
	item.SubtripID = &sub.ID

	_, err := svc.Create(context.Background(), trip.UserID, item)

	assert.NoError(t, err)
}

func TestItineraryService_Update_ForeignTrip(t *testing.T) {
	trip := validTrip()
	svc := newItineraryService(trip, &mockSubtripRepo{}, echoItems(), time.UTC)

	_, err := svc.Update(context.Background(), uuid.New(), validItem(trip.ID))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List ------------------------------------------------------------------

func TestItineraryService_List_PassesFilter(t *testing.T) {
	trip := validTrip()
	from := day(6, 2)
	items := &mockItineraryRepo{
		listByTripID: func(_ context.Context, tripID uuid.UUID, f domain.ItemFilter) ([]domain.ItineraryItem, error) {
			assert.Equal(t, trip.ID, tripID)
			assert.Equal(t, domain.ItemMeal, f.Type)
			assert.Equal(t, &from, f.From)
			return nil, nil
		},
	}
	svc := newItineraryService(trip, &mockSubtripRepo{}, items, time.UTC)

	got, err := svc.List(context.Background(), trip.UserID, trip.ID, domain.ItemFilter{From: &from, Type: domain.ItemMeal})

	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestItineraryService_List_InvalidFilter(t *testing.T) {
	trip := validTrip()
	svc := newItineraryService(trip, &mockSubtripRepo{}, &mockItineraryRepo{}, time.UTC)
	from, to := day(6, 5), day(6, 2)

	_, err := svc.List(context.Background(), trip.UserID, trip.ID, domain.ItemFilter{Type: "nap"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.List(context.Background(), trip.UserID, trip.ID, domain.ItemFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Move ------------------------------------------------------------------

func storedItems(item domain.ItineraryItem, updated *domain.ItineraryItem) *mockItineraryRepo {
	return &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.ItineraryItem, error) { return item, nil },
		update: func(_ context.Context, it domain.ItineraryItem) (domain.ItineraryItem, error) {
			*updated = it
			return it, nil
		},
	}
}

func TestItineraryService_Move_KeepsDuration(t *testing.T) {
	trip := validTrip()
	item := validItem(trip.ID)
	end := item.StartTime.Add(3 * time.Hour)
	item.EndTime = &end

	var updated domain.ItineraryItem
	svc := newItineraryService(trip, &mockSubtripRepo{}, storedItems(item, &updated), time.UTC)

	got, err := svc.Move(context.Background(), trip.UserID, trip.ID, item.ID, civil.Date{Year: 2025, Month: 6, Day: 5})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC), got.StartTime)
	require.NotNil(t, got.EndTime)
	assert.Equal(t, 3*time.Hour, got.EndTime.Sub(got.StartTime))
	assert.Equal(t, got, updated)
}

func TestItineraryService_Move_NoEndTime(t *testing.T) {
	trip := validTrip()
	item := validItem(trip.ID)

	var updated domain.ItineraryItem
	svc := newItineraryService(trip, &mockSubtripRepo{}, storedItems(item, &updated), time.UTC)

	got, err := svc.Move(context.Background(), trip.UserID, trip.ID, item.ID, civil.Date{Year: 2025, Month: 6, Day: 1})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), got.StartTime)
	assert.Nil(t, got.EndTime)
}

func TestItineraryService_Move_SameDayIsNoOp(t *testing.T) {
	trip := validTrip()
	item := validItem(trip.ID)
	items := &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.ItineraryItem, error) { return item, nil },
		update: func(context.Context, domain.ItineraryItem) (domain.ItineraryItem, error) {
			t.Fatal("update must not be called for a same-day move")
			return domain.ItineraryItem{}, nil
		},
	}
	svc := newItineraryService(trip, &mockSubtripRepo{}, items, time.UTC)

	got, err := svc.Move(context.Background(), trip.UserID, trip.ID, item.ID, civil.Date{Year: 2025, Month: 6, Day: 2})

	require.NoError(t, err)
	assert.Equal(t, item, got)
}

// TestItineraryService_Move_UsesCalendarZone covers an item whose UTC date
// differs from its date in the calendar zone.
func TestItineraryService_Move_UsesCalendarZone(t *testing.T) {
	trip := validTrip()
	item := validItem(trip.ID)
	item.StartTime = time.Date(2025, 6, 3, 2, 0, 0, 0, time.UTC) // 22:00 on 06-02 at UTC-4
	zone := time.FixedZone("UTC-4", -4*3600)

	items := &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.ItineraryItem, error) { return item, nil },
	}
	svc := newItineraryService(trip, &mockSubtripRepo{}, items, zone)

	got, err := svc.Move(context.Background(), trip.UserID, trip.ID, item.ID, civil.Date{Year: 2025, Month: 6, Day: 2})
	require.NoError(t, err)
	assert.Equal(t, item.StartTime, got.StartTime, "already on 06-02 locally")

	var updated domain.ItineraryItem
	svc = newItineraryService(trip, &mockSubtripRepo{}, storedItems(item, &updated), zone)

	got, err = svc.Move(context.Background(), trip.UserID, trip.ID, item.ID, civil.Date{Year: 2025, Month: 6, Day: 3})
	require.NoError(t, err)
	assert.True(t, got.StartTime.Equal(time.Date(2025, 6, 3, 16, 0, 0, 0, time.UTC)), "noon at UTC-4")
}

func TestItineraryService_Move_Errors(t *testing.T) {
	trip := validTrip()
	items := &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.ItineraryItem, error) {
			return domain.ItineraryItem{}, domain.ErrNotFound
		},
	}
	svc := newItineraryService(trip, &mockSubtripRepo{}, items, time.UTC)
	ctx := context.Background()

	_, err := svc.Move(ctx, trip.UserID, trip.ID, uuid.New(), civil.Date{Year: 2025, Month: 2, Day: 30})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Move(ctx, trip.UserID, trip.ID, uuid.New(), civil.Date{Year: 2025, Month: 6, Day: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Move(ctx, uuid.New(), trip.ID, uuid.New(), civil.Date{Year: 2025, Month: 6, Day: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Delete ----------------------------------------------------------------

func TestItineraryService_Delete(t *testing.T) {
	trip := validTrip()
	items := &mockItineraryRepo{
		delete: func(context.Context, uuid.UUID, uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := newItineraryService(trip, &mockSubtripRepo{}, items, time.UTC)

	err := svc.Delete(context.Background(), trip.UserID, trip.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
