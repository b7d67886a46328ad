package calendar_test

import (
	"errors"
	"testing"

	"github.com/golang-sql/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ---- helpers ---------------------------------------------------------------

func day(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func parisTrip() calendar.Span {
	return calendar.Span{OwnerID: "t1", Location: "Paris", Start: "2025-06-01", End: "2025-06-10"}
}

func versailles() calendar.Span {
	return calendar.Span{OwnerID: "s1", Location: "Versailles", Start: "2025-06-03", End: "2025-06-04", Color: "#AA00AA"}
}

// ---- scenarios -------------------------------------------------------------

// TestResolve_TripFallbackAndSubtripOverride covers the Paris/Versailles
// example: days outside the subtrip fall back to the trip in trip grey, days
// inside it belong to the subtrip in its own colour.
func TestResolve_TripFallbackAndSubtripOverride(t *testing.T) {
	res := calendar.Resolve([]calendar.Span{parisTrip()}, []calendar.Span{versailles()})

	got, ok := res.DayLocation(day(t, "2025-06-02"))
	require.True(t, ok)
	assert.Equal(t, domain.DayLocation{Location: "Paris", IsTrip: true, OwnerID: "t1", Color: "#374151"}, got)

	got, ok = res.DayLocation(day(t, "2025-06-03"))
	require.True(t, ok)
	assert.Equal(t, domain.DayLocation{Location: "Versailles", IsTrip: false, OwnerID: "s1", Color: "#AA00AA"}, got)

	got, ok = res.DayLocation(day(t, "2025-06-05"))
	require.True(t, ok)
	assert.Equal(t, "Paris", got.Location, "trip resumes after the subtrip ends")
}

func TestResolve_OverlappingSubtrips_LastInListWins(t *testing.T) {
	rome := calendar.Span{OwnerID: "s1", Location: "Rome", Start: "2025-06-01", End: "2025-06-05"}
	naples := calendar.Span{OwnerID: "s2", Location: "Naples", Start: "2025-06-04", End: "2025-06-06"}

	res := calendar.Resolve(nil, []calendar.Span{rome, naples})

	for _, d := range []string{"2025-06-04", "2025-06-05"} {
		got, ok := res.DayLocation(day(t, d))
		require.True(t, ok, d)
		assert.Equal(t, "Naples", got.Location, d)
		assert.Equal(t, "s2", got.OwnerID, d)
	}
	got, _ := res.DayLocation(day(t, "2025-06-03"))
	assert.Equal(t, "Rome", got.Location)

	// Reversing the input order reverses the winner.
	res = calendar.Resolve(nil, []calendar.Span{naples, rome})
	got, _ = res.DayLocation(day(t, "2025-06-04"))
	assert.Equal(t, "Rome", got.Location)
}

func TestResolve_InvertedRange_ContributesNothing(t *testing.T) {
	inverted := calendar.Span{OwnerID: "s1", Location: "Nowhere", Start: "2025-06-10", End: "2025-06-05"}

	res := calendar.Resolve(nil, []calendar.Span{inverted})

	assert.Equal(t, 0, res.Len())
	assert.Empty(t, res.Skipped(), "an inverted range is not a validation error")
	_, _, ok := res.Bounds()
	assert.False(t, ok)
	for _, d := range []string{"2025-06-05", "2025-06-07", "2025-06-10"} {
		_, ok := res.DayLocation(day(t, d))
		assert.False(t, ok, d)
	}
}

func TestResolve_InvertedTrip_ContributesNothing(t *testing.T) {
	trip := calendar.Span{OwnerID: "t1", Location: "Paris", Start: "2025-06-10", End: "2025-06-01"}

	res := calendar.Resolve([]calendar.Span{trip}, nil)

	assert.Equal(t, 0, res.Len())
}

func TestResolve_OneDayRange(t *testing.T) {
	trip := calendar.Span{OwnerID: "t1", Location: "Paris", Start: "2025-06-01", End: "2025-06-01"}

	res := calendar.Resolve([]calendar.Span{trip}, nil)

	assert.Equal(t, 1, res.Len())
	_, ok := res.DayLocation(day(t, "2025-06-01"))
	assert.True(t, ok)
}

func TestResolve_UncoveredDay_NotFound(t *testing.T) {
	res := calendar.Resolve([]calendar.Span{parisTrip()}, nil)

	_, ok := res.DayLocation(day(t, "2025-05-31"))
	assert.False(t, ok)
	_, ok = res.DayLocation(day(t, "2025-06-11"))
	assert.False(t, ok)
}

// ---- properties ------------------------------------------------------------

func TestResolve_EveryTripDayIsCovered(t *testing.T) {
	trips := []calendar.Span{
		parisTrip(),
		{OwnerID: "t2", Location: "Lisbon", Start: "2025-07-28", End: "2025-08-03"},
	}

	res := calendar.Resolve(trips, nil)

	assert.Equal(t, 10+7, res.Len())
	calendar.EachDay(day(t, "2025-07-28"), day(t, "2025-08-03"), func(d civil.Date) {
		got, ok := res.DayLocation(d)
		require.True(t, ok, d.String())
		assert.Equal(t, "t2", got.OwnerID, d.String())
	})
}

func TestResolve_SubtripAlwaysBeatsTrip(t *testing.T) {
	// The subtrip is listed in the collaborator's order before the trip is
	// even known; it must still win because trips are applied first.
	sub := calendar.Span{OwnerID: "s1", Location: "Giverny", Start: "2025-06-09", End: "2025-06-12"}

	res := calendar.Resolve([]calendar.Span{parisTrip()}, []calendar.Span{sub})

	calendar.EachDay(day(t, "2025-06-09"), day(t, "2025-06-10"), func(d civil.Date) {
		got, ok := res.DayLocation(d)
		require.True(t, ok)
		assert.Equal(t, "s1", got.OwnerID)
		assert.False(t, got.IsTrip)
	})
	// Subtrip days outside the trip are still the subtrip's.
	got, ok := res.DayLocation(day(t, "2025-06-12"))
	require.True(t, ok)
	assert.Equal(t, "Giverny", got.Location)
}

func TestResolve_DoesNotMutateInputs(t *testing.T) {
	trips := []calendar.Span{parisTrip()}
	subs := []calendar.Span{versailles(), {OwnerID: "s2", Location: "Bad", Start: "nope", End: "2025-06-01"}}
	tripsBefore := append([]calendar.Span(nil), trips...)
	subsBefore := append([]calendar.Span(nil), subs...)

	calendar.Resolve(trips, subs)

	assert.Equal(t, tripsBefore, trips)
	assert.Equal(t, subsBefore, subs)
}

func TestResolve_Bounds(t *testing.T) {
	sub := calendar.Span{OwnerID: "s1", Location: "Reims", Start: "2025-05-30", End: "2025-06-02"}

	res := calendar.Resolve([]calendar.Span{parisTrip()}, []calendar.Span{sub})

	first, last, ok := res.Bounds()
	require.True(t, ok)
	assert.Equal(t, day(t, "2025-05-30"), first)
	assert.Equal(t, day(t, "2025-06-10"), last)
}

func TestResolve_Days_AscendingCoveredOnly(t *testing.T) {
	trips := []calendar.Span{
		{OwnerID: "t2", Location: "Oslo", Start: "2030-01-01", End: "2030-01-02"},
		{OwnerID: "t1", Location: "Lima", Start: "2000-01-01", End: "2000-01-01"},
	}

	res := calendar.Resolve(trips, nil)

	assert.Equal(t, []civil.Date{
		day(t, "2000-01-01"), day(t, "2030-01-01"), day(t, "2030-01-02"),
	}, res.Days())
	assert.Empty(t, calendar.Resolve(nil, nil).Days())
}

// ---- invalid input ---------------------------------------------------------

func TestResolve_MalformedDates_SkippedAndReported(t *testing.T) {
	subs := []calendar.Span{
		{OwnerID: "bad-start", Location: "A", Start: "2025-13-01", End: "2025-06-02"},
		versailles(),
		{OwnerID: "bad-end", Location: "B", Start: "2025-06-01", End: "June 2nd"},
		{OwnerID: "empty", Location: "C", Start: "", End: ""},
	}
	trips := []calendar.Span{parisTrip(), {OwnerID: "bad-trip", Location: "D", Start: "2025-02-30", End: "2025-03-01"}}

	res := calendar.Resolve(trips, subs)

	skipped := res.Skipped()
	require.Len(t, skipped, 4)
	assert.Equal(t, "bad-trip", skipped[0].OwnerID)
	assert.True(t, skipped[0].IsTrip)
	assert.Equal(t, "bad-start", skipped[1].OwnerID)
	assert.Equal(t, "start_date", skipped[1].Field)
	assert.Equal(t, "bad-end", skipped[2].OwnerID)
	assert.Equal(t, "end_date", skipped[2].Field)
	assert.Equal(t, "empty", skipped[3].OwnerID)
	for _, s := range skipped {
		assert.True(t, errors.Is(s, domain.ErrValidation), s.Error())
	}

	// The valid entities still resolve.
	got, ok := res.DayLocation(day(t, "2025-06-03"))
	require.True(t, ok)
	assert.Equal(t, "Versailles", got.Location)
	got, ok = res.DayLocation(day(t, "2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, "Paris", got.Location)
}

func TestResolve_OverlongRange_Skipped(t *testing.T) {
	huge := calendar.Span{OwnerID: "t-huge", Location: "Everywhere", Start: "0001-01-01", End: "9999-12-31"}

	res := calendar.Resolve([]calendar.Span{huge}, nil)

	assert.Equal(t, 0, res.Len())
	require.Len(t, res.Skipped(), 1)
	assert.ErrorIs(t, res.Skipped()[0], calendar.ErrSpanTooLong)
	assert.ErrorIs(t, res.Skipped()[0], domain.ErrValidation)
}
