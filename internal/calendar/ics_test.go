package calendar_test

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

func TestEncodeICS_OneEventPerRunPlusItems(t *testing.T) {
	res := calendar.Resolve([]calendar.Span{parisTrip()}, []calendar.Span{versailles()})
	start := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	items := []domain.ItineraryItem{
		{ID: uuid.New(), Type: domain.ItemLandmark, Title: "Hall of Mirrors", StartTime: start, EndTime: &end, Location: "Château"},
		{ID: uuid.New(), Type: domain.ItemMeal, Title: "Dinner", StartTime: start.Add(10 * time.Hour)},
	}

	out := calendar.EncodeICS("Summer in France", res, items, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	// Paris 06-01..02, Versailles 06-03..04, Paris 06-05..10, then two items.
	assert.Len(t, cal.Events(), 5)
	assert.Contains(t, out, "SUMMARY:Versailles")
	assert.Contains(t, out, "COLOR:#AA00AA")
	assert.Contains(t, out, "COLOR:#374151")
	assert.Contains(t, out, "SUMMARY:landmark: Hall of Mirrors")
	// The trailing Paris run covers 06-05..10, so its exclusive end is 06-11.
	assert.Contains(t, out, "DTEND;VALUE=DATE:20250611")
}

func TestEncodeICS_EmptyResolution(t *testing.T) {
	out := calendar.EncodeICS("Nothing", calendar.Resolve(nil, nil), nil, time.Now())

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, cal.Events())
}
