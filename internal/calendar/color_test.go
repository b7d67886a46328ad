package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
)

func TestColorFor_TripWithoutColor_IsNeutralGrey(t *testing.T) {
	res := calendar.Resolve([]calendar.Span{parisTrip()}, nil)

	assert.Equal(t, "#374151", res.ColorFor("Paris", true, "t1"))
	// A trip not in the resolution falls back the same way.
	assert.Equal(t, "#374151", res.ColorFor("Berlin", true, "unknown"))
}

func TestColorFor_TripWithExplicitColor(t *testing.T) {
	trip := parisTrip()
	trip.Color = "#123456"

	res := calendar.Resolve([]calendar.Span{trip}, nil)

	assert.Equal(t, "#123456", res.ColorFor("Paris", true, "t1"))
	got, ok := res.DayLocation(day(t, "2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, "#123456", got.Color)
}

func TestColorFor_SameNameDifferentOwners_DifferentColors(t *testing.T) {
	a := calendar.Span{OwnerID: "s-lake-1", Location: "Lake House", Start: "2025-06-01", End: "2025-06-02"}
	b := calendar.Span{OwnerID: "s-lake-2", Location: "Lake House", Start: "2025-07-01", End: "2025-07-02"}

	res := calendar.Resolve(nil, []calendar.Span{a, b})

	ca := res.ColorFor("Lake House", false, "s-lake-1")
	cb := res.ColorFor("Lake House", false, "s-lake-2")
	assert.NotEqual(t, ca, cb)
	assert.Equal(t, calendar.Palette[3], ca)
	assert.Equal(t, calendar.Palette[4], cb)
}

func TestColorFor_Deterministic(t *testing.T) {
	subs := []calendar.Span{
		{OwnerID: "s1", Location: "Rome", Start: "2025-06-01", End: "2025-06-05"},
		{OwnerID: "s2", Location: "Naples", Start: "2025-06-04", End: "2025-06-06"},
	}

	first := calendar.Resolve(nil, subs)
	second := calendar.Resolve(nil, subs)

	assert.Equal(t, first.ColorFor("Rome", false, "s1"), first.ColorFor("Rome", false, "s1"))
	assert.Equal(t, first.ColorFor("Rome", false, "s1"), second.ColorFor("Rome", false, "s1"))
	assert.Equal(t, first.ColorFor("Naples", false, "s2"), second.ColorFor("Naples", false, "s2"))
	assert.Equal(t, calendar.Palette[14], first.ColorFor("Rome", false, "s1"))
	assert.Equal(t, calendar.Palette[7], first.ColorFor("Naples", false, "s2"))
}

func TestColorFor_ExplicitColorAlwaysWins(t *testing.T) {
	// "Rome-subtrip-s1" hashes to Palette[14]; an explicit colour that is
	// also a palette entry must still be returned verbatim.
	sub := calendar.Span{OwnerID: "s1", Location: "Rome", Start: "2025-06-01", End: "2025-06-05", Color: calendar.Palette[0]}

	res := calendar.Resolve(nil, []calendar.Span{sub})

	assert.Equal(t, calendar.Palette[0], res.ColorFor("Rome", false, "s1"))
}

func TestColorFor_NameCacheSharesExplicitColor(t *testing.T) {
	subs := []calendar.Span{
		versailles(),
		{OwnerID: "s2", Location: "Versailles", Start: "2025-06-07", End: "2025-06-07"},
	}
	trip := calendar.Span{OwnerID: "t9", Location: "Versailles", Start: "2025-08-01", End: "2025-08-02"}

	res := calendar.Resolve([]calendar.Span{trip}, subs)

	assert.Equal(t, "#AA00AA", res.ColorFor("Versailles", false, "s2"), "uncoloured subtrip borrows the name's colour")
	assert.Equal(t, "#374151", res.ColorFor("Versailles", true, "t9"), "trips keep the neutral colour")
}

func TestColorFor_FirstDeclaredNameColorWins(t *testing.T) {
	subs := []calendar.Span{
		{OwnerID: "s1", Location: "Kyoto", Start: "2025-06-01", End: "2025-06-01", Color: "#111111"},
		{OwnerID: "s2", Location: "Kyoto", Start: "2025-06-02", End: "2025-06-02", Color: "#222222"},
		{OwnerID: "s3", Location: "Kyoto", Start: "2025-06-03", End: "2025-06-03"},
	}

	a := calendar.NewColorAssigner(nil, subs)

	assert.Equal(t, "#111111", a.ColorFor("Kyoto", false, "s1"))
	assert.Equal(t, "#222222", a.ColorFor("Kyoto", false, "s2"))
	assert.Equal(t, "#111111", a.ColorFor("Kyoto", false, "s3"))
}

func TestColorFor_UncoloredSubtrip_UsesPalette(t *testing.T) {
	a := calendar.NewColorAssigner(nil, nil)

	got := a.ColorFor("Kyoto", false, "sub-1")

	assert.Contains(t, calendar.Palette[:], got)
	assert.Equal(t, calendar.Palette[11], got)
	assert.Equal(t, calendar.Palette[12], a.ColorFor("Kyoto", false, "sub-2"))
}

func TestColorFor_SharedOwnerID_KeepsEachExplicitColor(t *testing.T) {
	subs := []calendar.Span{
		{OwnerID: "", Location: "Rome", Start: "2025-06-01", End: "2025-06-02", Color: "#111111"},
		{OwnerID: "", Location: "Naples", Start: "2025-06-03", End: "2025-06-04", Color: "#222222"},
	}

	res := calendar.Resolve(nil, subs)

	assert.Equal(t, "#111111", res.ColorFor("Rome", false, ""))
	assert.Equal(t, "#222222", res.ColorFor("Naples", false, ""))
	got, ok := res.DayLocation(day(t, "2025-06-01"))
	require.True(t, ok)
	assert.Equal(t, "Rome", got.Location)
	assert.Equal(t, "#111111", got.Color)
}
