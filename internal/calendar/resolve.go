package calendar

import (
	"slices"

	"github.com/golang-sql/civil"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

type owner struct {
	location string
	isTrip   bool
	ownerID  string
}

// Resolution is the day→location map built from one set of trips and
// subtrips, together with its colours and legend. It is never modified after
// Resolve returns and may be shared between goroutines.
type Resolution struct {
	days    map[civil.Date]owner
	colors  *ColorAssigner
	legend  []domain.LegendEntry
	skipped []*ValidationError

	first, last civil.Date
}

type parsedSpan struct {
	Span
	start, end civil.Date
}

// Resolve builds the day map. Every trip covers its days with its
// destination; every subtrip, applied after all trips in input order,
// overwrites the days it covers. So subtrips beat trips, and of two
// overlapping subtrips the later one wins.
//
// Spans with unparseable dates are left out and reported by Skipped.
// Spans whose end precedes their start contribute no days. The inputs are
// not modified.
func Resolve(trips, subtrips []Span) *Resolution {
	r := &Resolution{days: make(map[civil.Date]owner)}

	validTrips := r.parseAll(trips, true)
	validSubtrips := r.parseAll(subtrips, false)

	for _, s := range validTrips {
		r.cover(s, true)
	}
	for _, s := range validSubtrips {
		r.cover(s, false)
	}

	r.colors = NewColorAssigner(spansOf(validTrips), spansOf(validSubtrips))
	r.legend = r.buildLegend(validTrips, validSubtrips)
	return r
}

func (r *Resolution) parseAll(spans []Span, isTrip bool) []parsedSpan {
	out := make([]parsedSpan, 0, len(spans))
	for _, s := range spans {
		start, end, err := parseSpan(s, isTrip)
		if err != nil {
			r.skipped = append(r.skipped, err)
			continue
		}
		out = append(out, parsedSpan{Span: s, start: start, end: end})
	}
	return out
}

func (r *Resolution) cover(s parsedSpan, isTrip bool) {
	o := owner{location: s.Location, isTrip: isTrip, ownerID: s.OwnerID}
	EachDay(s.start, s.end, func(d civil.Date) {
		if len(r.days) == 0 || d.Before(r.first) {
			r.first = d
		}
		if len(r.days) == 0 || d.After(r.last) {
			r.last = d
		}
		r.days[d] = o
	})
}

func (r *Resolution) buildLegend(trips, subtrips []parsedSpan) []domain.LegendEntry {
	seen := make(map[owner]bool)
	var legend []domain.LegendEntry
	add := func(spans []parsedSpan, isTrip bool) {
		for _, s := range spans {
			key := owner{location: s.Location, isTrip: isTrip}
			if seen[key] {
				continue
			}
			seen[key] = true
			legend = append(legend, domain.LegendEntry{
				Location: s.Location,
				Color:    r.colors.ColorFor(s.Location, isTrip, s.OwnerID),
				IsTrip:   isTrip,
				OwnerID:  s.OwnerID,
			})
		}
	}
	add(trips, true)
	add(subtrips, false)
	return legend
}

// DayLocation returns the location owning d and its colour.
// ok is false when no trip or subtrip covers d.
func (r *Resolution) DayLocation(d civil.Date) (loc domain.DayLocation, ok bool) {
	o, ok := r.days[d]
	if !ok {
		return domain.DayLocation{}, false
	}
	return domain.DayLocation{
		Location: o.location,
		IsTrip:   o.isTrip,
		OwnerID:  o.ownerID,
		Color:    r.colors.ColorFor(o.location, o.isTrip, o.ownerID),
	}, true
}

// ColorFor returns the display colour for a location; see ColorAssigner.
func (r *Resolution) ColorFor(location string, isTrip bool, ownerID string) string {
	return r.colors.ColorFor(location, isTrip, ownerID)
}

// LegendEntries returns one entry per distinct (isTrip, location) pair,
// trips first, each in input order. The returned slice is a copy.
func (r *Resolution) LegendEntries() []domain.LegendEntry {
	return append([]domain.LegendEntry(nil), r.legend...)
}

// Skipped returns the spans left out because their dates were invalid.
func (r *Resolution) Skipped() []*ValidationError {
	return append([]*ValidationError(nil), r.skipped...)
}

// Len returns the number of covered days.
func (r *Resolution) Len() int {
	return len(r.days)
}

// Days returns every covered day in ascending order.
func (r *Resolution) Days() []civil.Date {
	out := make([]civil.Date, 0, len(r.days))
	for d := range r.days {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b civil.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
	return out
}

// Bounds returns the first and last covered day. ok is false when the
// resolution covers no days at all.
func (r *Resolution) Bounds() (first, last civil.Date, ok bool) {
	if len(r.days) == 0 {
		return civil.Date{}, civil.Date{}, false
	}
	return r.first, r.last, true
}

func spansOf(ps []parsedSpan) []Span {
	out := make([]Span, len(ps))
	for i, p := range ps {
		out[i] = p.Span
	}
	return out
}
