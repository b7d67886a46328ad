package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/golang-sql/civil"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

const icsProductID = "-//trip-planner//calendar//EN"

// EncodeICS renders res and items as an iCalendar document named name.
//
// Consecutive days owned by the same trip or subtrip become one all-day
// event whose COLOR is the resolved colour. Each itinerary item becomes a
// timed event; items without an end time are zero-length. stamp is written
// as every event's DTSTAMP.
func EncodeICS(name string, res *Resolution, items []domain.ItineraryItem, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName(name)

	for _, run := range runs(res) {
		ev := cal.AddEvent(fmt.Sprintf("%s-%s@trip-planner", run.loc.OwnerID, run.start))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(run.loc.Location)
		ev.SetAllDayStartAt(Midnight(run.start))
		// DTEND of an all-day event is exclusive.
		ev.SetAllDayEndAt(Midnight(run.end.AddDays(1)))
		ev.SetProperty(ical.ComponentProperty("COLOR"), run.loc.Color)
	}

	for _, it := range items {
		ev := cal.AddEvent(it.ID.String() + "@trip-planner")
		ev.SetDtStampTime(stamp)
		ev.SetSummary(fmt.Sprintf("%s: %s", it.Type, it.Title))
		ev.SetStartAt(it.StartTime)
		if it.EndTime != nil {
			ev.SetEndAt(*it.EndTime)
		} else {
			ev.SetEndAt(it.StartTime)
		}
		if it.Location != "" {
			ev.SetLocation(it.Location)
		}
		if it.Notes != "" {
			ev.SetDescription(it.Notes)
		}
	}

	return cal.Serialize()
}

type dayRun struct {
	loc        domain.DayLocation
	start, end civil.Date
}

// runs groups consecutive covered days with the same owner.
func runs(res *Resolution) []dayRun {
	first, last, ok := res.Bounds()
	if !ok {
		return nil
	}
	var out []dayRun
	cur := -1
	EachDay(first, last, func(d civil.Date) {
		loc, ok := res.DayLocation(d)
		if !ok {
			cur = -1
			return
		}
		if cur >= 0 && out[cur].loc == loc {
			out[cur].end = d
			return
		}
		out = append(out, dayRun{loc: loc, start: d, end: d})
		cur = len(out) - 1
	})
	return out
}
