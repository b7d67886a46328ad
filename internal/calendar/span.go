package calendar

import (
	"errors"
	"fmt"

	"github.com/golang-sql/civil"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// MaxSpanDays caps how many days a single trip or subtrip may cover.
// Longer ranges are rejected as invalid rather than expanded.
const MaxSpanDays = 3660

// Span is the resolver's view of a trip or subtrip: who owns it, the
// location it stands for and its raw inclusive date range.
type Span struct {
	OwnerID  string
	Location string
	Start    string // "YYYY-MM-DD"
	End      string // "YYYY-MM-DD"
	Color    string // explicit colour, empty for none
}

// TripSpan converts a stored trip into a Span keyed by the trip's id.
func TripSpan(t domain.Trip) Span {
	return Span{
		OwnerID:  t.ID.String(),
		Location: t.Destination,
		Start:    t.StartDate.Format(DateLayout),
		End:      t.EndDate.Format(DateLayout),
		Color:    t.Color,
	}
}

// SubtripSpan converts a stored subtrip into a Span keyed by the subtrip's id.
func SubtripSpan(s domain.Subtrip) Span {
	return Span{
		OwnerID:  s.ID.String(),
		Location: s.Location,
		Start:    s.StartDate.Format(DateLayout),
		End:      s.EndDate.Format(DateLayout),
		Color:    s.Color,
	}
}

// ErrSpanTooLong is wrapped by ValidationError when a range exceeds MaxSpanDays.
var ErrSpanTooLong = errors.New("date range too long")

// ValidationError reports a span whose dates cannot be turned into calendar
// days. errors.Is(err, domain.ErrValidation) holds for every ValidationError.
type ValidationError struct {
	OwnerID string
	IsTrip  bool
	Field   string
	Value   string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("calendar: %s %s: %s %q: %v", kindOf(e.IsTrip), e.OwnerID, e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{domain.ErrValidation, e.Err}
}

// parseSpan turns the raw range of s into calendar dates.
// An inverted range is not an error; callers iterate it as empty.
func parseSpan(s Span, isTrip bool) (start, end civil.Date, verr *ValidationError) {
	start, err := ParseDate(s.Start)
	if err != nil {
		return start, end, &ValidationError{OwnerID: s.OwnerID, IsTrip: isTrip, Field: "start_date", Value: s.Start, Err: err}
	}
	end, err = ParseDate(s.End)
	if err != nil {
		return start, end, &ValidationError{OwnerID: s.OwnerID, IsTrip: isTrip, Field: "end_date", Value: s.End, Err: err}
	}
	if end.DaysSince(start) >= MaxSpanDays {
		return start, end, &ValidationError{OwnerID: s.OwnerID, IsTrip: isTrip, Field: "end_date", Value: s.End, Err: ErrSpanTooLong}
	}
	return start, end, nil
}

func kindOf(isTrip bool) string {
	if isTrip {
		return "trip"
	}
	return "subtrip"
}
