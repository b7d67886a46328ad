package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/backend/internal/calendar"
	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_destination", "trip_start_date", "trip_end_date",
	"item_type", "item_title", "item_location", "start_time", "end_time",
	"cost", "currency", "notes", "day_location",
}

// GetExport implements GET /export.
// It returns every itinerary item of the user as a flat table, with the
// location that owns each item's day. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}
	f := deref(format)
	if f != "" && f != "json" && f != "csv" {
		badRequest(w, `format must be "json" or "csv"`)
		return
	}

	rows, err := s.export.Export(r.Context(), uid)
	if err != nil {
		s.fail(w, r, err, "export")
		return
	}

	if f == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONResponse(rows))
}

// buildJSONResponse converts domain rows to the JSON response.
func buildJSONResponse(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToResponse(r))
	}
	return out
}

// writeCSV encodes domain rows as CSV with a header row.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToResponse maps a domain.ExportRow to its JSON shape.
// Fields that are empty strings become nil pointers (omitempty in JSON).
func domainRowToResponse(r domain.ExportRow) ExportRow {
	tripID, _ := uuid.Parse(r.TripID)
	return ExportRow{
		TripID:          tripID,
		TripTitle:       r.TripTitle,
		TripDestination: r.TripDestination,
		TripStartDate:   mustParseDate(r.TripStartDate),
		TripEndDate:     mustParseDate(r.TripEndDate),
		ItemType:        optional(r.ItemType),
		ItemTitle:       optional(r.ItemTitle),
		ItemLocation:    optional(r.ItemLocation),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		Cost:            r.Cost,
		Currency:        optional(r.Currency),
		Notes:           optional(r.Notes),
		DayLocation:     optional(r.DayLocation),
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Nil pointers are encoded as empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripTitle,
		r.TripDestination,
		r.TripStartDate,
		r.TripEndDate,
		r.ItemType,
		r.ItemTitle,
		r.ItemLocation,
		formatOptionalTime(r.StartTime),
		formatOptionalTime(r.EndTime),
		formatOptionalCost(r.Cost),
		r.Currency,
		r.Notes,
		r.DayLocation,
	}
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse(calendar.DateLayout, s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalCost(c *float64) string {
	if c == nil {
		return ""
	}
	return strconv.FormatFloat(*c, 'f', 2, 64)
}
