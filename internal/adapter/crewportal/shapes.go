package crewportal

import (
	"strings"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
)

// Shape is the payload layout reported by Normalize.
type Shape = domain.ScheduleShape

const (
	ShapeEvents       = domain.ShapeEvents
	ShapeFlatList     = domain.ShapeFlatList
	ShapeUnrecognized = domain.ShapeUnrecognized
)

// fieldRule fills one FlightRecord field. Keys are tried in order and the
// first non-empty scalar wins; derive runs only when no key matched.
type fieldRule struct {
	keys   []string
	derive func(entry map[string]any) string
	assign func(rec *domain.FlightRecord, value string)
}

var (
	setDate         = func(r *domain.FlightRecord, v string) { r.Date = v }
	setFlightNumber = func(r *domain.FlightRecord, v string) { r.FlightNumber = v }
	setDeparture    = func(r *domain.FlightRecord, v string) { r.Departure = v }
	setArrival      = func(r *domain.FlightRecord, v string) { r.Arrival = v }
	setTime         = func(r *domain.FlightRecord, v string) { r.Time = v }
	setDuration     = func(r *domain.FlightRecord, v string) { r.Duration = v }
	setNotes        = func(r *domain.FlightRecord, v string) { r.Notes = v }
)

// eventRules map entries of the "events" array.
var eventRules = []fieldRule{
	{keys: []string{"date", "DTSTART"}, assign: setDate},
	{keys: []string{"flightNumber", "SUMMARY"}, assign: setFlightNumber},
	{keys: []string{"departure"}, derive: locationPart(0), assign: setDeparture},
	{keys: []string{"arrival"}, derive: locationPart(1), assign: setArrival},
	{keys: []string{"time"}, derive: startEnd, assign: setTime},
	{keys: []string{"duration"}, assign: setDuration},
	{keys: []string{"notes", "DESCRIPTION"}, assign: setNotes},
}

// flatListRules map entries of a top-level array.
var flatListRules = []fieldRule{
	{keys: []string{"date", "flightDate", "day"}, assign: setDate},
	{keys: []string{"flightNumber", "flightNum", "flightNo", "flight"}, assign: setFlightNumber},
	{keys: []string{"departure", "dep", "origin", "from"}, assign: setDeparture},
	{keys: []string{"arrival", "arr", "destination", "to"}, assign: setArrival},
	{keys: []string{"time", "departureTime", "depTime", "startTime"}, assign: setTime},
	{keys: []string{"duration", "blockTime", "block"}, assign: setDuration},
	{keys: []string{"notes", "remarks", "comments"}, assign: setNotes},
}

// locationPart returns the trimmed part of LOCATION before (0) or after (1) its first "-".
func locationPart(index int) func(map[string]any) string {
	return func(entry map[string]any) string {
		loc, ok := scalar(entry["LOCATION"])
		if !ok {
			return ""
		}
		parts := strings.SplitN(loc, "-", 2)
		if index >= len(parts) {
			return ""
		}
		return strings.TrimSpace(parts[index])
	}
}

// startEnd renders "DTSTART - DTEND", or whichever of the two is present.
func startEnd(entry map[string]any) string {
	start, _ := scalar(entry["DTSTART"])
	end, _ := scalar(entry["DTEND"])
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}

func applyRules(entry map[string]any, rules []fieldRule) domain.FlightRecord {
	var rec domain.FlightRecord
	for _, rule := range rules {
		value := firstMatch(entry, rule.keys)
		if value == "" && rule.derive != nil {
			value = rule.derive(entry)
		}
		rule.assign(&rec, value)
	}
	return rec
}

func firstMatch(entry map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := scalar(entry[key]); ok && v != "" {
			return v
		}
	}
	return ""
}
