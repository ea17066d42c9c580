package crewportal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
)

func raw(body string) domain.RawScheduleResponse {
	return domain.RawScheduleResponse{
		Month:       domain.MonthKey{Year: 2026, Month: 3},
		StatusCode:  200,
		ContentType: "application/json",
		Body:        []byte(body),
	}
}

func TestNormalize_EventsSemantic(t *testing.T) {
	body := `{"events":[
		{"date":"2026-03-02","flightNumber":"UA123","departure":"ORD","arrival":"SFO","time":"08:00","duration":"4h30m"},
		{"date":"2026-03-03","flightNumber":"UA124","departure":"SFO","arrival":"ORD","time":"15:10"}
	]}`

	got, shape := Normalize(raw(body))

	want := []domain.FlightRecord{
		{Date: "2026-03-02", FlightNumber: "UA123", Departure: "ORD", Arrival: "SFO", Time: "08:00", Duration: "4h30m"},
		{Date: "2026-03-03", FlightNumber: "UA124", Departure: "SFO", Arrival: "ORD", Time: "15:10"},
	}
	assert.Equal(t, ShapeEvents, shape)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_EventsCalendar(t *testing.T) {
	body := `{"events":[
		{"DTSTART":"20260302T0800","DTEND":"20260302T1230","SUMMARY":"AA100","LOCATION":"JFK-LAX","DESCRIPTION":"deadhead"},
		{"DTSTART":"20260305T0600","SUMMARY":"AA101","LOCATION":" JFK - LAX "},
		{"DTEND":"20260306T1100","SUMMARY":"AA102","LOCATION":"DFW"}
	]}`

	got, shape := Normalize(raw(body))

	want := []domain.FlightRecord{
		{Date: "20260302T0800", FlightNumber: "AA100", Departure: "JFK", Arrival: "LAX", Time: "20260302T0800 - 20260302T1230", Notes: "deadhead"},
		{Date: "20260305T0600", FlightNumber: "AA101", Departure: "JFK", Arrival: "LAX", Time: "20260305T0600"},
		{Date: "", FlightNumber: "AA102", Departure: "DFW", Arrival: "", Time: "20260306T1100"},
	}
	assert.Equal(t, ShapeEvents, shape)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_LocationSplitsOnce(t *testing.T) {
	got, _ := Normalize(raw(`{"events":[{"LOCATION":"JFK-LAX-SFO"}]}`))

	assert.Len(t, got, 1)
	assert.Equal(t, "JFK", got[0].Departure)
	assert.Equal(t, "LAX-SFO", got[0].Arrival)
}

func TestNormalize_SemanticWinsOverCalendar(t *testing.T) {
	body := `{"events":[{"date":"2026-03-09","DTSTART":"20260309T0700","departure":"BOS","LOCATION":"JFK-LAX","time":"07:00"}]}`

	got, _ := Normalize(raw(body))

	want := []domain.FlightRecord{
		{Date: "2026-03-09", Departure: "BOS", Arrival: "LAX", Time: "07:00"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_FlatListSynonyms(t *testing.T) {
	body := `[
		{"flightDate":"2026-03-01","flightNum":"DL1","dep":"ATL","arr":"MCO","departureTime":"06:00","blockTime":"1:25","remarks":"A320"},
		{"day":"2026-03-02","flightNo":"DL2","origin":"MCO","destination":"ATL","depTime":"09:00","block":95},
		{"date":"2026-03-03","flight":"DL3","from":"ATL","to":"LGA","startTime":"12:00","comments":"late"}
	]`

	got, shape := Normalize(raw(body))

	want := []domain.FlightRecord{
		{Date: "2026-03-01", FlightNumber: "DL1", Departure: "ATL", Arrival: "MCO", Time: "06:00", Duration: "1:25", Notes: "A320"},
		{Date: "2026-03-02", FlightNumber: "DL2", Departure: "MCO", Arrival: "ATL", Time: "09:00", Duration: "95"},
		{Date: "2026-03-03", FlightNumber: "DL3", Departure: "ATL", Arrival: "LGA", Time: "12:00", Notes: "late"},
	}
	assert.Equal(t, ShapeFlatList, shape)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_FirstMatchWins(t *testing.T) {
	got, _ := Normalize(raw(`[{"flightNumber":"","flightNum":"B6 22","flightNo":"ignored"}]`))

	assert.Equal(t, "B6 22", got[0].FlightNumber)
}

func TestNormalize_ScalarRendering(t *testing.T) {
	body := `[{"flightNumber":1234,"duration":2.5,"notes":true,"departure":null,"arrival":{"code":"SEA"},"time":["08:00"]}]`

	got, _ := Normalize(raw(body))

	want := []domain.FlightRecord{
		{FlightNumber: "1234", Duration: "2.5", Notes: "true"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_SkipsNonObjectEntries(t *testing.T) {
	got, shape := Normalize(raw(`{"events":[1,"x",null,{"SUMMARY":"WN9"},[]]}`))

	assert.Equal(t, ShapeEvents, shape)
	assert.Equal(t, []domain.FlightRecord{{FlightNumber: "WN9"}}, got)
}

func TestNormalize_JSON5Fallback(t *testing.T) {
	body := `{
		// exported by the portal's legacy view
		events: [
			{SUMMARY: 'AS7', LOCATION: 'SEA-ANC',},
		],
	}`

	got, shape := Normalize(raw(body))

	assert.Equal(t, ShapeEvents, shape)
	assert.Equal(t, []domain.FlightRecord{{FlightNumber: "AS7", Departure: "SEA", Arrival: "ANC"}}, got)
}

func TestNormalize_ByteOrderMark(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantShape Shape
	}{
		{"events object", "\ufeff{\"events\":[{\"flightNumber\":\"AA1\"}]}", ShapeEvents},
		{"events with leading space", " \ufeff {\"events\":[{\"flightNumber\":\"AA1\"}]}", ShapeEvents},
		{"flat list", "\ufeff[{\"flightNumber\":\"AA1\"}]", ShapeFlatList},
		{"json5 events", "\ufeff{events: [{flightNumber: 'AA1',}]}", ShapeEvents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shape := Normalize(raw(tt.body))

			assert.Equal(t, tt.wantShape, shape)
			assert.Equal(t, []domain.FlightRecord{{FlightNumber: "AA1"}}, got)
		})
	}
}

func TestNormalize_Unrecognized(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"html page", "<html><body>Maintenance</body></html>"},
		{"object without events", `{"pairings":[{"id":1}]}`},
		{"events not an array", `{"events":{"SUMMARY":"X"}}`},
		{"scalar", `42`},
		{"null", `null`},
		{"garbage", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, shape := Normalize(raw(tt.body))
			assert.Equal(t, ShapeUnrecognized, shape)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestNormalize_EmptyArrays(t *testing.T) {
	got, shape := Normalize(raw(`{"events":[]}`))
	assert.Equal(t, ShapeEvents, shape)
	assert.Empty(t, got)

	got, shape = Normalize(raw(`[]`))
	assert.Equal(t, ShapeFlatList, shape)
	assert.Empty(t, got)
}

func TestNormalize_Idempotent(t *testing.T) {
	bodies := []string{
		`{"events":[{"DTSTART":"a","DTEND":"b","SUMMARY":"c","LOCATION":"d-e"}]}`,
		`[{"flightNo":"f","origin":"g","to":"h","block":3}]`,
		`not json`,
	}

	for _, body := range bodies {
		first, firstShape := Normalize(raw(body))
		second, secondShape := Normalize(raw(body))

		assert.Equal(t, firstShape, secondShape)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Normalize() not idempotent for %q (-first +second):\n%s", body, diff)
		}
	}
}
