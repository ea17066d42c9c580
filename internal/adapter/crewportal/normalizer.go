package crewportal

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/titanous/json5"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
)

// Normalize maps one monthly payload to flight records. It never fails:
// a payload it cannot recognize yields no records and ShapeUnrecognized.
// Records keep upstream order.
func Normalize(raw domain.RawScheduleResponse) ([]domain.FlightRecord, Shape) {
	payload, ok := decode(raw.Body)
	if !ok {
		return []domain.FlightRecord{}, ShapeUnrecognized
	}

	entries, shape := detectShape(payload)
	if shape == ShapeUnrecognized {
		return []domain.FlightRecord{}, shape
	}

	rules := flatListRules
	if shape == ShapeEvents {
		rules = eventRules
	}

	records := make([]domain.FlightRecord, 0, len(entries))
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, applyRules(entry, rules))
	}
	return records, shape
}

func detectShape(payload any) ([]any, Shape) {
	switch v := payload.(type) {
	case map[string]any:
		if events, ok := v["events"].([]any); ok {
			return events, ShapeEvents
		}
	case []any:
		return v, ShapeFlatList
	}
	return nil, ShapeUnrecognized
}

var utf8BOM = []byte("\xef\xbb\xbf")

// decode parses strict JSON first and falls back to JSON5 for payloads with
// comments, trailing commas or unquoted keys. A leading UTF-8 byte order
// mark is dropped.
func decode(body []byte) (any, bool) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(body), utf8BOM))
	if len(trimmed) == 0 {
		return nil, false
	}

	var payload any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&payload); err == nil && !dec.More() {
		return payload, true
	}

	payload = nil
	if err := json5.Unmarshal(trimmed, &payload); err == nil {
		return payload, true
	}
	return nil, false
}

// scalar renders a JSON scalar as a string. Null, objects and arrays do not match.
func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
