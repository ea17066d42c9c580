package domain

// FlightRecord is the canonical, normalized representation of one scheduled flight event.
// Every record maps to exactly one upstream event entry of exactly one month.
type FlightRecord struct {
	// Date is the event date as the portal reported it (not validated)
	Date string `json:"date"`

	// FlightNumber is the flight or pairing identifier (e.g., "AA100")
	FlightNumber string `json:"flightNumber"`

	// Departure is the departure station code (e.g., "JFK")
	Departure string `json:"departure"`

	// Arrival is the arrival station code (e.g., "LAX")
	Arrival string `json:"arrival"`

	// Time is the reported time or time range (e.g., "0800 - 1130")
	Time string `json:"time"`

	// Duration is the block time when the portal provides one
	Duration string `json:"duration,omitempty"`

	// Notes carries free-form event text when the portal provides it
	Notes string `json:"notes,omitempty"`
}

// RawScheduleResponse is the unmodified upstream payload for one month.
// It is discarded once normalized.
type RawScheduleResponse struct {
	Month       MonthKey
	StatusCode  int
	ContentType string
	Body        []byte
}

// ScheduleShape identifies the layout of a monthly schedule payload.
type ScheduleShape string

const (
	// ShapeEvents is an object with an "events" array of semantic or calendar-style entries.
	ShapeEvents ScheduleShape = "events"

	// ShapeFlatList is a top-level array of loosely keyed entries.
	ShapeFlatList ScheduleShape = "flat_list"

	// ShapeUnrecognized is anything else. It yields no records.
	ShapeUnrecognized ScheduleShape = "unrecognized"
)

// ScrapeResult is the outcome of one scrape operation as returned to callers.
type ScrapeResult struct {
	// Success is true only when login and all monthly fetches succeeded
	Success bool `json:"success"`

	// Flights is ordered previous -> current -> next month, then upstream order.
	// It is always empty on failure.
	Flights []FlightRecord `json:"flights"`

	// Error is a human-readable failure description, null on success
	Error *string `json:"error"`
}

// SuccessResult builds a successful ScrapeResult. A nil slice is rendered as an empty array.
func SuccessResult(flights []FlightRecord) *ScrapeResult {
	if flights == nil {
		flights = []FlightRecord{}
	}
	return &ScrapeResult{
		Success: true,
		Flights: flights,
	}
}

// FailureResult builds a failed ScrapeResult carrying no flights.
func FailureResult(message string) *ScrapeResult {
	return &ScrapeResult{
		Success: false,
		Flights: []FlightRecord{},
		Error:   &message,
	}
}
