package http

// ScheduleResponseDTO is the response body of every scrape endpoint, including failures.
// @Description Scrape outcome. flights is always an array; error is null on success.
type ScheduleResponseDTO struct {
	Success bool        `json:"success" example:"true"`
	Flights []FlightDTO `json:"flights"`
	Error   *string     `json:"error" example:"Login failed: Invalid credentials"`
}

// FlightDTO is one scheduled flight as reported by the portal.
// @Description One flight event; values are passed through unvalidated
type FlightDTO struct {
	Date         string `json:"date" example:"2026-03-02"`
	FlightNumber string `json:"flightNumber" example:"UA123"`
	Departure    string `json:"departure" example:"ORD"`
	Arrival      string `json:"arrival" example:"SFO"`
	Time         string `json:"time" example:"0800 - 1230"`
	Duration     string `json:"duration,omitempty" example:"4h30m"`
	Notes        string `json:"notes,omitempty" example:"deadhead"`
}

// HealthResponseDTO is the liveness response.
type HealthResponseDTO struct {
	Status string `json:"status" example:"ok"`
}
