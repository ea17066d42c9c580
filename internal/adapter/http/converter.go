package http

import (
	"strings"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
)

// ToCredentials converts a validated ScrapeRequest to domain credentials.
// The password is passed through untouched.
func ToCredentials(req *ScrapeRequest) domain.Credentials {
	return domain.Credentials{
		UserID:     strings.TrimSpace(req.UserID),
		Password:   req.Password,
		TenantCode: req.Tenant(),
	}
}

// ToScheduleResponse converts a domain ScrapeResult to its wire form.
func ToScheduleResponse(result *domain.ScrapeResult) *ScheduleResponseDTO {
	flights := make([]FlightDTO, 0, len(result.Flights))
	for _, f := range result.Flights {
		flights = append(flights, ToFlightDTO(f))
	}

	return &ScheduleResponseDTO{
		Success: result.Success,
		Flights: flights,
		Error:   result.Error,
	}
}

// ToFlightDTO converts a single flight record.
func ToFlightDTO(f domain.FlightRecord) FlightDTO {
	return FlightDTO{
		Date:         f.Date,
		FlightNumber: f.FlightNumber,
		Departure:    f.Departure,
		Arrival:      f.Arrival,
		Time:         f.Time,
		Duration:     f.Duration,
		Notes:        f.Notes,
	}
}
