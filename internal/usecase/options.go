// Package usecase contains the scrape orchestration: one isolated session per
// operation, login, three sequential monthly fetches and normalization.
package usecase

import (
	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/logger"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/timeutil"
)

// Normalizer maps one monthly payload to flight records.
type Normalizer func(raw domain.RawScheduleResponse) ([]domain.FlightRecord, domain.ScheduleShape)

// Config contains the collaborators of the scrape use case.
type Config struct {
	// Clock decides the month window; its location decides which month is current
	Clock timeutil.Clock

	// Normalize converts each monthly payload
	Normalize Normalizer

	Logger *logger.Logger
}

// DefaultConfig returns a configuration using the system clock in UTC.
// Normalize has no default and must be set.
func DefaultConfig() Config {
	return Config{
		Clock:  timeutil.NewZonedClock(timeutil.NewRealClock(), nil),
		Logger: logger.Nop(),
	}
}
