package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/logger"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/timeutil"
)

var tracer = otel.Tracer("usecase")

// ScrapeUseCase defines the schedule scrape operation.
type ScrapeUseCase interface {
	// Scrape logs in and collects the previous, current and next month's flights.
	// On failure it returns a failed ScrapeResult together with the classified *domain.ScrapeError.
	Scrape(ctx context.Context, creds domain.Credentials) (*domain.ScrapeResult, error)
}

type scrapeUseCase struct {
	sessions  domain.SessionFactory
	clock     timeutil.Clock
	normalize Normalizer
	log       *logger.Logger
}

// NewScrapeUseCase creates a ScrapeUseCase. Nil config fields fall back to DefaultConfig.
func NewScrapeUseCase(sessions domain.SessionFactory, config *Config) ScrapeUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.Clock != nil {
			cfg.Clock = config.Clock
		}
		if config.Normalize != nil {
			cfg.Normalize = config.Normalize
		}
		if config.Logger != nil {
			cfg.Logger = config.Logger
		}
	}
	if cfg.Normalize == nil {
		panic("usecase: Config.Normalize is required")
	}

	return &scrapeUseCase{
		sessions:  sessions,
		clock:     cfg.Clock,
		normalize: cfg.Normalize,
		log:       cfg.Logger,
	}
}

// Scrape implements ScrapeUseCase. The operation ignores caller cancellation;
// only the per-request timeout bounds it.
func (uc *scrapeUseCase) Scrape(ctx context.Context, creds domain.Credentials) (*domain.ScrapeResult, error) {
	startTime := time.Now()
	ctx = context.WithoutCancel(ctx)

	scrapeID := uuid.NewString()
	log := uc.log.
		WithScrapeID(scrapeID).
		WithTenant(creds.TenantCode).
		WithRedaction(creds.Secrets()...)

	ctx, span := tracer.Start(ctx, "usecase:Scrape")
	defer span.End()
	span.SetAttributes(
		attribute.String("scrape_id", scrapeID),
		attribute.String("tenant", creds.TenantCode),
	)

	log.Info().Msg("Scrape started")

	flights, err := uc.run(ctx, log, creds)
	if err != nil {
		classified := Classify(err, creds)
		span.SetStatus(codes.Error, classified.Kind.String())
		log.Error().
			Str("kind", classified.Kind.String()).
			Str("op", classified.Op).
			Err(classified).
			Float64("duration_s", time.Since(startTime).Seconds()).
			Msg("Scrape failed")
		return domain.FailureResult(UserMessage(classified)), classified
	}

	log.Info().
		Int("flights", len(flights)).
		Float64("duration_s", time.Since(startTime).Seconds()).
		Msg("Scrape completed")
	return domain.SuccessResult(flights), nil
}

// run executes login and the monthly fetches strictly in sequence on one session.
// Any failure discards everything collected so far.
func (uc *scrapeUseCase) run(ctx context.Context, log *logger.Logger, creds domain.Credentials) ([]domain.FlightRecord, error) {
	session := uc.sessions.NewSession(creds.TenantCode)
	defer session.Close()

	if err := session.Login(ctx, creds); err != nil {
		return nil, err
	}
	log.Debug().Str("state", session.State().String()).Msg("Login submitted")

	var flights []domain.FlightRecord
	for _, month := range domain.MonthWindow(uc.clock.Now()) {
		raw, err := session.FetchMonth(ctx, month)
		if err != nil {
			log.Warn().
				Str("month", month.String()).
				Str("state", session.State().String()).
				Msg("Schedule fetch failed, discarding results")
			return nil, err
		}

		records, shape, err := uc.safeNormalize(raw)
		if err != nil {
			return nil, err
		}

		event := log.Debug()
		if shape == domain.ShapeUnrecognized {
			event = log.Warn()
		}
		event.
			Str("month", month.String()).
			Str("shape", string(shape)).
			Int("records", len(records)).
			Msg("Schedule normalized")

		flights = append(flights, records...)
	}

	log.Debug().Str("state", session.State().String()).Msg("All months fetched")
	return flights, nil
}

// safeNormalize turns a normalizer panic into an internal error.
func (uc *scrapeUseCase) safeNormalize(raw domain.RawScheduleResponse) (records []domain.FlightRecord, shape domain.ScheduleShape, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = domain.NewInternalError("normalize "+raw.Month.String(), fmt.Errorf("normalizer panic: %v", r))
		}
	}()

	records, shape = uc.normalize(raw)
	return records, shape, nil
}
