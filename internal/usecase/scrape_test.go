package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/logger"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/timeutil"
)

var testCreds = domain.Credentials{UserID: "crew42", Password: "s3cr3t-pw", TenantCode: "xx"}

var (
	dec2025 = domain.MonthKey{Year: 2025, Month: time.December}
	jan2026 = domain.MonthKey{Year: 2026, Month: time.January}
	feb2026 = domain.MonthKey{Year: 2026, Month: time.February}
)

// bodyNormalizer turns a body of "A,B" into two records with those flight numbers.
func bodyNormalizer(raw domain.RawScheduleResponse) ([]domain.FlightRecord, domain.ScheduleShape) {
	if len(raw.Body) == 0 {
		return []domain.FlightRecord{}, domain.ShapeUnrecognized
	}
	var records []domain.FlightRecord
	for _, fn := range bytes.Split(raw.Body, []byte(",")) {
		records = append(records, domain.FlightRecord{Date: raw.Month.String(), FlightNumber: string(fn)})
	}
	return records, domain.ShapeFlatList
}

func rawMonth(month domain.MonthKey, body string) domain.RawScheduleResponse {
	return domain.RawScheduleResponse{Month: month, StatusCode: http.StatusOK, Body: []byte(body)}
}

// setupSession returns a mock session wired to a mock factory. The session is
// always closed and its state is always readable.
func setupSession(ctrl *gomock.Controller) (*domain.MockSessionFactory, *domain.MockSession) {
	session := domain.NewMockSession(ctrl)
	session.EXPECT().State().Return(domain.LoginTentative).AnyTimes()
	session.EXPECT().Close().Times(1)

	factory := domain.NewMockSessionFactory(ctrl)
	factory.EXPECT().NewSession(testCreds.TenantCode).Return(session).Times(1)
	return factory, session
}

func newTestUseCase(factory domain.SessionFactory, log *logger.Logger) ScrapeUseCase {
	return NewScrapeUseCase(factory, &Config{
		Clock:     timeutil.NewMockClock(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)),
		Normalize: bodyNormalizer,
		Logger:    log,
	})
}

func TestScrape_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	gomock.InOrder(
		session.EXPECT().Login(gomock.Any(), testCreds).Return(nil),
		session.EXPECT().FetchMonth(gomock.Any(), dec2025).Return(rawMonth(dec2025, "D1,D2"), nil),
		session.EXPECT().FetchMonth(gomock.Any(), jan2026).Return(rawMonth(jan2026, "J1"), nil),
		session.EXPECT().FetchMonth(gomock.Any(), feb2026).Return(rawMonth(feb2026, "F1"), nil),
	)

	result, err := newTestUseCase(factory, nil).Scrape(context.Background(), testCreds)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.Error)
	require.Len(t, result.Flights, 4)

	var order []string
	for _, f := range result.Flights {
		order = append(order, f.Date+"/"+f.FlightNumber)
	}
	assert.Equal(t, []string{"2025-12/D1", "2025-12/D2", "2026-01/J1", "2026-02/F1"}, order)
}

func TestScrape_EmptyMonthsStillSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	session.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil)
	session.EXPECT().FetchMonth(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m domain.MonthKey) (domain.RawScheduleResponse, error) {
			return rawMonth(m, ""), nil
		}).Times(3)

	result, err := newTestUseCase(factory, nil).Scrape(context.Background(), testCreds)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotNil(t, result.Flights)
	assert.Empty(t, result.Flights)
}

func TestScrape_LoginRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	session.EXPECT().Login(gomock.Any(), testCreds).
		Return(domain.NewAuthenticationError("login", &domain.StatusError{Code: http.StatusUnauthorized}))
	session.EXPECT().FetchMonth(gomock.Any(), gomock.Any()).Times(0)

	result, err := newTestUseCase(factory, nil).Scrape(context.Background(), testCreds)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.False(t, result.Success)
	assert.Empty(t, result.Flights)
	require.NotNil(t, result.Error)
	assert.Equal(t, MessageInvalidCredentials, *result.Error)
}

func TestScrape_FetchRejectsTentativeLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	gomock.InOrder(
		session.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil),
		session.EXPECT().FetchMonth(gomock.Any(), dec2025).
			Return(domain.RawScheduleResponse{}, domain.NewAuthenticationError("fetch 2025-12", domain.ErrSessionRejected)),
	)

	result, err := newTestUseCase(factory, nil).Scrape(context.Background(), testCreds)

	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.ErrorIs(t, err, domain.ErrSessionRejected)
	assert.Empty(t, result.Flights)
}

func TestScrape_SecondFetchTimesOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	gomock.InOrder(
		session.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil),
		session.EXPECT().FetchMonth(gomock.Any(), dec2025).Return(rawMonth(dec2025, "D1"), nil),
		session.EXPECT().FetchMonth(gomock.Any(), jan2026).
			Return(domain.RawScheduleResponse{}, domain.NewTransportError("fetch 2026-01", context.DeadlineExceeded)),
	)
	session.EXPECT().FetchMonth(gomock.Any(), feb2026).Times(0)

	result, err := newTestUseCase(factory, nil).Scrape(context.Background(), testCreds)

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.False(t, result.Success)
	assert.NotNil(t, result.Flights)
	assert.Empty(t, result.Flights)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Upstream portal error: request timed out during fetch 2026-01", *result.Error)
}

func TestScrape_NormalizerPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	session.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil)
	session.EXPECT().FetchMonth(gomock.Any(), dec2025).Return(rawMonth(dec2025, "D1"), nil)

	uc := NewScrapeUseCase(factory, &Config{
		Clock: timeutil.NewMockClock(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),
		Normalize: func(domain.RawScheduleResponse) ([]domain.FlightRecord, domain.ScheduleShape) {
			var m map[string]int
			m["boom"]++
			return nil, domain.ShapeEvents
		},
	})

	result, err := uc.Scrape(context.Background(), testCreds)

	assert.ErrorIs(t, err, domain.ErrInternal)
	assert.Empty(t, result.Flights)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Internal error: failed to process the portal response during normalize 2025-12", *result.Error)
}

func TestScrape_IgnoresCallerCancellation(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assertLive := func(ctx context.Context) {
		assert.NoError(t, ctx.Err())
	}
	session.EXPECT().Login(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.Credentials) error {
			assertLive(ctx)
			return nil
		})
	session.EXPECT().FetchMonth(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, m domain.MonthKey) (domain.RawScheduleResponse, error) {
			assertLive(ctx)
			return rawMonth(m, "X"), nil
		}).Times(3)

	result, err := newTestUseCase(factory, nil).Scrape(ctx, testCreds)

	require.NoError(t, err)
	assert.Len(t, result.Flights, 3)
}

func TestScrape_CredentialsNeverLeak(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	leaky := fmt.Errorf("portal echoed user=%s pass=%s: %w", testCreds.UserID, testCreds.Password, errors.New("boom"))
	session.EXPECT().Login(gomock.Any(), gomock.Any()).Return(leaky)

	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "debug", Format: "json", ServiceName: "test"}, &buf)

	result, err := newTestUseCase(factory, log).Scrape(context.Background(), testCreds)

	require.Error(t, err)
	require.NotNil(t, result.Error)
	for _, secret := range []string{testCreds.UserID, testCreds.Password} {
		assert.NotContains(t, err.Error(), secret)
		assert.NotContains(t, *result.Error, secret)
		assert.NotContains(t, buf.String(), secret)
	}
	assert.Contains(t, buf.String(), `"scrape_id"`)
	assert.Contains(t, buf.String(), `"kind":"internal"`)
}

func TestScrape_LogsScrapeContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory, session := setupSession(ctrl)

	session.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil)
	session.EXPECT().FetchMonth(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m domain.MonthKey) (domain.RawScheduleResponse, error) {
			return rawMonth(m, ""), nil
		}).Times(3)

	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "debug", Format: "json", ServiceName: "test"}, &buf)

	_, err := newTestUseCase(factory, log).Scrape(context.Background(), testCreds)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"tenant":"xx"`)
	assert.Contains(t, output, `"shape":"unrecognized"`)
	assert.Contains(t, output, `"month":"2026-02"`)
	assert.Contains(t, output, "Scrape completed")
}

func TestNewScrapeUseCase_RequiresNormalizer(t *testing.T) {
	assert.Panics(t, func() {
		NewScrapeUseCase(nil, nil)
	})
}
