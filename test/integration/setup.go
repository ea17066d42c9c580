// Package integration provides helpers and integration tests for the crew schedule scraper.
// Integration tests run the HTTP handlers, the scrape use case and the real portal
// adapter together against the fake portal in test/mock.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crewlink/crew-schedule-scraper/internal/adapter/crewportal"
	httpAdapter "github.com/crewlink/crew-schedule-scraper/internal/adapter/http"
	"github.com/crewlink/crew-schedule-scraper/internal/adapter/http/middleware"
	"github.com/crewlink/crew-schedule-scraper/internal/config"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/logger"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/timeutil"
	"github.com/crewlink/crew-schedule-scraper/internal/usecase"
	"github.com/crewlink/crew-schedule-scraper/test/mock"
)

// Now is the fixed scrape time; its window is 2025-12, 2026-01, 2026-02.
const Now = "2026-01-15T12:00:00Z"

// Months fetched at Now, in order.
const (
	PrevMonth    = "2025-12"
	CurrentMonth = "2026-01"
	NextMonth    = "2026-02"
)

// SafeBuffer is a bytes.Buffer that can be shared by concurrent loggers.
type SafeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// UseCaseOptions tunes CreateUseCase.
type UseCaseOptions struct {
	Clock   timeutil.Clock
	Timeout time.Duration
	Tenants *config.Tenants
	Logs    *SafeBuffer
}

// CreateUseCase wires the real portal adapter to the fake portal.
func CreateUseCase(portal *mock.Portal, opts UseCaseOptions) usecase.ScrapeUseCase {
	if opts.Clock == nil {
		clock, _ := time.Parse(time.RFC3339, Now)
		opts.Clock = timeutil.NewMockClock(clock)
	}
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Second
	}

	log := logger.Nop()
	if opts.Logs != nil {
		log = logger.NewWithOutput(logger.Config{Level: "debug", Format: "json", ServiceName: "integration"}, opts.Logs)
	}

	factory := crewportal.NewFactory(crewportal.Options{
		BaseURL: portal.URL(),
		Timeout: opts.Timeout,
		Tenants: opts.Tenants,
		Logger:  log,
	})

	return usecase.NewScrapeUseCase(factory, &usecase.Config{
		Clock:     opts.Clock,
		Normalize: crewportal.Normalize,
		Logger:    log,
	})
}

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.ScheduleHandler
}

// NewTestServer creates a new test server with the given use case and the production middleware.
func NewTestServer(uc usecase.ScrapeUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, zerolog.Nop(), middleware.DefaultOptions())

	handler := httpAdapter.NewScheduleHandler(uc)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	RawBody     string
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch {
	case req.RawBody != "":
		bodyReader = bytes.NewReader([]byte(req.RawBody))
	case req.Body != nil:
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	default:
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil || req.RawBody != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// ScheduleRequest posts body to the versioned scrape endpoint.
func (ts *TestServer) ScheduleRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/schedule",
		Body:   body,
	})
}

// LegacyRequest posts body to the legacy scrape endpoint.
func (ts *TestServer) LegacyRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   httpAdapter.LegacyScrapePath,
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSchedule parses the response body as a schedule response.
func (r *Response) ParseSchedule() (*httpAdapter.ScheduleResponseDTO, error) {
	var resp httpAdapter.ScheduleResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScrapeBody is a helper struct for building scrape request bodies.
type ScrapeBody struct {
	UserID      string `json:"userID"`
	Password    string `json:"password"`
	AirlineCode string `json:"airlineCode,omitempty"`
	TenantCode  string `json:"tenantCode,omitempty"`
}
