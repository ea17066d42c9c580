package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/crewlink/crew-schedule-scraper/internal/adapter/http/response"
	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/internal/usecase"
)

// ScheduleHandler handles HTTP requests for schedule endpoints.
type ScheduleHandler struct {
	useCase usecase.ScrapeUseCase
}

// NewScheduleHandler creates a new ScheduleHandler with the given use case.
func NewScheduleHandler(uc usecase.ScrapeUseCase) *ScheduleHandler {
	return &ScheduleHandler{
		useCase: uc,
	}
}

// Scrape handles POST /api/v1/schedule and the legacy POST /api/flica-login
//
// @Summary Scrape a crew schedule
// @Description Logs in to the tenant's crew portal and returns the previous, current and next month's flights
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body ScrapeRequest true "Portal credentials"
// @Success 200 {object} ScheduleResponseDTO
// @Failure 400 {object} ScheduleResponseDTO "Missing or invalid fields"
// @Failure 401 {object} ScheduleResponseDTO "Invalid credentials"
// @Failure 500 {object} ScheduleResponseDTO "Upstream portal or internal error"
// @Router /api/v1/schedule [post]
func (h *ScheduleHandler) Scrape(c echo.Context) error {
	var req ScrapeRequest

	// Bind request body
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	// The use case detaches from the request context, so a client
	// disconnect does not abort a scrape already in progress
	result, err := h.useCase.Scrape(c.Request().Context(), ToCredentials(&req))
	if err != nil {
		return h.handleError(c, result, err)
	}

	return response.Schedule(c, ToScheduleResponse(result))
}

// handleValidationError returns a 400 response naming the offending fields.
func (h *ScheduleHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.Message())
	}
	return response.ValidationError(c, err.Error())
}

// handleError maps classified scrape errors to HTTP responses.
func (h *ScheduleHandler) handleError(c echo.Context, result *domain.ScrapeResult, err error) error {
	if result == nil {
		var classified *domain.ScrapeError
		if !errors.As(err, &classified) {
			return response.InternalServerError(c)
		}
		result = domain.FailureResult(usecase.UserMessage(classified))
	}
	body := ToScheduleResponse(result)

	if errors.Is(err, domain.ErrAuthentication) {
		return response.Unauthorized(c, body)
	}
	return response.ScrapeFailed(c, body)
}

// Health handles GET /health
// Simple liveness check, unrelated to portal availability.
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponseDTO
// @Router /health [get]
func (h *ScheduleHandler) Health(c echo.Context) error {
	return response.Health(c)
}
