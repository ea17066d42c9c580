package crewportal

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
)

// FetchMonth requests one month's schedule on the logged-in session.
// A rejection here retroactively fails a tentative login.
func (s *session) FetchMonth(ctx context.Context, month domain.MonthKey) (domain.RawScheduleResponse, error) {
	ctx, span := tracer.Start(ctx, "session:FetchMonth")
	defer span.End()
	span.SetAttributes(
		attribute.String("tenant", s.tenant),
		attribute.String("month", month.String()),
	)

	op := "fetch " + month.String()

	switch s.state {
	case domain.LoginTentative, domain.LoginConfirmed:
	default:
		span.SetStatus(codes.Error, "not logged in")
		return domain.RawScheduleResponse{}, domain.NewInternalError(op, domain.ErrLoginRequired)
	}

	res, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("month", month.String()).
		Get(SchedulePath)
	if err != nil {
		span.SetStatus(codes.Error, "schedule request failed")
		return domain.RawScheduleResponse{}, domain.NewTransportError(op, err)
	}

	status := res.StatusCode()
	contentType := res.Header().Get("Content-Type")
	body := res.Body()
	span.SetAttributes(attribute.Int("http.status_code", status))

	if domain.IsAuthStatus(status) {
		s.state = domain.LoginRejected
		span.SetStatus(codes.Error, "session rejected")
		return domain.RawScheduleResponse{}, domain.NewAuthenticationError(op, &domain.StatusError{Code: status})
	}

	if status < 200 || status > 299 {
		span.SetStatus(codes.Error, "unexpected schedule status")
		return domain.RawScheduleResponse{}, domain.NewTransportError(op, &domain.StatusError{Code: status})
	}

	if isLoginForm(body, contentType) {
		s.state = domain.LoginRejected
		span.SetStatus(codes.Error, "redirected to login form")
		return domain.RawScheduleResponse{}, domain.NewAuthenticationError(op, domain.ErrSessionRejected)
	}

	if s.state == domain.LoginTentative {
		s.state = domain.LoginConfirmed
		s.log.Debug().Str("month", month.String()).Msg("Login confirmed by schedule fetch")
	}

	return domain.RawScheduleResponse{
		Month:       month,
		StatusCode:  status,
		ContentType: contentType,
		Body:        body,
	}, nil
}
