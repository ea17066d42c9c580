package crewportal

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/crewlink/crew-schedule-scraper/internal/config"
	"github.com/crewlink/crew-schedule-scraper/internal/domain"
)

const opLogin = "login"

// Login submits the credentials as a form post. A nil error only means the
// portal showed no failure signal; the first schedule fetch confirms it.
func (s *session) Login(ctx context.Context, creds domain.Credentials) error {
	ctx, span := tracer.Start(ctx, "session:Login")
	defer span.End()
	span.SetAttributes(attribute.String("tenant", s.tenant))

	res, err := s.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"userID":   creds.UserID,
			"password": creds.Password,
		}).
		Post(LoginPath)
	if err != nil {
		span.SetStatus(codes.Error, "login request failed")
		return domain.NewTransportError(opLogin, err)
	}

	status := res.StatusCode()
	span.SetAttributes(attribute.Int("http.status_code", status))

	if domain.IsAuthStatus(status) {
		s.state = domain.LoginRejected
		span.SetStatus(codes.Error, "login rejected")
		return domain.NewAuthenticationError(opLogin, &domain.StatusError{Code: status})
	}

	if marker, found := findMarker(res.Body(), res.Header().Get("Content-Type"), s.profile.FailureMarkers); found {
		if s.profile.MarkerMode != config.MarkerAdvisory {
			s.state = domain.LoginRejected
			span.SetStatus(codes.Error, "login failure marker")
			return domain.NewAuthenticationError(opLogin, domain.ErrInvalidCredentials)
		}
		s.log.Warn().
			Str("marker", marker).
			Int("status", status).
			Msg("Login response contains a failure marker, waiting for schedule fetch to decide")
	}

	if status < 200 || status > 299 {
		span.SetStatus(codes.Error, "unexpected login status")
		return domain.NewTransportError(opLogin, &domain.StatusError{Code: status})
	}

	s.state = domain.LoginTentative
	s.log.Debug().Int("status", status).Msg("Login accepted tentatively")
	return nil
}

// findMarker reports the first failure marker contained in the body's visible text.
func findMarker(body []byte, contentType string, markers []string) (string, bool) {
	if len(markers) == 0 || len(body) == 0 {
		return "", false
	}

	text := strings.ToLower(visibleText(body, contentType))
	for _, m := range markers {
		if m = strings.TrimSpace(m); m == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(m)) {
			return m, true
		}
	}
	return "", false
}
