package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/logger"
)

// Caller-facing messages.
const (
	MessageInvalidCredentials = "Login failed: Invalid credentials"
	messageTransportPrefix    = "Upstream portal error: "
	messageInternalPrefix     = "Internal error: "
)

// Classify maps any scrape failure to exactly one error kind. The returned
// error's message never contains the user ID or password.
func Classify(err error, creds domain.Credentials) *domain.ScrapeError {
	if err == nil {
		return nil
	}

	var classified *domain.ScrapeError
	var statusErr *domain.StatusError
	var netErr net.Error

	switch {
	case errors.As(err, &classified):
		classified = &domain.ScrapeError{Kind: classified.Kind, Op: classified.Op, Err: classified.Err}
	case errors.As(err, &statusErr):
		if statusErr.IsAuthStatus() {
			classified = domain.NewAuthenticationError("", err)
		} else {
			classified = domain.NewTransportError("", err)
		}
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrSessionRejected):
		classified = domain.NewAuthenticationError("", err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		classified = domain.NewTransportError("", err)
	default:
		classified = domain.NewInternalError("", err)
	}

	classified.Op = logger.Redact(classified.Op, creds.Secrets()...)
	classified.Err = redact(classified.Err, creds.Secrets())
	return classified
}

// UserMessage renders the caller-facing description of a classified error.
// Transport causes are summarized; raw upstream error text is not exposed.
func UserMessage(err *domain.ScrapeError) string {
	switch err.Kind {
	case domain.KindAuthentication:
		return MessageInvalidCredentials
	case domain.KindTransport:
		return messageTransportPrefix + during(transportCause(err.Err), err.Op)
	default:
		return messageInternalPrefix + during("failed to process the portal response", err.Op)
	}
}

func transportCause(err error) string {
	var statusErr *domain.StatusError
	var netErr net.Error

	switch {
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "request timed out"
	default:
		return "request failed"
	}
}

func during(msg, op string) string {
	if op == "" {
		return msg
	}
	return fmt.Sprintf("%s during %s", msg, op)
}

// redactedError masks secrets in the message and keeps the cause for errors.Is.
type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.cause }

func redact(err error, secrets []string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	masked := logger.Redact(msg, secrets...)
	if masked == msg {
		return err
	}
	return &redactedError{msg: masked, cause: err}
}
