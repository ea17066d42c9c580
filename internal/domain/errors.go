package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every failure a scrape can report.
type ErrorKind int

const (
	// KindInternal is a defect inside the scraper itself (e.g., a normalizer panic).
	KindInternal ErrorKind = iota

	// KindAuthentication means bad credentials or a session the portal never accepted.
	KindAuthentication

	// KindTransport means network failure, timeout or an unexpected upstream response.
	KindTransport
)

// String returns the kind name used in logs.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindTransport:
		return "transport"
	default:
		return "internal"
	}
}

// Sentinel errors, one per kind. ScrapeError matches them with errors.Is.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrTransport      = errors.New("upstream portal unavailable")
	ErrInternal       = errors.New("internal scraper error")
)

// Causes reported by the portal adapter.
var (
	// ErrInvalidCredentials is returned when the login response carries a failure marker.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionRejected is returned when a schedule request shows the login never took effect.
	ErrSessionRejected = errors.New("portal rejected the session")

	// ErrLoginRequired is returned when a schedule is requested before Login.
	ErrLoginRequired = errors.New("login required before fetching schedules")
)

// ScrapeError is the classified error returned by a scrape operation.
type ScrapeError struct {
	// Kind is the failure class
	Kind ErrorKind

	// Op names the step that failed (e.g., "login", "fetch 2026-03")
	Op string

	// Err is the underlying cause
	Err error
}

// Error implements the error interface.
func (e *ScrapeError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error during %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ScrapeError) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrInternal:
		return e.Kind == KindInternal
	}
	return false
}

// NewAuthenticationError creates an authentication-class ScrapeError.
func NewAuthenticationError(op string, err error) *ScrapeError {
	return &ScrapeError{Kind: KindAuthentication, Op: op, Err: err}
}

// NewTransportError creates a transport-class ScrapeError.
func NewTransportError(op string, err error) *ScrapeError {
	return &ScrapeError{Kind: KindTransport, Op: op, Err: err}
}

// NewInternalError creates an internal-class ScrapeError.
func NewInternalError(op string, err error) *ScrapeError {
	return &ScrapeError{Kind: KindInternal, Op: op, Err: err}
}

// StatusError records an unexpected upstream HTTP status.
type StatusError struct {
	Code int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// IsAuthStatus reports whether the portal answered 401 or 403.
func (e *StatusError) IsAuthStatus() bool {
	return IsAuthStatus(e.Code)
}

// IsAuthStatus reports whether code is 401 Unauthorized or 403 Forbidden.
func IsAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
