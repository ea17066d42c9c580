// Package domain contains the core entities of the crew schedule scraper.
// These types are portal-agnostic and are shared by the HTTP layer, the use case and the portal adapter.
package domain

import (
	"github.com/rs/zerolog"
)

// Credentials identify a crew member on one tenant of the crew portal.
// They live only for the duration of a single scrape and are never persisted or logged.
type Credentials struct {
	// UserID is the crew member's portal login
	UserID string

	// Password is the crew member's portal password
	Password string

	// TenantCode selects the airline subdomain (e.g., "ABC" -> abc.flica.net)
	TenantCode string
}

// String hides the secret fields so credentials formatted with %v or %s do not leak.
func (c Credentials) String() string {
	return "Credentials{tenant:" + c.TenantCode + ", userID:[REDACTED], password:[REDACTED]}"
}

// GoString hides the secret fields for %#v.
func (c Credentials) GoString() string {
	return c.String()
}

// MarshalZerologObject exposes only the tenant code to structured logs.
func (c Credentials) MarshalZerologObject(e *zerolog.Event) {
	e.Str("tenant", c.TenantCode)
}

// Secrets returns the values that must never appear in error messages or logs.
// Empty values are skipped.
func (c Credentials) Secrets() []string {
	secrets := make([]string, 0, 2)
	if c.UserID != "" {
		secrets = append(secrets, c.UserID)
	}
	if c.Password != "" {
		secrets = append(secrets, c.Password)
	}
	return secrets
}

// Ensure Credentials implements zerolog.LogObjectMarshaler at compile time.
var _ zerolog.LogObjectMarshaler = Credentials{}
