// Package http provides the HTTP handler layer for the crew schedule API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"regexp"
	"strings"
)

// ScrapeRequest represents the request body for a schedule scrape.
type ScrapeRequest struct {
	// UserID is the crew member's portal login
	UserID string `json:"userID" example:"123456"`

	// Password is the crew member's portal password
	Password string `json:"password" example:"secret"`

	// AirlineCode selects the tenant portal (e.g., "ual" for ual.flica.net)
	AirlineCode string `json:"airlineCode,omitempty" example:"ual"`

	// TenantCode is accepted as a synonym of AirlineCode
	TenantCode string `json:"tenantCode,omitempty" example:""`
}

// A tenant code becomes a subdomain, so it must be a single DNS label.
var tenantCodePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`

	// Missing marks a required field that was absent
	Missing bool `json:"-"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Message()
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// AddMissing records a required field that was not provided.
func (v *ValidationErrors) AddMissing(field string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: field + " is required",
		Missing: true,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map keyed by field.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Message renders all errors as one caller-facing sentence,
// e.g. "Missing required fields: userID, password".
func (v *ValidationErrors) Message() string {
	var missing, invalid []string
	for _, e := range v.Errors {
		if e.Missing {
			missing = append(missing, e.Field)
		} else {
			invalid = append(invalid, e.Message)
		}
	}

	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(missing, ", "))
	}
	parts = append(parts, invalid...)
	return strings.Join(parts, "; ")
}

// Tenant returns the tenant code from whichever field carries it.
func (r *ScrapeRequest) Tenant() string {
	if code := strings.TrimSpace(r.AirlineCode); code != "" {
		return code
	}
	return strings.TrimSpace(r.TenantCode)
}

// Validate checks that all three inputs are present and the tenant code is usable.
func (r *ScrapeRequest) Validate() error {
	errs := &ValidationErrors{}

	if strings.TrimSpace(r.UserID) == "" {
		errs.AddMissing("userID")
	}
	if r.Password == "" {
		errs.AddMissing("password")
	}

	tenant := r.Tenant()
	switch {
	case tenant == "":
		errs.AddMissing("airlineCode")
	case !tenantCodePattern.MatchString(tenant):
		errs.Add("airlineCode", "airlineCode must contain only letters, digits and inner hyphens (max 63 characters)")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
