// Package response provides standardized HTTP response builders for the crew schedule API.
// Every body, success or failure, has the shape {success, flights, error}.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Failure is the body of every failed request.
type Failure struct {
	// Success is always false
	Success bool `json:"success"`

	// Flights is always an empty array
	Flights []any `json:"flights"`

	// Error is the human-readable failure description
	Error *string `json:"error"`
}

// Error messages used in API responses.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgInternalError      = "Internal error: an unexpected error occurred"
)

// NewFailure creates a failure body with the given message.
func NewFailure(message string) *Failure {
	return &Failure{
		Success: false,
		Flights: []any{},
		Error:   &message,
	}
}

// JSON writes a JSON response with the given status code and data.
func JSON(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, data)
}

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}
