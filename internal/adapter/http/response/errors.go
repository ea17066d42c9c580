package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, NewFailure(MsgInvalidRequestBody))
}

// ValidationError writes a 400 Bad Request response with the given message.
func ValidationError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, NewFailure(message))
}

// Unauthorized writes a 401 Unauthorized response. data is the failed scrape body.
func Unauthorized(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusUnauthorized, data)
}

// ScrapeFailed writes a 500 Internal Server Error response for upstream or internal scrape failures.
func ScrapeFailed(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusInternalServerError, data)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, NewFailure(MsgInternalError))
}
