package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Options configures the middleware stack.
type Options struct {
	// AllowedOrigins lists CORS origins; "*" allows any
	AllowedOrigins []string

	// BodyLimit caps request bodies (echo size notation, e.g. "64K")
	BodyLimit string

	Recovery RecoveryConfig
}

// DefaultOptions returns permissive CORS, a 64K body limit and full panic logging.
func DefaultOptions() Options {
	return Options{
		AllowedOrigins: []string{"*"},
		BodyLimit:      "64K",
		Recovery:       DefaultRecoveryConfig(),
	}
}

// Setup registers all middleware on the Echo instance in the correct order.
// The order is important:
//  1. RequestID - First, to generate/propagate request ID for all subsequent logging
//  2. RequestLogger - Second, logs all requests with request ID
//  3. Recover - Third, catches panics and returns 500 (wraps handlers)
//  4. CORS and BodyLimit - browser access rules and request size cap
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger, opts Options) {
	for _, mw := range ChainWithOptions(log, opts) {
		e.Use(mw)
	}
}

// Chain returns the default middleware as a slice for use with route groups.
func Chain(log zerolog.Logger) []echo.MiddlewareFunc {
	return ChainWithOptions(log, DefaultOptions())
}

// ChainWithOptions returns the configured middleware as a slice.
func ChainWithOptions(log zerolog.Logger, opts Options) []echo.MiddlewareFunc {
	chain := []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		RecoverWithConfig(log, opts.Recovery),
	}

	if len(opts.AllowedOrigins) > 0 {
		chain = append(chain, echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAccept, RequestIDHeader},
			ExposeHeaders: []string{RequestIDHeader},
		}))
	}
	if opts.BodyLimit != "" {
		chain = append(chain, echomw.BodyLimit(opts.BodyLimit))
	}
	return chain
}
