package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/techchallenge/fastfood-identity/internal/core/ports"
	"github.com/techchallenge/fastfood-identity/internal/observability/metrics"
)

// Throttle rejects requests from a client that exceeded the limiter's window
// with 429. Limiter failures let the request through.
func Throttle(limiter ports.LoginLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := c.RealIP()

			allowed, err := limiter.Allow(c.Request().Context(), client)
			if err != nil {
				log.Warn().Err(err).Str("client", client).Msg("login throttle unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.LoginThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}
			return next(c)
		}
	}
}
