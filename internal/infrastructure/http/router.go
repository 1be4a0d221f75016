package http

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/techchallenge/fastfood-identity/internal/core/ports"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/http/handlers"
)

// RegisterHealthRoutes mounts the liveness and readiness probes. They never
// require authentication.
func RegisterHealthRoutes(e *echo.Echo, checks map[string]ports.Pinger, log zerolog.Logger) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(checks, log)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
}
