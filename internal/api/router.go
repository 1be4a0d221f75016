package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/techchallenge/fastfood-identity/docs"
	"github.com/techchallenge/fastfood-identity/internal/api/handler"
	"github.com/techchallenge/fastfood-identity/internal/api/middleware"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
	infrahttp "github.com/techchallenge/fastfood-identity/internal/infrastructure/http"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	AuthService ports.AuthService
	Verifier    ports.TokenVerifier
	// Limiter throttles POST /auth/login when set.
	Limiter ports.LoginLimiter
	// Checks are pinged by the readiness probe, keyed by dependency name.
	Checks map[string]ports.Pinger
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	// TrustProxy takes the client address from X-Forwarded-For when the
	// request arrives through a private or loopback proxy. Otherwise the
	// connection's remote address is used and forwarding headers are ignored.
	TrustProxy bool
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	if deps.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	} else {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "identity_http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	registrationHandler := handler.NewRegistrationHandler(deps.AuthService)

	// --- Auth routes ---
	var loginMiddleware []echo.MiddlewareFunc
	if deps.Limiter != nil {
		loginMiddleware = append(loginMiddleware, middleware.Throttle(deps.Limiter, deps.Log))
	}
	e.POST("/auth/login", authHandler.Login, loginMiddleware...)
	e.GET("/auth/me", authHandler.Me, middleware.Auth(deps.Verifier))

	// --- Registration routes ---
	e.POST("/employees", registrationHandler.CreateEmployee)
	e.POST("/customers", registrationHandler.CreateCustomer)
	e.POST("/users", registrationHandler.CreateUser)

	// --- Operational routes (no auth required) ---
	infrahttp.RegisterHealthRoutes(e, deps.Checks, deps.Log)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
