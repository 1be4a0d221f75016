package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techchallenge/fastfood-identity/internal/api/middleware"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
)

// ctxClaims extracts the claims injected by the Auth middleware. An empty
// subject or role means the middleware did not run.
func ctxClaims(c echo.Context) (ports.TokenClaims, error) {
	subject, _ := c.Get(middleware.ContextSubject).(string)
	role, _ := c.Get(middleware.ContextRole).(string)
	if subject == "" || role == "" {
		return ports.TokenClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get(middleware.ContextName).(string)
	return ports.TokenClaims{Subject: subject, Name: name, Role: role}, nil
}
