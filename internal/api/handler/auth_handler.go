package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates staff by email and password, or a customer by national
// id, and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Email and password, or national_id"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	var (
		outcome domain.AuthOutcome
		err     error
	)
	if req.NationalID != "" {
		outcome, err = h.authService.AuthenticateByNationalID(ctx, req.NationalID)
	} else {
		outcome, err = h.authService.AuthenticateByCredentials(ctx, req.Email, req.Password)
	}
	if err != nil {
		return err
	}
	if !outcome.Authenticated {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := h.authService.IssueToken(outcome.Identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me returns the claims of the presented bearer token.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		Subject: claims.Subject,
		Name:    claims.Name,
		Role:    claims.Role,
	})
}
