package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techchallenge/fastfood-identity/internal/core/ports"
)

type RegistrationHandler struct {
	authService ports.AuthService
}

func NewRegistrationHandler(authService ports.AuthService) *RegistrationHandler {
	return &RegistrationHandler{authService: authService}
}

// CreateEmployee registers a staff identity.
//
// @Summary      Register an employee
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /employees [post]
func (h *RegistrationHandler) CreateEmployee(c echo.Context) error {
	var req createEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in, err := toStaffInput(req)
	if err != nil {
		return err
	}

	created, err := h.authService.RegisterStaff(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toIdentityResponse(created))
}

// CreateCustomer registers a customer identity. Customers log in with their
// national id only.
//
// @Summary      Register a customer
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /customers [post]
func (h *RegistrationHandler) CreateCustomer(c echo.Context) error {
	var req createCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in, err := toCustomerInput(req)
	if err != nil {
		return err
	}

	created, err := h.authService.RegisterCustomer(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toIdentityResponse(created))
}

// CreateUser registers a basic staff identity with the User role.
//
// @Summary      Register a basic user
// @Tags         registration
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Email, password and optional national_id"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users [post]
func (h *RegistrationHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.authService.RegisterBasicUser(c.Request().Context(), req.Email, req.Password, req.NationalID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toIdentityResponse(created))
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
