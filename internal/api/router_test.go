package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
	"github.com/techchallenge/fastfood-identity/internal/core/service"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/db"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/db/memory"
)

type countingLimiter struct {
	max  int
	seen map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, client string) (bool, error) {
	l.seen[client]++
	return l.seen[client] <= l.max, nil
}

func newTestRouter(t *testing.T, store ports.UserStore, limiter ports.LoginLimiter) *echo.Echo {
	t.Helper()
	return newTestRouterWith(t, store, limiter, false)
}

func newTestRouterWith(t *testing.T, store ports.UserStore, limiter ports.LoginLimiter, trustProxy bool) *echo.Echo {
	t.Helper()
	svc := service.NewAuthService(store, domain.AuthConfig{
		HashSecret:        "k1",
		SigningKey:        "signing-key",
		Issuer:            "TestIssuer",
		Audience:          "TestAudience",
		ExpirationMinutes: 60,
	}, zerolog.Nop())

	checks := map[string]ports.Pinger{}
	if p, ok := store.(ports.Pinger); ok {
		checks["store"] = p
	}
	return NewRouter(Deps{
		AuthService: svc,
		Verifier:    svc.Tokens(),
		Limiter:     limiter,
		Checks:      checks,
		Registerer:  prometheus.NewRegistry(),
		TrustProxy:  trustProxy,
		Log:         zerolog.Nop(),
	})
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_EmployeeLoginAndMe(t *testing.T) {
	e := newTestRouter(t, memory.NewUserStore(), nil)

	rec := do(e, http.MethodPost, "/employees",
		`{"name":"Ana","surname":"Souza","email":"ana@example.com","password":"Secret123!","role":"Admin","national_id":"12345678900","birth_date":"1990-05-17"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/employees",
		`{"name":"Ana","surname":"Souza","email":"ana@example.com","password":"x","role":"Admin","national_id":"999","birth_date":"1990-05-17"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"Secret123!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	rec = do(e, http.MethodGet, "/auth/me", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sub":"1","name":"Ana","role":"Admin"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CustomerLoginByNationalID(t *testing.T) {
	e := newTestRouter(t, memory.NewUserStore(), nil)

	rec := do(e, http.MethodPost, "/auth/login", `{"national_id":"123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/customers",
		`{"national_id":"123","name":"Joao","surname":"Lima","email":"joao@example.com","birth_date":"2001-01-02"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPost, "/auth/login", `{"cpf":"123"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_BasicUser(t *testing.T) {
	e := newTestRouter(t, memory.NewUserStore(), nil)

	rec := do(e, http.MethodPost, "/users", `{"email":"u@example.com","password":"pw"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"role":"User"`)

	rec = do(e, http.MethodPost, "/auth/login", `{"email":"u@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_StoreUnavailable(t *testing.T) {
	e := newTestRouter(t, db.Unavailable{}, nil)

	rec := do(e, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"x"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(e, http.MethodPost, "/users", `{"email":"u@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(e, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = do(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginThrottle(t *testing.T) {
	limiter := &countingLimiter{max: 2, seen: map[string]int{}}
	e := newTestRouter(t, memory.NewUserStore(), limiter)

	for i := 0; i < 2; i++ {
		rec := do(e, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"x"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := do(e, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"x"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Registration is not throttled.
	rec = do(e, http.MethodPost, "/users", `{"email":"u@example.com","password":"pw"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func loginFrom(e *echo.Echo, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"national_id":"404"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRouter_LoginThrottle_IgnoresForwardedForByDefault(t *testing.T) {
	limiter := &countingLimiter{max: 2, seen: map[string]int{}}
	e := newTestRouter(t, memory.NewUserStore(), limiter)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		codes = append(codes, loginFrom(e, "203.0.113.7:4000", fmt.Sprintf("198.51.100.%d", i)))
	}
	assert.Equal(t, []int{401, 401, 429, 429}, codes)
	assert.Equal(t, map[string]int{"203.0.113.7": 4}, limiter.seen)
}

func TestRouter_LoginThrottle_TrustedProxy(t *testing.T) {
	limiter := &countingLimiter{max: 1, seen: map[string]int{}}
	e := newTestRouterWith(t, memory.NewUserStore(), limiter, true)

	assert.Equal(t, http.StatusUnauthorized, loginFrom(e, "10.0.0.5:4000", "198.51.100.1"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(e, "10.0.0.5:4000", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(e, "10.0.0.5:4000", "198.51.100.1"))

	// A public peer is not a proxy, so its forwarding header is not trusted.
	assert.Equal(t, http.StatusUnauthorized, loginFrom(e, "203.0.113.9:4000", "198.51.100.3"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(e, "203.0.113.9:4000", "198.51.100.4"))
}

func TestRouter_Metrics(t *testing.T) {
	e := newTestRouter(t, memory.NewUserStore(), nil)
	_ = do(e, http.MethodPost, "/auth/login", `{"email":"a@b.com","password":"x"}`, "")

	rec := do(e, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "identity_auth_attempts_total")
}
