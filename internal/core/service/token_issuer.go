package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
)

// Claims is the JWT payload issued for an authenticated identity.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	minutes  int
	now      func() time.Time
}

// TokenIssuerOption customises a TokenIssuer.
type TokenIssuerOption func(*TokenIssuer)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) TokenIssuerOption {
	return func(t *TokenIssuer) { t.now = now }
}

func NewTokenIssuer(cfg domain.AuthConfig, opts ...TokenIssuerOption) *TokenIssuer {
	t := &TokenIssuer{
		key:      []byte(cfg.SigningKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		minutes:  cfg.ExpirationMinutes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TokenIssuer) checkConfig() error {
	switch {
	case len(t.key) == 0:
		return fmt.Errorf("%w: token signing key is empty", domain.ErrConfiguration)
	case t.issuer == "":
		return fmt.Errorf("%w: token issuer is empty", domain.ErrConfiguration)
	case t.audience == "":
		return fmt.Errorf("%w: token audience is empty", domain.ErrConfiguration)
	case t.minutes <= 0:
		return fmt.Errorf("%w: token expiration must be positive, got %d", domain.ErrConfiguration, t.minutes)
	}
	return nil
}

// Issue builds a signed token for identity. iat is truncated to whole
// seconds so exp-iat is exactly the configured lifetime.
func (t *TokenIssuer) Issue(identity *domain.Identity) (string, error) {
	if err := t.checkConfig(); err != nil {
		return "", err
	}
	if identity == nil {
		return "", fmt.Errorf("%w: no identity to issue a token for", domain.ErrInvalidInput)
	}

	now := t.now().UTC().Truncate(time.Second)
	claims := Claims{
		Name: identity.DisplayName(),
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(identity.ID, 10),
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(t.minutes) * time.Minute)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, audience and expiry.
func (t *TokenIssuer) Parse(token string) (*Claims, error) {
	if err := t.checkConfig(); err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(t.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

// Verify satisfies ports.TokenVerifier.
func (t *TokenIssuer) Verify(token string) (*ports.TokenClaims, error) {
	claims, err := t.Parse(token)
	if err != nil {
		return nil, err
	}
	return &ports.TokenClaims{Subject: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}
