package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
	"github.com/techchallenge/fastfood-identity/internal/observability/metrics"
)

const (
	methodCredentials = "credentials"
	methodNationalID  = "national_id"

	kindLabelStaff    = "staff"
	kindLabelCustomer = "customer"
	kindLabelBasic    = "basic"
)

// AuthService implements authentication and registration for staff and
// customers. It keeps no state besides its immutable collaborators, so a
// single instance is safe for concurrent use.
type AuthService struct {
	store  ports.UserStore
	hasher *CredentialHasher
	tokens *TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(store ports.UserStore, cfg domain.AuthConfig, log zerolog.Logger, opts ...TokenIssuerOption) *AuthService {
	return &AuthService{
		store:  store,
		hasher: NewCredentialHasher(cfg.HashSecret),
		tokens: NewTokenIssuer(cfg, opts...),
		log:    log,
	}
}

// Tokens exposes the issuer so transport middleware can verify tokens with
// the same configuration.
func (s *AuthService) Tokens() *TokenIssuer {
	return s.tokens
}

// AuthenticateByCredentials checks an email/password pair. An unknown email
// and a wrong password produce the same unauthenticated outcome.
func (s *AuthService) AuthenticateByCredentials(ctx context.Context, email, password string) (domain.AuthOutcome, error) {
	identity, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	if err == nil && identity == nil {
		err = domain.ErrIdentityNotFound
	}
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.reject(methodCredentials, domain.ErrIdentityNotFound)
			return domain.Unauthenticated(), nil
		}
		return domain.Unauthenticated(), s.lookupFailed(methodCredentials, err)
	}

	ok, err := s.hasher.Verify(password, identity.CredentialHash)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues(methodCredentials, metrics.ResultError).Inc()
		return domain.Unauthenticated(), err
	}
	if !ok {
		s.reject(methodCredentials, domain.ErrBadCredential)
		return domain.Unauthenticated(), nil
	}

	metrics.AuthAttemptsTotal.WithLabelValues(methodCredentials, metrics.ResultSuccess).Inc()
	s.log.Info().Int64("identity_id", identity.ID).Str("method", methodCredentials).Msg("identity authenticated")
	return domain.Authenticated(identity), nil
}

// AuthenticateByNationalID treats the presence of a customer record with the
// given national id as sufficient proof. No password is involved.
func (s *AuthService) AuthenticateByNationalID(ctx context.Context, nationalID string) (domain.AuthOutcome, error) {
	identity, err := s.store.FindByNationalID(ctx, strings.TrimSpace(nationalID))
	if err == nil && identity == nil {
		err = domain.ErrIdentityNotFound
	}
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.reject(methodNationalID, domain.ErrIdentityNotFound)
			return domain.Unauthenticated(), nil
		}
		return domain.Unauthenticated(), s.lookupFailed(methodNationalID, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues(methodNationalID, metrics.ResultSuccess).Inc()
	s.log.Info().Int64("identity_id", identity.ID).Str("method", methodNationalID).Msg("identity authenticated")
	return domain.Authenticated(identity), nil
}

// IssueToken signs a bearer token for an identity returned by a successful
// authentication.
func (s *AuthService) IssueToken(identity *domain.Identity) (string, error) {
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return "", err
	}
	metrics.TokensIssuedTotal.WithLabelValues(string(identity.Role)).Inc()
	return token, nil
}

// RegisterStaff creates an authenticating employee record.
func (s *AuthService) RegisterStaff(ctx context.Context, in ports.RegisterStaffInput) (*domain.Identity, error) {
	if err := requireFields(map[string]string{
		"name":        in.Name,
		"surname":     in.Surname,
		"email":       in.Email,
		"password":    in.Password,
		"role":        in.Role,
		"national_id": in.NationalID,
	}); err != nil {
		return nil, s.registrationFailed(kindLabelStaff, err)
	}
	if in.BirthDate.IsZero() {
		return nil, s.registrationFailed(kindLabelStaff, fmt.Errorf("%w: birth_date is required", domain.ErrInvalidInput))
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, s.registrationFailed(kindLabelStaff, err)
	}
	if !role.IsStaffRole() {
		return nil, s.registrationFailed(kindLabelStaff, fmt.Errorf("%w: role %q cannot be assigned to staff", domain.ErrInvalidInput, role))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, s.registrationFailed(kindLabelStaff, err)
	}

	identity := &domain.Identity{
		Kind:           domain.KindStaff,
		Name:           strings.TrimSpace(in.Name),
		Surname:        strings.TrimSpace(in.Surname),
		Email:          normalizeEmail(in.Email),
		Role:           role,
		NationalID:     strings.TrimSpace(in.NationalID),
		BirthDate:      in.BirthDate,
		CredentialHash: hash,
	}

	created, err := s.store.CreateStaff(ctx, identity)
	return s.registered(kindLabelStaff, created, err)
}

// RegisterCustomer creates a lookup-only customer record. Customers never
// carry a credential hash.
func (s *AuthService) RegisterCustomer(ctx context.Context, in ports.RegisterCustomerInput) (*domain.Identity, error) {
	if err := requireFields(map[string]string{
		"national_id": in.NationalID,
		"name":        in.Name,
		"surname":     in.Surname,
	}); err != nil {
		return nil, s.registrationFailed(kindLabelCustomer, err)
	}
	if in.BirthDate.IsZero() {
		return nil, s.registrationFailed(kindLabelCustomer, fmt.Errorf("%w: birth_date is required", domain.ErrInvalidInput))
	}

	identity := &domain.Identity{
		Kind:       domain.KindCustomer,
		Name:       strings.TrimSpace(in.Name),
		Surname:    strings.TrimSpace(in.Surname),
		Email:      normalizeEmail(in.Email),
		Role:       domain.RoleCustomer,
		NationalID: strings.TrimSpace(in.NationalID),
		BirthDate:  in.BirthDate,
	}

	created, err := s.store.CreateCustomer(ctx, identity)
	return s.registered(kindLabelCustomer, created, err)
}

// RegisterBasicUser creates a staff record with the User role from just an
// email and password. nationalID may be empty.
func (s *AuthService) RegisterBasicUser(ctx context.Context, email, password, nationalID string) (*domain.Identity, error) {
	if err := requireFields(map[string]string{"email": email, "password": password}); err != nil {
		return nil, s.registrationFailed(kindLabelBasic, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, s.registrationFailed(kindLabelBasic, err)
	}

	identity := &domain.Identity{
		Kind:           domain.KindStaff,
		Email:          normalizeEmail(email),
		Role:           domain.RoleUser,
		NationalID:     strings.TrimSpace(nationalID),
		CredentialHash: hash,
	}

	created, err := s.store.CreateBasicUser(ctx, identity)
	return s.registered(kindLabelBasic, created, err)
}

func (s *AuthService) reject(method string, reason error) {
	result := metrics.ResultNotFound
	if errors.Is(reason, domain.ErrBadCredential) {
		result = metrics.ResultBadCredential
	}
	metrics.AuthAttemptsTotal.WithLabelValues(method, result).Inc()
	s.log.Debug().Str("method", method).Str("reason", result).Msg("authentication rejected")
}

// lookupFailed classifies a store error that is not a plain miss. Storage
// failures are propagated, never folded into an unauthenticated outcome.
func (s *AuthService) lookupFailed(method string, err error) error {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		metrics.AuthAttemptsTotal.WithLabelValues(method, metrics.ResultUnavailable).Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues(method, metrics.ResultError).Inc()
	s.log.Error().Err(err).Str("method", method).Msg("identity lookup failed")
	if errors.Is(err, domain.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}

func (s *AuthService) registered(kind string, created *domain.Identity, err error) (*domain.Identity, error) {
	if err != nil {
		return nil, s.registrationFailed(kind, err)
	}
	if created == nil {
		return nil, s.registrationFailed(kind, errors.New("store returned no identity"))
	}
	metrics.RegistrationsTotal.WithLabelValues(kind, metrics.ResultSuccess).Inc()
	s.log.Info().Int64("identity_id", created.ID).Str("kind", kind).Msg("identity registered")
	return created, nil
}

// registrationFailed records the failure and maps anything outside the
// explicit failure kinds to ErrCreationFailed.
func (s *AuthService) registrationFailed(kind string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		metrics.RegistrationsTotal.WithLabelValues(kind, metrics.ResultInvalid).Inc()
		return err
	case errors.Is(err, domain.ErrDuplicateIdentity):
		metrics.RegistrationsTotal.WithLabelValues(kind, metrics.ResultDuplicate).Inc()
		s.log.Debug().Str("kind", kind).Msg("registration rejected: duplicate identity")
		return err
	case errors.Is(err, domain.ErrStorageUnavailable):
		metrics.RegistrationsTotal.WithLabelValues(kind, metrics.ResultUnavailable).Inc()
		return err
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrStorage):
		metrics.RegistrationsTotal.WithLabelValues(kind, metrics.ResultError).Inc()
		s.log.Error().Err(err).Str("kind", kind).Msg("registration failed")
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(kind, metrics.ResultError).Inc()
	s.log.Error().Err(err).Str("kind", kind).Msg("registration failed")
	return fmt.Errorf("%w: %w", domain.ErrCreationFailed, err)
}

// requireFields reports the first empty field in a stable order.
func requireFields(fields map[string]string) error {
	for _, name := range []string{"name", "surname", "email", "password", "role", "national_id"} {
		v, ok := fields[name]
		if ok && strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
