// Package memory is an in-process identity store used for local development
// and as the test double for the service layer.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

// UserStore enforces the same uniqueness and kind rules as the SQL store.
type UserStore struct {
	mu           sync.RWMutex
	nextID       int64
	byID         map[int64]*domain.Identity
	byEmail      map[string]int64
	byNationalID map[string]int64
	now          func() time.Time
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:         make(map[int64]*domain.Identity),
		byEmail:      make(map[string]int64),
		byNationalID: make(map[string]int64),
		now:          time.Now,
	}
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok || s.byID[id].Kind != domain.KindStaff {
		return nil, domain.ErrIdentityNotFound
	}
	return clone(s.byID[id]), nil
}

func (s *UserStore) FindByNationalID(_ context.Context, nationalID string) (*domain.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNationalID[nationalID]
	if !ok || s.byID[id].Kind != domain.KindCustomer {
		return nil, domain.ErrIdentityNotFound
	}
	return clone(s.byID[id]), nil
}

func (s *UserStore) CreateStaff(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	return s.insert(identity, domain.KindStaff)
}

func (s *UserStore) CreateCustomer(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	return s.insert(identity, domain.KindCustomer)
}

func (s *UserStore) CreateBasicUser(_ context.Context, identity *domain.Identity) (*domain.Identity, error) {
	return s.insert(identity, domain.KindStaff)
}

func (s *UserStore) Ping(context.Context) error { return nil }

func (s *UserStore) insert(identity *domain.Identity, kind domain.IdentityKind) (*domain.Identity, error) {
	if identity.Kind != kind {
		return nil, fmt.Errorf("%w: expected %s identity, got %q", domain.ErrInvalidInput, kind, identity.Kind)
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if identity.Email != "" {
		if _, taken := s.byEmail[identity.Email]; taken {
			return nil, fmt.Errorf("%w: email", domain.ErrDuplicateIdentity)
		}
	}
	if identity.NationalID != "" {
		if _, taken := s.byNationalID[identity.NationalID]; taken {
			return nil, fmt.Errorf("%w: national id", domain.ErrDuplicateIdentity)
		}
	}

	s.nextID++
	stored := clone(identity)
	stored.ID = s.nextID
	stored.CreatedAt = s.now().UTC()

	s.byID[stored.ID] = stored
	if stored.Email != "" {
		s.byEmail[stored.Email] = stored.ID
	}
	if stored.NationalID != "" {
		s.byNationalID[stored.NationalID] = stored.ID
	}
	return clone(stored), nil
}

func clone(i *domain.Identity) *domain.Identity {
	c := *i
	return &c
}
