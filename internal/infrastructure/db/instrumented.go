package db

import (
	"context"
	"errors"
	"time"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
	"github.com/techchallenge/fastfood-identity/internal/observability/metrics"
)

// Instrumented records the latency and outcome of every store call.
type Instrumented struct {
	next ports.UserStore
}

func NewInstrumented(next ports.UserStore) *Instrumented {
	return &Instrumented{next: next}
}

func (s *Instrumented) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	start := time.Now()
	identity, err := s.next.FindByEmail(ctx, email)
	observeSince("find_by_email", start, err)
	return identity, err
}

func (s *Instrumented) FindByNationalID(ctx context.Context, nationalID string) (*domain.Identity, error) {
	start := time.Now()
	identity, err := s.next.FindByNationalID(ctx, nationalID)
	observeSince("find_by_national_id", start, err)
	return identity, err
}

func (s *Instrumented) CreateStaff(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	start := time.Now()
	created, err := s.next.CreateStaff(ctx, identity)
	observeSince("create_staff", start, err)
	return created, err
}

func (s *Instrumented) CreateCustomer(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	start := time.Now()
	created, err := s.next.CreateCustomer(ctx, identity)
	observeSince("create_customer", start, err)
	return created, err
}

func (s *Instrumented) CreateBasicUser(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	start := time.Now()
	created, err := s.next.CreateBasicUser(ctx, identity)
	observeSince("create_basic_user", start, err)
	return created, err
}

// Ping forwards to the wrapped store when it supports readiness checks.
func (s *Instrumented) Ping(ctx context.Context) error {
	if p, ok := s.next.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func observeSince(operation string, start time.Time, err error) {
	metrics.StoreOperationDuration.
		WithLabelValues(operation, resultLabel(err)).
		Observe(time.Since(start).Seconds())
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, domain.ErrIdentityNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return metrics.ResultDuplicate
	case errors.Is(err, domain.ErrStorageUnavailable):
		return metrics.ResultUnavailable
	case errors.Is(err, domain.ErrInvalidInput):
		return metrics.ResultInvalid
	}
	return metrics.ResultError
}
