package db

import (
	"context"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

// Unavailable stands in for the store when no connection descriptor is
// configured. Every operation fails with domain.ErrStorageUnavailable so the
// process can start without conflating "no database" with "no identity".
type Unavailable struct{}

func (Unavailable) FindByEmail(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrStorageUnavailable
}

func (Unavailable) FindByNationalID(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrStorageUnavailable
}

func (Unavailable) CreateStaff(context.Context, *domain.Identity) (*domain.Identity, error) {
	return nil, domain.ErrStorageUnavailable
}

func (Unavailable) CreateCustomer(context.Context, *domain.Identity) (*domain.Identity, error) {
	return nil, domain.ErrStorageUnavailable
}

func (Unavailable) CreateBasicUser(context.Context, *domain.Identity) (*domain.Identity, error) {
	return nil, domain.ErrStorageUnavailable
}

func (Unavailable) Ping(context.Context) error {
	return domain.ErrStorageUnavailable
}
