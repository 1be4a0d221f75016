package ports

import (
	"context"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

// UserStore is the persistence contract for identities.
//
// Implementations return domain.ErrIdentityNotFound on a lookup miss,
// domain.ErrDuplicateIdentity on an email or national id uniqueness
// violation, domain.ErrStorageUnavailable when no backing store is
// configured, and wrap every other driver failure in domain.ErrStorage.
type UserStore interface {
	// FindByEmail looks up staff identities only.
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	// FindByNationalID looks up customer identities only.
	FindByNationalID(ctx context.Context, nationalID string) (*domain.Identity, error)

	CreateStaff(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	CreateCustomer(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	CreateBasicUser(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
}

// Pinger is implemented by stores that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
