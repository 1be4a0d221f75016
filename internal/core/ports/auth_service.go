package ports

import (
	"context"
	"time"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

// RegisterStaffInput carries everything needed to create an employee.
type RegisterStaffInput struct {
	Name       string
	Surname    string
	Email      string
	Password   string
	Role       string
	NationalID string
	BirthDate  time.Time
}

// RegisterCustomerInput carries everything needed to create a customer.
type RegisterCustomerInput struct {
	NationalID string
	Name       string
	Surname    string
	Email      string
	BirthDate  time.Time
}

type AuthService interface {
	AuthenticateByCredentials(ctx context.Context, email, password string) (domain.AuthOutcome, error)
	AuthenticateByNationalID(ctx context.Context, nationalID string) (domain.AuthOutcome, error)
	IssueToken(identity *domain.Identity) (string, error)

	RegisterStaff(ctx context.Context, in RegisterStaffInput) (*domain.Identity, error)
	RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*domain.Identity, error)
	RegisterBasicUser(ctx context.Context, email, password, nationalID string) (*domain.Identity, error)
}
