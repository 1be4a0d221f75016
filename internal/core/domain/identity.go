package domain

import (
	"fmt"
	"strings"
	"time"
)

// IdentityKind separates authenticating staff records from lookup-only customers.
type IdentityKind string

const (
	KindStaff    IdentityKind = "staff"
	KindCustomer IdentityKind = "customer"
)

// Role is the closed set of roles carried in the token "role" claim.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleUser     Role = "User"
	RoleCustomer Role = "Customer"
)

var knownRoles = []Role{RoleAdmin, RoleManager, RoleUser, RoleCustomer}

// ParseRole matches s against the known roles, ignoring case and surrounding space.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range knownRoles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

// IsStaffRole reports whether r may be assigned to a staff identity.
func (r Role) IsStaffRole() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

// Identity is a staff or customer record.
type Identity struct {
	ID             int64        `json:"id"`
	Kind           IdentityKind `json:"kind"`
	Name           string       `json:"name,omitempty"`
	Surname        string       `json:"surname,omitempty"`
	Email          string       `json:"email,omitempty"`
	Role           Role         `json:"role"`
	NationalID     string       `json:"national_id,omitempty"`
	BirthDate      time.Time    `json:"-"`
	CredentialHash string       `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
}

// DisplayName is the value carried in the token "name" claim. Basic users
// registered without a name fall back to their email.
func (i *Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// Validate checks the structural invariants every stored identity must hold:
// a credential hash is present iff the identity is staff.
func (i *Identity) Validate() error {
	switch i.Kind {
	case KindStaff:
		if i.CredentialHash == "" {
			return fmt.Errorf("%w: staff identity without credential hash", ErrInvalidInput)
		}
		if i.Email == "" {
			return fmt.Errorf("%w: staff identity without email", ErrInvalidInput)
		}
		if !i.Role.IsStaffRole() {
			return fmt.Errorf("%w: role %q is not a staff role", ErrInvalidInput, i.Role)
		}
	case KindCustomer:
		if i.CredentialHash != "" {
			return fmt.Errorf("%w: customer identity must not carry a credential hash", ErrInvalidInput)
		}
		if i.NationalID == "" {
			return fmt.Errorf("%w: customer identity without national id", ErrInvalidInput)
		}
		if i.Role != RoleCustomer {
			return fmt.Errorf("%w: customer identity with role %q", ErrInvalidInput, i.Role)
		}
	default:
		return fmt.Errorf("%w: unknown identity kind %q", ErrInvalidInput, i.Kind)
	}
	return nil
}

// AuthOutcome is the result of an authentication attempt. An unauthenticated
// outcome never carries an identity, whatever the reason.
type AuthOutcome struct {
	Authenticated bool
	Identity      *Identity
}

// Authenticated builds a successful outcome for id.
func Authenticated(id *Identity) AuthOutcome {
	return AuthOutcome{Authenticated: true, Identity: id}
}

// Unauthenticated is the single failed-outcome shape.
func Unauthenticated() AuthOutcome {
	return AuthOutcome{}
}
