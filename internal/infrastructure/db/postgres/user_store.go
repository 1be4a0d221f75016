package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

// DB is the subset of *pgxpool.Pool the store needs. Each QueryRow call
// acquires a pooled connection and releases it once the row is scanned.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const selectIdentity = `SELECT id, kind, name, surname, COALESCE(email, ''), role, COALESCE(national_id, ''),
       COALESCE(birth_date, DATE '0001-01-01'), COALESCE(credential_hash, ''), created_at
  FROM identities`

const (
	queryFindByEmail      = selectIdentity + ` WHERE email = $1 AND kind = $2`
	queryFindByNationalID = selectIdentity + ` WHERE national_id = $1 AND kind = $2`

	queryInsertIdentity = `INSERT INTO identities (kind, name, surname, email, role, national_id, birth_date, credential_hash)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at`
)

// UserStore persists identities in the identities table.
type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return s.findOne(ctx, "find by email", queryFindByEmail, email, domain.KindStaff)
}

func (s *UserStore) FindByNationalID(ctx context.Context, nationalID string) (*domain.Identity, error) {
	return s.findOne(ctx, "find by national id", queryFindByNationalID, nationalID, domain.KindCustomer)
}

func (s *UserStore) CreateStaff(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	return s.insert(ctx, "create staff", identity, domain.KindStaff)
}

func (s *UserStore) CreateCustomer(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	return s.insert(ctx, "create customer", identity, domain.KindCustomer)
}

func (s *UserStore) CreateBasicUser(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	return s.insert(ctx, "create basic user", identity, domain.KindStaff)
}

func (s *UserStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *UserStore) findOne(ctx context.Context, op, query, key string, kind domain.IdentityKind) (*domain.Identity, error) {
	var (
		identity  domain.Identity
		kindCol   string
		roleCol   string
		birthDate time.Time
	)
	err := s.db.QueryRow(ctx, query, key, string(kind)).Scan(
		&identity.ID,
		&kindCol,
		&identity.Name,
		&identity.Surname,
		&identity.Email,
		&roleCol,
		&identity.NationalID,
		&birthDate,
		&identity.CredentialHash,
		&identity.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}

	identity.Kind = domain.IdentityKind(kindCol)
	identity.Role = domain.Role(roleCol)
	identity.BirthDate = birthDate
	return &identity, nil
}

func (s *UserStore) insert(ctx context.Context, op string, identity *domain.Identity, kind domain.IdentityKind) (*domain.Identity, error) {
	if identity.Kind != kind {
		return nil, fmt.Errorf("%s: %w: expected %s identity, got %q", op, domain.ErrInvalidInput, kind, identity.Kind)
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	created := *identity
	err := s.db.QueryRow(ctx, queryInsertIdentity,
		string(identity.Kind),
		identity.Name,
		identity.Surname,
		nullString(identity.Email),
		string(identity.Role),
		nullString(identity.NationalID),
		nullDate(identity.BirthDate),
		nullString(identity.CredentialHash),
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapWriteErr(op, err)
	}
	return &created, nil
}

func mapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "identities_email_key":
			return fmt.Errorf("%w: email", domain.ErrDuplicateIdentity)
		case "identities_national_id_key":
			return fmt.Errorf("%w: national id", domain.ErrDuplicateIdentity)
		}
		return domain.ErrDuplicateIdentity
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// nullString stores empty optional columns as NULL so the partial unique
// indexes ignore them.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
