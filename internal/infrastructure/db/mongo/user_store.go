package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

const (
	identitiesCollection = "identities"
	countersCollection   = "counters"
	identitySequence     = "identities"

	emailIndex      = "identities_email_key"
	nationalIDIndex = "identities_national_id_key"

	birthDateLayout = "2006-01-02"
)

// UserStore keeps identities in a single collection. Numeric ids come from
// an atomically incremented counter document.
type UserStore struct {
	db         *mongo.Database
	identities *mongo.Collection
	counters   *mongo.Collection
	now        func() time.Time
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{
		db:         db,
		identities: db.Collection(identitiesCollection),
		counters:   db.Collection(countersCollection),
		now:        time.Now,
	}
}

type mongoIdentity struct {
	ID             int64  `bson:"_id"`
	Kind           string `bson:"kind"`
	Name           string `bson:"name"`
	Surname        string `bson:"surname"`
	Email          string `bson:"email,omitempty"`
	Role           string `bson:"role"`
	NationalID     string `bson:"national_id,omitempty"`
	BirthDate      string `bson:"birth_date,omitempty"`
	CredentialHash string `bson:"credential_hash,omitempty"`
	CreatedAt      int64  `bson:"created_at"`
}

// EnsureIndexes creates the unique indexes that back duplicate detection.
// Absent email or national id fields are excluded from the uniqueness check.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.identities.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName(emailIndex).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "national_id", Value: 1}},
			Options: options.Index().
				SetName(nationalIDIndex).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"national_id": bson.M{"$exists": true}}),
		},
	})
	if err != nil {
		return fmt.Errorf("create identity indexes: %w", err)
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	return s.findOne(ctx, "find by email", bson.M{"email": email, "kind": string(domain.KindStaff)})
}

func (s *UserStore) FindByNationalID(ctx context.Context, nationalID string) (*domain.Identity, error) {
	return s.findOne(ctx, "find by national id", bson.M{"national_id": nationalID, "kind": string(domain.KindCustomer)})
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
	return s.db.Client().Ping(ctx, nil)
}

func (s *UserStore) findOne(ctx context.Context, op string, filter bson.M) (*domain.Identity, error) {
	var mi mongoIdentity
	if err := s.identities.FindOne(ctx, filter).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return toDomain(mi), nil
}

func (s *UserStore) insert(ctx context.Context, op string, identity *domain.Identity, kind domain.IdentityKind) (*domain.Identity, error) {
	if identity.Kind != kind {
		return nil, fmt.Errorf("%s: %w: expected %s identity, got %q", op, domain.ErrInvalidInput, kind, identity.Kind)
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	id, err := s.nextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}

	doc := fromDomain(identity)
	doc.ID = id
	doc.CreatedAt = s.now().UTC().Unix()

	if _, err := s.identities.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateErr(err)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return toDomain(doc), nil
}

func (s *UserStore) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": identitySequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next identity id: %w", err)
	}
	return counter.Seq, nil
}

func duplicateErr(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, emailIndex):
		return fmt.Errorf("%w: email", domain.ErrDuplicateIdentity)
	case strings.Contains(msg, nationalIDIndex):
		return fmt.Errorf("%w: national id", domain.ErrDuplicateIdentity)
	}
	return domain.ErrDuplicateIdentity
}

func fromDomain(i *domain.Identity) mongoIdentity {
	doc := mongoIdentity{
		Kind:           string(i.Kind),
		Name:           i.Name,
		Surname:        i.Surname,
		Email:          i.Email,
		Role:           string(i.Role),
		NationalID:     i.NationalID,
		CredentialHash: i.CredentialHash,
	}
	if !i.BirthDate.IsZero() {
		doc.BirthDate = i.BirthDate.Format(birthDateLayout)
	}
	return doc
}

func toDomain(mi mongoIdentity) *domain.Identity {
	identity := &domain.Identity{
		ID:             mi.ID,
		Kind:           domain.IdentityKind(mi.Kind),
		Name:           mi.Name,
		Surname:        mi.Surname,
		Email:          mi.Email,
		Role:           domain.Role(mi.Role),
		NationalID:     mi.NationalID,
		CredentialHash: mi.CredentialHash,
		CreatedAt:      unixToTime(mi.CreatedAt),
	}
	if mi.BirthDate != "" {
		if t, err := time.Parse(birthDateLayout, mi.BirthDate); err == nil {
			identity.BirthDate = t
		}
	}
	return identity
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
