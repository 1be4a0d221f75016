package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

func staff(email, nationalID string) *domain.Identity {
	return &domain.Identity{
		Kind:           domain.KindStaff,
		Name:           "Ana",
		Email:          email,
		Role:           domain.RoleManager,
		NationalID:     nationalID,
		CredentialHash: "hash",
	}
}

func customer(nationalID string) *domain.Identity {
	return &domain.Identity{
		Kind:       domain.KindCustomer,
		Name:       "Joao",
		Role:       domain.RoleCustomer,
		NationalID: nationalID,
	}
}

func TestUserStore_AssignsIncreasingIDs(t *testing.T) {
	s := NewUserStore()
	a, err := s.CreateStaff(context.Background(), staff("a@b.com", ""))
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := s.CreateCustomer(context.Background(), customer("123"))
	if err != nil {
		t.Fatalf("create b: %v", err)
	}
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("unexpected ids: %d %d", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestUserStore_LookupsAreKindScoped(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()
	if _, err := s.CreateStaff(ctx, staff("a@b.com", "555")); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	c := customer("123")
	c.Email = "c@d.com"
	if _, err := s.CreateCustomer(ctx, c); err != nil {
		t.Fatalf("create customer: %v", err)
	}

	if _, err := s.FindByNationalID(ctx, "555"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("staff must not be found by national id, got %v", err)
	}
	if _, err := s.FindByEmail(ctx, "c@d.com"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("customer must not be found by email, got %v", err)
	}
	if got, err := s.FindByEmail(ctx, "a@b.com"); err != nil || got.Kind != domain.KindStaff {
		t.Fatalf("expected staff by email, got %+v %v", got, err)
	}
	if got, err := s.FindByNationalID(ctx, "123"); err != nil || got.Kind != domain.KindCustomer {
		t.Fatalf("expected customer by national id, got %+v %v", got, err)
	}
}

func TestUserStore_UniquenessAcrossKinds(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()
	if _, err := s.CreateStaff(ctx, staff("a@b.com", "123")); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if _, err := s.CreateCustomer(ctx, customer("123")); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected duplicate national id, got %v", err)
	}
	if _, err := s.CreateBasicUser(ctx, staff("a@b.com", "")); !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestUserStore_ReturnsCopies(t *testing.T) {
	s := NewUserStore()
	ctx := context.Background()
	created, _ := s.CreateStaff(ctx, staff("a@b.com", ""))
	created.Name = "mutated"

	got, _ := s.FindByEmail(ctx, "a@b.com")
	if got.Name != "Ana" {
		t.Fatalf("store leaked internal state: %q", got.Name)
	}
}

func TestUserStore_RejectsKindMismatch(t *testing.T) {
	s := NewUserStore()
	if _, err := s.CreateCustomer(context.Background(), staff("a@b.com", "")); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUserStore_ConcurrentDuplicateRegistration(t *testing.T) {
	s := NewUserStore()
	const n = 32

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateStaff(context.Background(), staff("race@x.com", fmt.Sprintf("id-%d", i)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrDuplicateIdentity):
				dupes++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if succeeded != 1 || dupes != n-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d and %d", n-1, succeeded, dupes)
	}
}
