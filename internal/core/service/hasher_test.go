package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"testing"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

func TestCredentialHasher_Deterministic(t *testing.T) {
	h := NewCredentialHasher("k1")

	first, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical hashes, got %q and %q", first, second)
	}

	raw, err := base64.StdEncoding.DecodeString(first)
	if err != nil {
		t.Fatalf("hash is not base64: %v", err)
	}
	if len(raw) != 64 {
		t.Fatalf("expected a 64-byte HMAC-SHA-512 digest, got %d bytes", len(raw))
	}
}

func TestCredentialHasher_DependsOnSecret(t *testing.T) {
	a, _ := NewCredentialHasher("k1").Hash("Secret123!")
	b, _ := NewCredentialHasher("k2").Hash("Secret123!")
	if a == b {
		t.Fatalf("different secrets must yield different hashes")
	}
}

func TestCredentialHasher_NoCollisionsOnCorpus(t *testing.T) {
	h := NewCredentialHasher("k1")
	seen := make(map[string]string)
	inputs := []string{"", " ", "a", "A", "password", "password ", "Secret123!", "secret123!"}
	for i := 0; i < 500; i++ {
		inputs = append(inputs, fmt.Sprintf("pw-%d", i))
	}

	for _, in := range inputs {
		out, err := h.Hash(in)
		if err != nil {
			t.Fatalf("hash %q: %v", in, err)
		}
		if prev, dup := seen[out]; dup {
			t.Fatalf("collision between %q and %q", prev, in)
		}
		seen[out] = in
	}
}

func TestCredentialHasher_Verify(t *testing.T) {
	h := NewCredentialHasher("k1")
	stored, _ := h.Hash("Secret123!")

	ok, err := h.Verify("Secret123!", stored)
	if err != nil || !ok {
		t.Fatalf("expected match, got %v %v", ok, err)
	}
	ok, err = h.Verify("wrong", stored)
	if err != nil || ok {
		t.Fatalf("expected mismatch, got %v %v", ok, err)
	}
	ok, _ = h.Verify("Secret123!", "")
	if ok {
		t.Fatalf("an empty stored hash must never match")
	}
}

func TestCredentialHasher_EmptySecretIsConfigurationError(t *testing.T) {
	h := NewCredentialHasher("")

	if _, err := h.Hash("x"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if _, err := h.Verify("x", "y"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func FuzzCredentialHasher_RoundTrip(f *testing.F) {
	for _, seed := range []string{"", "Secret123!", "çãé", "a\x00b"} {
		f.Add(seed)
	}
	h := NewCredentialHasher("k1")

	f.Fuzz(func(t *testing.T, s string) {
		stored, err := h.Hash(s)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		if ok, _ := h.Verify(s, stored); !ok {
			t.Fatalf("verify(s, hash(s)) failed for %q", s)
		}
		if ok, _ := h.Verify(s+"x", stored); ok {
			t.Fatalf("verify accepted a different secret for %q", s)
		}
	})
}
