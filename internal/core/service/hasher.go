package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"fmt"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

// CredentialHasher derives opaque credential hashes with HMAC-SHA-512 keyed
// by the process-wide hashing secret. The output is deterministic: the same
// secret and input always yield the same base64 string.
type CredentialHasher struct {
	key []byte
}

func NewCredentialHasher(secret string) *CredentialHasher {
	return &CredentialHasher{key: []byte(secret)}
}

// Hash returns the base64-encoded HMAC of plain.
func (h *CredentialHasher) Hash(plain string) (string, error) {
	if len(h.key) == 0 {
		return "", fmt.Errorf("%w: hashing secret is empty", domain.ErrConfiguration)
	}
	mac := hmac.New(sha512.New, h.key)
	mac.Write([]byte(plain))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the hash of plain and compares it with stored.
func (h *CredentialHasher) Verify(plain, stored string) (bool, error) {
	computed, err := h.Hash(plain)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(computed), []byte(stored)), nil
}
