package domain

import "fmt"

// AuthConfig is loaded once at startup and is never mutated afterwards.
type AuthConfig struct {
	HashSecret        string
	SigningKey        string
	Issuer            string
	Audience          string
	ExpirationMinutes int
}

// Validate reports the first missing setting as ErrConfiguration.
func (c AuthConfig) Validate() error {
	switch {
	case c.HashSecret == "":
		return fmt.Errorf("%w: hashing secret is empty", ErrConfiguration)
	case c.SigningKey == "":
		return fmt.Errorf("%w: token signing key is empty", ErrConfiguration)
	case c.Issuer == "":
		return fmt.Errorf("%w: token issuer is empty", ErrConfiguration)
	case c.Audience == "":
		return fmt.Errorf("%w: token audience is empty", ErrConfiguration)
	case c.ExpirationMinutes <= 0:
		return fmt.Errorf("%w: token expiration must be a positive number of minutes", ErrConfiguration)
	}
	return nil
}
