package domain

import "errors"

var (
	// ErrConfiguration means a required secret or token setting is missing or
	// unparseable. Nothing can be authenticated until it is fixed.
	ErrConfiguration = errors.New("auth configuration error")

	ErrIdentityNotFound   = errors.New("identity not found")
	ErrBadCredential      = errors.New("bad credential")
	ErrDuplicateIdentity  = errors.New("identity already exists")
	ErrStorageUnavailable = errors.New("identity storage not configured")
	ErrStorage            = errors.New("identity storage error")
	ErrCreationFailed     = errors.New("identity creation failed")
	ErrInvalidInput       = errors.New("invalid input")
)
