package ports

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Subject string
	Name    string
	Role    string
}

// TokenVerifier validates a compact bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}
