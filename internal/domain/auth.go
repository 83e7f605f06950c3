package domain

import "time"

// TokenIssuer issues tokens (e.g. JWT) for an authenticated API client.
type TokenIssuer interface {
	Issue(clientID string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated client ID.
type TokenVerifier interface {
	Verify(token string) (clientID string, err error)
}

// APIKeyVerifier checks a presented API key against stored credentials.
type APIKeyVerifier interface {
	VerifyKey(key string) error
}
