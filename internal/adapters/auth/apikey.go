package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"venueops/internal/domain"
)

type bcryptAPIKeyVerifier struct {
	keyHash []byte
}

// NewBcryptAPIKeyVerifier returns an APIKeyVerifier that checks presented
// keys against a bcrypt hash of the configured API key.
func NewBcryptAPIKeyVerifier(keyHash string) domain.APIKeyVerifier {
	return &bcryptAPIKeyVerifier{keyHash: []byte(keyHash)}
}

func (v *bcryptAPIKeyVerifier) VerifyKey(key string) error {
	if len(v.keyHash) == 0 {
		return fmt.Errorf("no api key configured")
	}
	if err := bcrypt.CompareHashAndPassword(v.keyHash, []byte(key)); err != nil {
		return fmt.Errorf("invalid api key")
	}
	return nil
}

// HashAPIKey returns the bcrypt hash of key for storing in configuration.
func HashAPIKey(key string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}
	return string(hash), nil
}
