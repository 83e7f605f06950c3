package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflictDetected = errors.New("booking conflicts with an existing slot")
	ErrInvalidStatus    = errors.New("invalid booking status")
)
