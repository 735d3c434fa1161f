// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or belongs
	// to another owner. The two cases are indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation indicates rejected user input.
	ErrValidation = errors.New("validation failed")

	// ErrIntegrity indicates a corrupted stored record, such as a password
	// hash that no longer parses. Treated as an authentication failure.
	ErrIntegrity = errors.New("integrity error")
)
