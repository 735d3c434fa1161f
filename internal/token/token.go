// Package token issues and validates stateless HS256 session tokens.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Typed validation failures. A token failing any check is rejected whole;
// no claim of an invalid token is ever trusted.
var (
	// ErrSignature indicates the signature does not match the service secret.
	ErrSignature = errors.New("token signature invalid")

	// ErrExpired indicates the token is past its expiry.
	ErrExpired = errors.New("token expired")

	// ErrMalformed indicates the token cannot be parsed or carries an
	// unusable subject.
	ErrMalformed = errors.New("token malformed")
)

// Service signs and validates session tokens with a process-wide secret.
// Tokens are never persisted server-side; validity is verifiable from the
// token alone. The trade-off is that there is no server-side revocation:
// logout only removes the client's cookie.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService constructs a token service. The secret is loaded once at
// startup and never rotated at runtime.
func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime (used for cookie max-age).
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a signed HS256 JWT with subject=userID, issued now and
// expiring after the configured TTL.
func (s *Service) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	return signed, exp, err
}

// Validate verifies the signature and expiry and returns the subject user ID.
// Failures map to exactly one of ErrSignature, ErrExpired or ErrMalformed.
func (s *Service) Validate(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	switch {
	case err == nil && tok.Valid:
	case errors.Is(err, jwt.ErrTokenExpired):
		return uuid.Nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return uuid.Nil, ErrSignature
	default:
		return uuid.Nil, ErrMalformed
	}

	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrMalformed
	}
	return id, nil
}
