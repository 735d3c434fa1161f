// Package service contains application services for authentication and todos.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"todoweb/internal/crypto"
	"todoweb/internal/errs"
	"todoweb/internal/limiter"
	"todoweb/internal/model"
	"todoweb/internal/repository"
	"todoweb/internal/token"
)

// MinPasswordLen is the minimum accepted password length at registration.
const MinPasswordLen = 8

// AuthService defines registration, login and identity resolution.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	// Login verifies credentials with rate limiting by (email, ip) and
	// issues a session token.
	Login(ctx context.Context, email, password, ip string) (tok string, expiresAt time.Time, err error)
	// ResolveUser maps a validated token subject back to a stored user.
	ResolveUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Service
	lim    limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Service, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim}
}

// Register validates input, hashes the password and creates the user.
// The email is lowercased before the uniqueness probe and the insert, so
// login lookups stay a single indexed equality.
func (s *AuthServiceImpl) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", errs.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", errs.ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, MinPasswordLen)
	}

	inUse, err := s.users.EmailInUse(ctx, email)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, errs.ErrAlreadyExists
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uid,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	// The unique index still backs the pre-insert probe against races.
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login authenticates with rate limiting by (email, ip). Unknown email,
// wrong password and corrupted stored hashes all surface as
// errs.ErrUnauthorized so callers cannot distinguish them.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", time.Time{}, err
	}
	if !allowed {
		return "", time.Time{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	ok := false
	if err == nil {
		ok, err = crypto.VerifyPassword(password, u.PasswordHash)
		if errors.Is(err, errs.ErrIntegrity) {
			// corrupted record: authentication failure, not a crash
			ok, err = false, nil
		}
	} else if errors.Is(err, errs.ErrNotFound) {
		err = nil
	}
	if err != nil {
		return "", time.Time{}, err
	}
	if !ok {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return "", time.Time{}, errs.ErrRateLimited
		}
		return "", time.Time{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	tok, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// ResolveUser loads the user referenced by a token subject. A missing user
// (deleted since the token was issued) surfaces as errs.ErrUnauthorized.
func (s *AuthServiceImpl) ResolveUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.ErrUnauthorized
	}
	return u, err
}
