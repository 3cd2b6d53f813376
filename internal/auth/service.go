package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"bannedbooks/internal/admin"
	"bannedbooks/internal/apperr"
	"bannedbooks/internal/platform/crypto"
	"bannedbooks/internal/session"
)

var ErrInvalidCredentials = apperr.Unauthorized("Invalid username or password")

// AccountFinder looks up admin accounts by name.
type AccountFinder interface {
	ByUsername(ctx context.Context, username string) (admin.Account, error)
}

type Token struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type Service struct {
	secret    string
	ttl       time.Duration
	accounts  AccountFinder
	blacklist session.Blacklist
}

// NewService builds the admin login service. blacklist may be nil, in which case
// logout does not revoke tokens.
func NewService(secret string, ttl time.Duration, accounts AccountFinder, blacklist session.Blacklist) *Service {
	return &Service{
		secret:    secret,
		ttl:       ttl,
		accounts:  accounts,
		blacklist: blacklist,
	}
}

func (s *Service) Login(ctx context.Context, username, password string) (Token, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Token{}, ErrInvalidCredentials
	}

	acct, err := s.accounts.ByUsername(ctx, username)
	if errors.Is(err, admin.ErrNotFound) {
		return Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return Token{}, apperr.Unexpected("Error signing in", err)
	}
	if !crypto.VerifyPassword(acct.PasswordHash, password) {
		return Token{}, ErrInvalidCredentials
	}

	token, _, err := crypto.GenerateToken(s.secret, strconv.FormatInt(acct.ID, 10), crypto.RoleAdmin, s.ttl)
	if err != nil {
		return Token{}, apperr.Unexpected("Error signing in", err)
	}
	return Token{Token: token, ExpiresIn: int(s.ttl.Seconds())}, nil
}

// Logout revokes token until it would have expired anyway.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := crypto.ParseToken(s.secret, token)
	if err != nil {
		return apperr.Unauthorized("Unauthorized")
	}
	if s.blacklist == nil {
		return nil
	}

	expiresAt := time.Now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.blacklist.AddToken(ctx, claims.ID, expiresAt); err != nil {
		return apperr.Unexpected("Error signing out", err)
	}
	return nil
}
