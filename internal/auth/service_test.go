package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"bannedbooks/internal/admin"
	"bannedbooks/internal/apperr"
	"bannedbooks/internal/platform/crypto"
	"bannedbooks/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type fakeAccounts struct {
	accounts map[string]admin.Account
	err      error
}

func (f fakeAccounts) ByUsername(_ context.Context, username string) (admin.Account, error) {
	if f.err != nil {
		return admin.Account{}, f.err
	}
	a, ok := f.accounts[username]
	if !ok {
		return admin.Account{}, admin.ErrNotFound
	}
	return a, nil
}

func newAccounts(t *testing.T) fakeAccounts {
	t.Helper()
	hash, err := crypto.HashPassword("Sup3r-secret!")
	require.NoError(t, err)
	return fakeAccounts{accounts: map[string]admin.Account{
		"root": {ID: 7, Username: "root", PasswordHash: hash},
	}}
}

func newBlacklist(t *testing.T) *session.RedisBlacklist {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisBlacklist(client)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewService(secret, time.Hour, newAccounts(t), nil)

	t.Run("valid credentials", func(t *testing.T) {
		tok, err := svc.Login(ctx, "root", "Sup3r-secret!")
		require.NoError(t, err)
		assert.Equal(t, 3600, tok.ExpiresIn)

		claims, err := crypto.ParseToken(secret, tok.Token)
		require.NoError(t, err)
		assert.Equal(t, "7", claims.Sub)
		assert.Equal(t, crypto.RoleAdmin, claims.Role)
	})

	for name, creds := range map[string][2]string{
		"wrong password": {"root", "nope"},
		"unknown user":   {"ghost", "Sup3r-secret!"},
		"blank":          {" ", ""},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, creds[0], creds[1])
			assert.Equal(t, http.StatusUnauthorized, apperr.Code(err))
		})
	}

	t.Run("store failure", func(t *testing.T) {
		broken := NewService(secret, time.Hour, fakeAccounts{err: errors.New("db down")}, nil)
		_, err := broken.Login(ctx, "root", "Sup3r-secret!")
		assert.Equal(t, http.StatusInternalServerError, apperr.Code(err))
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token", func(t *testing.T) {
		bl := newBlacklist(t)
		svc := NewService(secret, time.Hour, newAccounts(t), bl)

		tok, err := svc.Login(ctx, "root", "Sup3r-secret!")
		require.NoError(t, err)
		require.NoError(t, svc.Logout(ctx, tok.Token))

		claims, err := crypto.ParseToken(secret, tok.Token)
		require.NoError(t, err)
		revoked, err := bl.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("without a blacklist", func(t *testing.T) {
		svc := NewService(secret, time.Hour, newAccounts(t), nil)
		tok, err := svc.Login(ctx, "root", "Sup3r-secret!")
		require.NoError(t, err)
		assert.NoError(t, svc.Logout(ctx, tok.Token))
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := NewService(secret, time.Hour, newAccounts(t), newBlacklist(t))
		err := svc.Logout(ctx, "garbage")
		assert.Equal(t, http.StatusUnauthorized, apperr.Code(err))
	})
}
