package httpx

import (
	"context"
	"net/http"

	"bannedbooks/internal/apperr"
	"bannedbooks/internal/platform/crypto"
)

// BlacklistRepository reports revoked token ids.
type BlacklistRepository interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

var errUnauthorized = apperr.Unauthorized("Unauthorized")

// AuthMiddleware admits requests carrying a valid, unrevoked admin token. A nil
// blacklist disables the revocation check.
func AuthMiddleware(secret string, blacklist BlacklistRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				Error(w, r, errUnauthorized)
				return
			}

			claims, err := crypto.ParseToken(secret, token)
			if err != nil || claims.Role != crypto.RoleAdmin {
				Error(w, r, errUnauthorized)
				return
			}

			if blacklist != nil {
				revoked, err := blacklist.IsBlacklisted(r.Context(), claims.ID)
				if err != nil {
					Error(w, r, apperr.Unexpected("Unable to verify token", err))
					return
				}
				if revoked {
					Error(w, r, errUnauthorized)
					return
				}
			}

			ctx := ContextWithUser(r.Context(), claims.Sub, claims.Role, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
