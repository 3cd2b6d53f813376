// Package session tracks revoked admin tokens.
package session

import (
	"context"
	"time"
)

// Blacklist records token ids that must no longer be accepted.
type Blacklist interface {
	AddToken(ctx context.Context, jti string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}
