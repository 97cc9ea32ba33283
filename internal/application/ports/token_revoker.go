package ports

import (
	"context"
	"time"
)

// TokenRevoker lista de tokens revocados (logout) hasta su expiración natural.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
