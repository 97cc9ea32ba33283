// Package redis lista de revocación de tokens (logout) sobre go-redis, con una
// alternativa en memoria para entornos sin Redis.
package redis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/pkg/config"
)

const revokedPrefix = "engage:revoked:"

var (
	_ ports.TokenRevoker = (*Revoker)(nil)
	_ ports.TokenRevoker = (*MemoryRevoker)(nil)
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Exists(context.Context, ...string) *redis.IntCmd
}

// Revoker guarda el jti de cada token revocado con TTL igual a su vida restante.
type Revoker struct {
	store cmdable
	raw   *redis.Client
}

// NewClient abre la conexión y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	raw := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return raw, nil
}

// NewRevoker revocador sobre un cliente ya conectado.
func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{store: client, raw: client}
}

func revokedKey(tokenID string) string {
	return revokedPrefix + tokenID
}

func (r *Revoker) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("token id is required")
	}
	if ttl <= 0 {
		// ya expiró: no hace falta recordarlo
		return nil
	}
	if err := r.store.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis: revoke: %w", err)
	}
	return nil
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.store.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: is revoked: %w", err)
	}
	return n > 0, nil
}

// Ping para el health check.
func (r *Revoker) Ping(ctx context.Context) error {
	return r.store.Ping(ctx).Err()
}

// Close libera la conexión.
func (r *Revoker) Close() error {
	if r.raw == nil {
		return nil
	}
	return r.raw.Close()
}

// MemoryRevoker revocación en proceso; no sobrevive reinicios ni se comparte entre réplicas.
type MemoryRevoker struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{entries: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("token id is required")
	}
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, exp := range m.entries {
		if !now.Before(exp) {
			delete(m.entries, id)
		}
	}
	m.entries[tokenID] = now.Add(ttl)
	return nil
}

func (m *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.entries[tokenID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(exp) {
		delete(m.entries, tokenID)
		return false, nil
	}
	return true, nil
}
