package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setCall struct {
	key string
	ttl time.Duration
}

type mockCmdable struct {
	data map[string]string
	sets []setCall
	err  error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", m.err)
}

func (m *mockCmdable) Set(_ context.Context, key string, _ any, ttl time.Duration) *redis.StatusCmd {
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	m.data[key] = "1"
	m.sets = append(m.sets, setCall{key: key, ttl: ttl})
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRevoker_RevokeAndCheck(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	r := &Revoker{store: mock}

	require.NoError(t, r.Revoke(ctx, "jti-1", 30*time.Minute))
	require.Len(t, mock.sets, 1)
	assert.Equal(t, "engage:revoked:jti-1", mock.sets[0].key)
	assert.Equal(t, 30*time.Minute, mock.sets[0].ttl)

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevoker_TTLExpiradoNoEscribe(t *testing.T) {
	mock := newMockCmdable()
	r := &Revoker{store: mock}
	require.NoError(t, r.Revoke(context.Background(), "jti-1", 0))
	assert.Empty(t, mock.sets)
}

func TestRevoker_ErrorRedis(t *testing.T) {
	mock := newMockCmdable()
	mock.err = errors.New("connection refused")
	r := &Revoker{store: mock}

	assert.Error(t, r.Revoke(context.Background(), "jti-1", time.Minute))
	_, err := r.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
	assert.Error(t, r.Ping(context.Background()))
}

func TestMemoryRevoker_Expira(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryRevoker()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "jti-1", time.Minute))
	revoked, err := m.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = m.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.Error(t, m.Revoke(ctx, " ", time.Minute))
}
