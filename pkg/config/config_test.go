package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsYSecretos(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("HTTP_PORT", "4000")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 7*24*60, cfg.JWT.RefreshExpiration)
	assert.Equal(t, 15*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.DB.StatementTimeout)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.SMTP.Enabled())
	assert.False(t, cfg.App.IsProduction())
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_SecretosIgualesFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "same")
	t.Setenv("JWT_REFRESH_SECRET", "same")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "engage", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/engage?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_StatementTimeoutSigueAlRequestTimeout(t *testing.T) {
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
	t.Setenv("HTTP_REQUEST_TIMEOUT", "5")
	t.Setenv("DB_MIN_CONNS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.DB.StatementTimeout)
	assert.Equal(t, 0, cfg.DB.MinConns)

	t.Setenv("DB_STATEMENT_TIMEOUT", "30")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.DB.StatementTimeout)
}
