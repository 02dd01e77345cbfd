package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "storefront")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "4200", cfg.HTTPPort)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "@every 5m", cfg.StatsCron)
	assert.True(t, cfg.AutoMigrate)
	assert.False(t, cfg.CacheEnabled())
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "shop", DBPort: 5433, DBSSLMode: "disable"}

	assert.Equal(t, "host=db user=u password=p dbname=shop port=5433 sslmode=disable", cfg.DSN())
}

func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := Config{CORSOrigins: "https://shop.example, ,http://localhost:3000"}

	assert.Equal(t, []string{"https://shop.example", "http://localhost:3000"}, cfg.AllowedOrigins())
}
