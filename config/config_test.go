package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORAGE_BACKEND", "CATALOG_SOURCE", "LAYOUT_BREAKPOINT", "SESSION_IDLE_TTL", "PRICE_TIER_1"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Same(t, cfg, AppConfig)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StorageBackendRedis, cfg.Storage.Backend)
	assert.Equal(t, CatalogSourceEmbedded, cfg.Catalog.Source)
	assert.Equal(t, 768, cfg.Layout.Breakpoint)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTTL)
	assert.Equal(t, 150.0, cfg.Pricing.Tier1)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SESSION_SECURE_COOKIE", "true")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("STORAGE_WRITE_BEHIND", "true")
	t.Setenv("STORAGE_QUEUE_SIZE", "32")
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("CATALOG_VENUE_ID", "metropolis-arena")
	t.Setenv("LAYOUT_BREAKPOINT", "1024")
	t.Setenv("SESSION_IDLE_TTL", "90s")
	t.Setenv("PRICE_TIER_2", "120.5")
	t.Setenv("STORAGE_KEY_PREFIX", "")
	t.Setenv("CATALOG_PATH", "")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.SecureCookie)
	assert.Equal(t, StorageConfig{Backend: StorageBackendSQLite, KeyPrefix: "seatmap", WriteBehind: true, QueueSize: 32}, cfg.Storage)
	assert.Equal(t, CatalogConfig{Source: CatalogSourcePostgres, VenueID: "metropolis-arena"}, cfg.Catalog)
	assert.Equal(t, 1024, cfg.Layout.Breakpoint)
	assert.Equal(t, 90*time.Second, cfg.Session.IdleTTL)
	assert.Equal(t, 120.5, cfg.Pricing.Tier2)
}

func TestLoadConfig_InvalidValuePanics(t *testing.T) {
	t.Setenv("LAYOUT_BREAKPOINT", "wide")
	assert.Panics(t, func() { LoadConfig() })
}

func TestLoadTestConfig(t *testing.T) {
	cfg := LoadTestConfig()

	assert.Equal(t, "5433", cfg.Database.Port)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, StorageBackendMemory, cfg.Storage.Backend)
	assert.Equal(t, ":memory:", cfg.SQLite.Path)
}
