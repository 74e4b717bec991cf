package testutil

import (
	"context"
	"fmt"
	"seatmap/config"
	"seatmap/internal/database"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SetupDatabase 連線測試用 Postgres；連不上時跳過測試
func SetupDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	cfg := config.LoadTestConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// SetupRedisOnly 僅初始化 Redis，用於只依賴 Redis 的測試；連不上時跳過測試
func SetupRedisOnly(t *testing.T) *redis.Client {
	t.Helper()
	cfg := config.LoadTestConfig()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		t.Skipf("test redis unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := rdb.FlushDB(context.Background()).Err(); err != nil {
			t.Logf("flush test redis: %v", err)
		}
		_ = rdb.Close()
	})
	return rdb
}

// RedisAddr 測試 Redis 位址，供訊息輸出使用
func RedisAddr() string {
	cfg := config.LoadTestConfig()
	return fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)
}
