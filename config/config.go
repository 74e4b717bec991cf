package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	Catalog  CatalogConfig
	Storage  StorageConfig
	Pricing  PricingConfig
	Layout   LayoutConfig
	Session  SessionConfig
}

type ServerConfig struct {
	Port     string
	Mode     string
	LogLevel string
	// SecureCookie 只在 HTTPS 下送出 session cookie
	SecureCookie bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SQLiteConfig struct {
	Path string
}

// CatalogSource 場館資料來源
type CatalogSource string

const (
	CatalogSourceEmbedded CatalogSource = "embedded"
	CatalogSourceFile     CatalogSource = "file"
	CatalogSourcePostgres CatalogSource = "postgres"
)

type CatalogConfig struct {
	Source  CatalogSource
	Path    string
	VenueID string
}

// StorageBackend 選位持久化後端
type StorageBackend string

const (
	StorageBackendMemory StorageBackend = "memory"
	StorageBackendRedis  StorageBackend = "redis"
	StorageBackendSQLite StorageBackend = "sqlite"
)

type StorageConfig struct {
	Backend     StorageBackend
	KeyPrefix   string
	WriteBehind bool
	QueueSize   int
}

type PricingConfig struct {
	Tier1 float64
	Tier2 float64
	Tier3 float64
}

type LayoutConfig struct {
	Breakpoint int
}

type SessionConfig struct {
	IdleTTL time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	// .env 不存在時直接使用環境變數
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		SQLite:   SQLiteConfig{Path: getEnv("SQLITE_PATH", "seatmap.db")},
		Catalog:  GetCatalogConfig(),
		Storage:  GetStorageConfig(),
		Pricing:  GetPricingConfig(),
		Layout:   LayoutConfig{Breakpoint: getEnvInt("LAYOUT_BREAKPOINT", 768)},
		Session:  SessionConfig{IdleTTL: getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute)},
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "0", Mode: "test", LogLevel: "debug"},
		Database: *testConfig,
		Redis:    testRedisConfig,
		SQLite:   SQLiteConfig{Path: ":memory:"},
		Catalog:  CatalogConfig{Source: CatalogSourceEmbedded},
		Storage: StorageConfig{
			Backend:   StorageBackendMemory,
			KeyPrefix: "seatmap-test",
			QueueSize: 16,
		},
		Pricing: PricingConfig{Tier1: 150, Tier2: 100, Tier3: 60},
		Layout:  LayoutConfig{Breakpoint: 768},
		Session: SessionConfig{IdleTTL: time.Minute},
	}
}

func GetServerConfig() ServerConfig {
	secure, err := strconv.ParseBool(getEnv("SESSION_SECURE_COOKIE", "false"))
	if err != nil {
		panic(err)
	}

	return ServerConfig{
		Port:         getEnv("SERVER_PORT", "8080"),
		Mode:         getEnv("GIN_MODE", "release"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		SecureCookie: secure,
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}
}

func GetCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Source:  CatalogSource(getEnv("CATALOG_SOURCE", string(CatalogSourceEmbedded))),
		Path:    getEnv("CATALOG_PATH", ""),
		VenueID: getEnv("CATALOG_VENUE_ID", ""),
	}
}

func GetStorageConfig() StorageConfig {
	writeBehind, err := strconv.ParseBool(getEnv("STORAGE_WRITE_BEHIND", "false"))
	if err != nil {
		panic(err)
	}

	return StorageConfig{
		Backend:     StorageBackend(getEnv("STORAGE_BACKEND", string(StorageBackendRedis))),
		KeyPrefix:   getEnv("STORAGE_KEY_PREFIX", "seatmap"),
		WriteBehind: writeBehind,
		QueueSize:   getEnvInt("STORAGE_QUEUE_SIZE", 256),
	}
}

func GetPricingConfig() PricingConfig {
	return PricingConfig{
		Tier1: getEnvFloat("PRICE_TIER_1", 150),
		Tier2: getEnvFloat("PRICE_TIER_2", 100),
		Tier3: getEnvFloat("PRICE_TIER_3", 60),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		panic(err)
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
