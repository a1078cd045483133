package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the dashboard.
type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Logger  LoggerConfig
	Storage StorageConfig
}

// AppConfig controls local server behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// BackendConfig points at the dispatch backend API.
type BackendConfig struct {
	BaseURL      string
	TimeoutMS    int
	MaxTimeoutMS int
}

// RedisConfig holds Redis connection values for the screen cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig controls screen cache expiry.
type CacheConfig struct {
	TTLSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// StorageConfig locates the fallback credential store on disk.
type StorageConfig struct {
	StateDir string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "dispatch-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "127.0.0.1"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			// Empty base URL means callers must pass absolute URLs (same-origin deploys).
			BaseURL:      getEnv("BACKEND_BASE_URL", ""),
			TimeoutMS:    getEnvAsInt("BACKEND_TIMEOUT_MS", 10000),
			MaxTimeoutMS: getEnvAsInt("BACKEND_MAX_TIMEOUT_MS", 40000),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Cache: CacheConfig{
			TTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 900),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			StateDir: getEnv("DASHBOARD_STATE_DIR", defaultStateDir()),
		},
	}

	return cfg, nil
}

// Addr returns the local HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured local request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the default deadline applied to backend calls.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.TimeoutMS) * time.Millisecond
}

// MaxTimeout caps per-call timeout overrides for large result sets.
func (b BackendConfig) MaxTimeout() time.Duration {
	if b.MaxTimeoutMS <= 0 {
		return 40 * time.Second
	}
	return time.Duration(b.MaxTimeoutMS) * time.Millisecond
}

// TTL returns the screen cache expiry.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.TTLSeconds) * time.Second
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".dispatch-dashboard"
	}
	return filepath.Join(base, "dispatch-dashboard")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
