package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the process configuration for every service binary.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	JWT        JWTConfig        `json:"jwt"`
	Cache      CacheConfig      `json:"cache"`
	RateLimits RateLimitsConfig `json:"rateLimits"`
	Realtime   RealtimeConfig   `json:"realtime"`
	App        AppConfig        `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host  string `json:"host"`
	Port  int    `json:"port"`
	Debug bool   `json:"debug"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Postgres PostgreSQLConfig `json:"postgres"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	ConnectTimeout  int           `json:"connectTimeout"`
}

// JWTConfig holds token signing configuration.
// Tokens are HS256 signed with a shared secret; every service that
// verifies tokens must carry the same secret.
type JWTConfig struct {
	Secret     string        `json:"secret"`
	Expiration time.Duration `json:"expiration"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled bool          `json:"enabled"`
	Prefix  string        `json:"prefix"`
	TTL     time.Duration `json:"ttl"`
	Redis   RedisConfig   `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	PoolSize int    `json:"poolSize"`
}

// RateLimitConfig holds rate limiting configuration for a specific endpoint
type RateLimitConfig struct {
	Enabled  bool          `json:"enabled"`
	Max      int           `json:"max"`
	Duration time.Duration `json:"duration"`
}

// RateLimitsConfig holds rate limiting configuration for all endpoints
type RateLimitsConfig struct {
	Signup RateLimitConfig `json:"signup"`
	Login  RateLimitConfig `json:"login"`
}

// RealtimeConfig holds the interaction gateway configuration.
// LockTimeout bounds the wait on a post-row lock; SendBuffer is the
// per-session outbound queue size before a slow client is dropped.
type RealtimeConfig struct {
	LockTimeout time.Duration `json:"lockTimeout"`
	SendBuffer  int           `json:"sendBuffer"`
}

// AppConfig holds application-related configuration
type AppConfig struct {
	Name      string `json:"name"`
	WebDomain string `json:"webDomain"`
}

// LoadFromEnv loads configuration from the environment.
// It follows a clear precedence:
// 1. Explicit environment variables (e.g., set in the shell or by CI)
// 2. Values from the .env file (if it exists)
// 3. Hardcoded defaults
func LoadFromEnv() (*Config, error) {
	// godotenv.Load() reads the .env file and loads its values into the
	// environment for this process only if they are not already set,
	// which gives the precedence above for free.
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	for _, envPath := range envPaths {
		if err := godotenv.Load(envPath); err == nil {
			break
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:  getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:  getEnvAsInt("SERVER_PORT", 8080),
			Debug: getEnvAsBool("SERVER_DEBUG", false),
		},
		Database: DatabaseConfig{
			Postgres: PostgreSQLConfig{
				Host:            getEnvOrDefault("POSTGRES_HOST", "localhost"),
				Port:            getEnvAsInt("POSTGRES_PORT", 5432),
				Username:        getEnvOrDefault("POSTGRES_USER", "postgres"),
				Password:        getEnvOrDefault("POSTGRES_PASSWORD", ""),
				Database:        getEnvOrDefault("POSTGRES_DB", "redsocial"),
				SSLMode:         getEnvOrDefault("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: getEnvAsDuration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
				ConnectTimeout:  getEnvAsInt("POSTGRES_CONNECT_TIMEOUT", 10),
			},
		},
		JWT: JWTConfig{
			Secret:     os.Getenv("JWT_SECRET"),
			Expiration: getEnvAsDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		Cache: CacheConfig{
			Enabled: getEnvAsBool("CACHE_ENABLED", false),
			Prefix:  getEnvOrDefault("CACHE_PREFIX", "redsocial"),
			TTL:     getEnvAsDuration("CACHE_TTL", 60*time.Second),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsInt("REDIS_DB", 0),
				PoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),
			},
		},
		RateLimits: RateLimitsConfig{
			Signup: RateLimitConfig{
				Enabled:  getEnvAsBool("RATE_LIMIT_SIGNUP_ENABLED", true),
				Max:      getEnvAsInt("RATE_LIMIT_SIGNUP_MAX", 10),
				Duration: getEnvAsDuration("RATE_LIMIT_SIGNUP_DURATION", time.Hour),
			},
			Login: RateLimitConfig{
				Enabled:  getEnvAsBool("RATE_LIMIT_LOGIN_ENABLED", true),
				Max:      getEnvAsInt("RATE_LIMIT_LOGIN_MAX", 50),
				Duration: getEnvAsDuration("RATE_LIMIT_LOGIN_DURATION", time.Hour),
			},
		},
		Realtime: RealtimeConfig{
			LockTimeout: getEnvAsDuration("REALTIME_LOCK_TIMEOUT", 3*time.Second),
			SendBuffer:  getEnvAsInt("REALTIME_SEND_BUFFER", 32),
		},
		App: AppConfig{
			Name:      getEnvOrDefault("APP_NAME", "red-social"),
			WebDomain: getEnvOrDefault("APP_WEB_DOMAIN", "http://localhost:3000"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromMap builds a Config from an explicit key/value map.
// Used by tests to create isolated configurations without touching
// the process environment.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	for key, value := range envMap {
		os.Setenv(key, value)
	}
	return LoadFromEnv()
}

// Validate checks the configuration for missing required values.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Database.Postgres.Host == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.Database.Postgres.Database == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}
	if c.Realtime.LockTimeout <= 0 {
		return fmt.Errorf("REALTIME_LOCK_TIMEOUT must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
