// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package testutil

import (
	"os"
	"time"

	"github.com/subosito/gotenv"

	platformconfig "github.com/redsocial/api/internal/platform/config"
)

// LoadEnv loads a .env.test file into the process environment when one
// exists near the test's working directory. Values already set in the
// environment win.
func LoadEnv() {
	for _, path := range []string{".env.test", "../.env.test", "../../.env.test"} {
		if _, err := os.Stat(path); err == nil {
			_ = gotenv.Load(path)
			return
		}
	}
}

// NewTestConfig builds a self-contained configuration for tests.
// Caching and rate limits are off so tests exercise the code under test
// rather than the surrounding infrastructure.
func NewTestConfig() *platformconfig.Config {
	return &platformconfig.Config{
		Server: platformconfig.ServerConfig{
			Host:  "localhost",
			Port:  0,
			Debug: true,
		},
		Database: platformconfig.DatabaseConfig{
			Postgres: platformconfig.PostgreSQLConfig{
				Host:     getEnv("POSTGRES_HOST", "127.0.0.1"),
				Port:     5432,
				Username: getEnv("POSTGRES_USER", "postgres"),
				Password: getEnv("POSTGRES_PASSWORD", "postgres"),
				Database: getEnv("POSTGRES_DB", "redsocial_test"),
				SSLMode:  "disable",
			},
		},
		JWT: platformconfig.JWTConfig{
			Secret:     TestJWTSecret,
			Expiration: time.Hour,
		},
		Realtime: platformconfig.RealtimeConfig{
			LockTimeout: 3 * time.Second,
			SendBuffer:  8,
		},
		App: platformconfig.AppConfig{
			Name: "red-social-test",
		},
	}
}

func getEnv(key, defVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defVal
}
