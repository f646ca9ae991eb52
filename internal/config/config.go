// Package config reads workers settings from the environment.
//
// Variables carry the WORKERS_ prefix:
//
//	WORKERS_DB       path of the store file (default ~/workers.db)
//	WORKERS_FORMAT   output format, text or json (default text)
//	WORKERS_VERBOSE  debug logging when true
//
// A .env file in the working directory is loaded into the environment
// first. Command-line flags override everything read here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every variable this package reads.
const EnvPrefix = "WORKERS_"

// DefaultDBName is the store file created in the home directory when no
// path is configured.
const DefaultDBName = "workers.db"

// Config holds settings that flags fall back to.
type Config struct {
	DB      string `koanf:"db"` // empty means DefaultDBPath
	Format  string `koanf:"format" validate:"required,oneof=text json"`
	Verbose bool   `koanf:"verbose"`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return load(env.ProviderWithValue(EnvPrefix, ".", envValue))
}

// load is Load with an injectable provider for tests.
func load(provider koanf.Provider) (*Config, error) {
	k := koanf.New(".")

	cfg := *Defaults()

	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Defaults returns the configuration used when nothing is set.
// DB is left empty; the home directory is only consulted by callers that
// end up needing DefaultDBPath.
func Defaults() *Config {
	return &Config{Format: "text"}
}

// DefaultDBPath returns ~/workers.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultDBName), nil
}

// envValue maps WORKERS_DB to "db". Empty variables are skipped so they
// do not override defaults.
func envValue(key, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	return envKey(key), value
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
