// Package config loads agent configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds everything the agent server and CLI need. All fields come
// from environment variables with sensible defaults; only the backend
// credentials have no default.
type Config struct {
	Port        int    `validate:"gte=1,lte=65535"`
	BackendURL  string `validate:"omitempty,url"`
	BackendKey  string
	DatabaseURL string
	DataDir     string
	JWTSecret   string

	FastInterval time.Duration `validate:"gt=0"`
	SlowInterval time.Duration `validate:"gt=0"`

	Headless bool
	Verbose  bool
}

// Environment variable names.
const (
	EnvPort         = "ATS_PORT"
	EnvBackendURL   = "ATS_BACKEND_URL"
	EnvBackendKey   = "ATS_BACKEND_API_KEY"
	EnvDatabaseURL  = "ATS_DATABASE_URL"
	EnvDataDir      = "ATS_DATA_DIR"
	EnvJWTSecret    = "ATS_JWT_SECRET"
	EnvFastInterval = "ATS_FAST_INTERVAL_MS"
	EnvSlowInterval = "ATS_SLOW_INTERVAL_MS"
	EnvHeadless     = "ATS_HEADLESS"
	EnvVerbose      = "ATS_VERBOSE"
)

var validate = validator.New()

// FromEnv builds a Config from the environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:         8742,
		BackendURL:   os.Getenv(EnvBackendURL),
		BackendKey:   os.Getenv(EnvBackendKey),
		DatabaseURL:  os.Getenv(EnvDatabaseURL),
		DataDir:      os.Getenv(EnvDataDir),
		JWTSecret:    os.Getenv(EnvJWTSecret),
		FastInterval: 100 * time.Millisecond,
		SlowInterval: 500 * time.Millisecond,
		Headless:     true,
		Verbose:      false,
	}

	var err error
	if cfg.Port, err = intEnv(EnvPort, cfg.Port); err != nil {
		return nil, err
	}
	if cfg.FastInterval, err = millisEnv(EnvFastInterval, cfg.FastInterval); err != nil {
		return nil, err
	}
	if cfg.SlowInterval, err = millisEnv(EnvSlowInterval, cfg.SlowInterval); err != nil {
		return nil, err
	}
	if cfg.Headless, err = boolEnv(EnvHeadless, cfg.Headless); err != nil {
		return nil, err
	}
	if cfg.Verbose, err = boolEnv(EnvVerbose, cfg.Verbose); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func intEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return value, nil
}

func millisEnv(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func boolEnv(name string, fallback bool) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}
	return value, nil
}
