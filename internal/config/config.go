// ABOUTME: LifeOps configuration with backend selection and env overrides.
// ABOUTME: Handles settings file, .env loading, and the snapshot source factory.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/lifeops/internal/models"
	"github.com/harperreed/lifeops/internal/storage"
	"github.com/joho/godotenv"
)

const (
	BackendParquet  = "parquet"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	sqliteFileName = "lifeops.db"
)

// Config stores lifeops configuration.
type Config struct {
	// Backend selects the snapshot source: "parquet" (default), "sqlite" or "postgres".
	Backend string `json:"backend,omitempty"`

	// DataDir holds the Parquet snapshots or lifeops.db.
	// Supports ~ expansion. Defaults to ~/.local/share/lifeops.
	DataDir string `json:"data_dir,omitempty"`

	// DSN is the Postgres connection string for the postgres backend.
	DSN string `json:"dsn,omitempty"`

	// Timezone is the IANA zone daily dates are computed in.
	Timezone string `json:"timezone,omitempty"`

	// Timeout bounds a single report run, e.g. "30s". Empty means no bound.
	Timeout string `json:"timeout,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "parquet".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendParquet
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetTimezone returns the configured zone, defaulting to Pacific/Auckland.
func (c *Config) GetTimezone() string {
	if c.Timezone == "" {
		return models.DefaultTimezone
	}
	return c.Timezone
}

// GetTimeout parses Timeout. Zero means unbounded.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

// DefaultDataDir returns the default data directory following the XDG base directory layout.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "lifeops")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenSource creates a storage.Source for the configured backend.
func (c *Config) OpenSource(ctx context.Context) (storage.Source, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case BackendParquet:
		store, err := storage.OpenParquet(dataDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendSQLite:
		db, err := storage.OpenSQLite(filepath.Join(dataDir, sqliteFileName))
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendPostgres:
		db, err := storage.OpenPostgres(ctx, c.DSN)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// ApplyEnv overrides fields from LIFEOPS_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LIFEOPS_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("LIFEOPS_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LIFEOPS_DSN"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("LIFEOPS_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("LIFEOPS_TIMEOUT"); v != "" {
		c.Timeout = v
	}
}

// Set updates a field by its JSON key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		switch value {
		case BackendParquet, BackendSQLite, BackendPostgres:
		default:
			return fmt.Errorf("unknown backend: %q (use parquet, sqlite, or postgres)", value)
		}
		c.Backend = value
	case "data_dir":
		c.DataDir = value
	case "dsn":
		c.DSN = value
	case "timezone":
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("unknown timezone: %q", value)
		}
		c.Timezone = value
	case "timeout":
		prev := c.Timeout
		c.Timeout = value
		if _, err := c.GetTimeout(); err != nil {
			c.Timeout = prev
			return err
		}
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "lifeops", "config.json")
}

// Load reads config from disk, then applies a .env file in the working
// directory (if any) and LIFEOPS_* environment overrides.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile reads only the config file, without env overrides.
func LoadFile() (*Config, error) {
	return loadFile(GetConfigPath())
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
