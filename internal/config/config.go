// ABOUTME: Carewise configuration management with backend selection.
// ABOUTME: Handles the JSON config file, env overrides, and the storage factory.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/harperreed/carewise/internal/charm"
	"github.com/harperreed/carewise/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
	BackendRedis    = "redis"
	BackendCharm    = "charm"
	BackendMemory   = "memory"
)

// Backends lists every supported backend name.
var Backends = []string{BackendSQLite, BackendPostgres, BackendBadger, BackendRedis, BackendCharm, BackendMemory}

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CAREWISE_"

// Config stores carewise configuration.
type Config struct {
	// Backend selects the storage backend; see Backends. Defaults to sqlite.
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local storage.
	// SQLite puts carewise.db here, badger uses a badger/ folder.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/carewise.
	DataDir string `json:"data_dir,omitempty"`

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `json:"database_url,omitempty"`

	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`

	// HTTPAddr is the listen address for 'carewise serve'.
	HTTPAddr string `json:"http_addr,omitempty"`

	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetRedisAddr returns the Redis address, defaulting to localhost.
func (c *Config) GetRedisAddr() string {
	if c.RedisAddr == "" {
		return "localhost:6379"
	}
	return c.RedisAddr
}

// GetHTTPAddr returns the API listen address, defaulting to ":8080".
func (c *Config) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		return ":8080"
	}
	return c.HTTPAddr
}

// GetLogLevel returns the log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetLogFormat returns the log format, defaulting to "console".
func (c *Config) GetLogFormat() string {
	if c.LogFormat == "" {
		return "console"
	}
	return c.LogFormat
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

// ApplyEnv overrides fields from CAREWISE_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	str("BACKEND", &c.Backend)
	str("DATA_DIR", &c.DataDir)
	str("DATABASE_URL", &c.DatabaseURL)
	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPassword)
	str("HTTP_ADDR", &c.HTTPAddr)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)

	if v, ok := lookup(EnvPrefix + "REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		c.RedisDB = n
	}
	return nil
}

// Validate checks that the backend is known and has what it needs.
func (c *Config) Validate() error {
	backend := c.GetBackend()
	if !slices.Contains(Backends, backend) {
		return fmt.Errorf("unknown backend: %q (use one of %s)", backend, strings.Join(Backends, ", "))
	}
	if backend == BackendPostgres && c.DatabaseURL == "" {
		return errors.New("database_url is required for the postgres backend")
	}
	return nil
}

// OpenKV opens the named backend using this config's connection settings.
func (c *Config) OpenKV(ctx context.Context, backend string) (storage.KV, error) {
	dataDir := c.GetDataDir()

	switch strings.ToLower(backend) {
	case BackendSQLite, "":
		return storage.Open(storage.DBPath(dataDir))
	case BackendPostgres:
		return storage.OpenPostgres(ctx, c.DatabaseURL)
	case BackendBadger:
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case BackendRedis:
		return storage.OpenRedis(ctx, c.GetRedisAddr(), c.RedisPassword, c.RedisDB)
	case BackendCharm:
		return charm.InitClient()
	case BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenStorage creates the profile store for the configured backend.
func (c *Config) OpenStorage(ctx context.Context, logger *zap.Logger) (*storage.ProfileStore, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	kv, err := c.OpenKV(ctx, c.GetBackend())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", c.GetBackend(), err)
	}
	return storage.NewProfileStore(kv, logger), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "carewise", "config.json")
}

// Load reads config from disk, then applies a .env file in the working
// directory and CAREWISE_* environment variables on top.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
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
