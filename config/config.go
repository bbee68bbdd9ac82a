// ABOUTME: Application configuration loaded from YAML, environment and .env
// ABOUTME: Chooses the storage backend, log level, charm host and metrics listener
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the config and data directories.
const AppName = "hookline"

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Config is the root application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Charm   CharmConfig   `yaml:"charm"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StorageConfig selects where snapshots live.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"HOOKLINE_STORAGE_BACKEND" env-default:"sqlite"`
	// Path is the SQLite file or Badger directory. Empty means the XDG data dir.
	Path string `yaml:"path" env:"HOOKLINE_DB_PATH"`
	// SkipSeed leaves empty storage empty instead of loading the sample records.
	SkipSeed bool `yaml:"skip_seed" env:"HOOKLINE_SKIP_SEED"`
	// IDScheme picks the identifier format for new records: ulid or uuid.
	IDScheme string `yaml:"id_scheme" env:"HOOKLINE_ID_SCHEME" env-default:"ulid"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"HOOKLINE_LOG_LEVEL" env-default:"info"`
}

// CharmConfig overrides the charm server from the sync config file.
type CharmConfig struct {
	Host string `yaml:"host" env:"CHARM_HOST"`
}

// MetricsConfig holds the Prometheus listener for the MCP server.
// An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"HOOKLINE_METRICS_ADDR"`
}

// DefaultPath is the config file location when none is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// StoragePath returns the configured path or the backend's default.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return DefaultStoragePath(c.Storage.Backend)
}

// DefaultStoragePath is where backend keeps its data under the XDG data dir.
func DefaultStoragePath(backend string) string {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	if backend == BackendBadger {
		return filepath.Join(dataDir, "badger")
	}
	return filepath.Join(dataDir, AppName+".db")
}
