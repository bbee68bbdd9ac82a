package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hookline/idgen"
)

var backends = []string{BackendSQLite, BackendBadger, BackendCharm, BackendMemory}

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if !slices.Contains(backends, c.Storage.Backend) {
		return fmt.Errorf("storage.backend must be one of %s (got %q)", strings.Join(backends, ", "), c.Storage.Backend)
	}
	if _, err := idgen.ByName(c.Storage.IDScheme); err != nil {
		return fmt.Errorf("storage.id_scheme: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level, info when unparsable.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
