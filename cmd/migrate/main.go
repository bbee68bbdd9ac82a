// ABOUTME: Copies CRM snapshots from one storage backend to another
// ABOUTME: Validates references first and backs up the destination unless told not to

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hookline/cli"
	"github.com/harperreed/hookline/config"
	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
)

// errEmptySource stops a migration that would overwrite the destination
// with nothing.
var errEmptySource = errors.New("source has no records; pass -allow-empty to copy it anyway")

type options struct {
	from, fromPath string
	to, toPath     string
	charmHost      string
	backupDir      string
	dryRun         bool
	backup         bool
	allowEmpty     bool
}

func main() {
	var opts options
	configPath := flag.String("config", "", "Config file (default: ~/.config/hookline/config.yaml)")
	flag.StringVar(&opts.from, "from", "", "Source backend: sqlite, badger or charm (default: configured backend)")
	flag.StringVar(&opts.fromPath, "from-path", "", "Source SQLite file or Badger directory (default: the backend's data path)")
	flag.StringVar(&opts.to, "to", "", "Destination backend: sqlite, badger or charm (required)")
	flag.StringVar(&opts.toPath, "to-path", "", "Destination SQLite file or Badger directory (default: the backend's data path)")
	flag.StringVar(&opts.charmHost, "charm-host", "", "Charm server override")
	flag.StringVar(&opts.backupDir, "backup-dir", ".", "Where the destination backup is written")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Show what would happen without making changes")
	flag.BoolVar(&opts.backup, "backup", true, "Export the destination's records before overwriting")
	flag.BoolVar(&opts.allowEmpty, "allow-empty", false, "Copy even when the source has no records")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "migrate", ReportTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}
	if err := resolve(&opts, cfg); err != nil {
		logger.Fatal(err)
	}

	if err := migrate(opts, logger); err != nil {
		logger.Fatal("migration failed", "err", err)
	}
	logger.Info("Migration completed successfully")
}

// resolve fills unset backends, paths and host from cfg and rejects a
// migration onto itself.
func resolve(opts *options, cfg *config.Config) error {
	if opts.to == "" {
		return errors.New("-to flag is required")
	}
	if opts.from == "" {
		opts.from = cfg.Storage.Backend
	}
	if opts.charmHost == "" {
		opts.charmHost = cfg.Charm.Host
	}
	opts.fromPath = backendPath(opts.from, opts.fromPath, cfg)
	opts.toPath = backendPath(opts.to, opts.toPath, cfg)

	if opts.from == config.BackendMemory || opts.to == config.BackendMemory {
		return errors.New("the memory backend cannot be migrated to or from")
	}
	if opts.from == opts.to && opts.fromPath == opts.toPath {
		return errors.New("source and destination are the same")
	}
	return nil
}

// backendPath keeps an explicit path, then the configured path when it
// belongs to the same backend, then the backend's XDG default.
func backendPath(backend, path string, cfg *config.Config) string {
	switch {
	case backend == config.BackendCharm:
		return ""
	case path != "":
		return path
	case backend == cfg.Storage.Backend && cfg.Storage.Path != "":
		return cfg.Storage.Path
	default:
		return config.DefaultStoragePath(backend)
	}
}

func migrate(opts options, logger *log.Logger) error {
	srcKV, err := cli.OpenBackend(opts.from, opts.fromPath, opts.charmHost)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	src := crm.Open(srcKV, crm.Options{Logger: logger})
	defer closeQuietly(srcKV)

	snap := src.Snapshot()
	logger.Info("Source records", "backend", opts.from, "path", opts.fromPath,
		"contacts", len(snap.Contacts), "deals", len(snap.Deals), "activities", len(snap.Activities))

	if err := crm.CheckIntegrity(snap); err != nil {
		return fmt.Errorf("source is inconsistent: %w", err)
	}
	if isEmpty(snap) && !opts.allowEmpty {
		return errEmptySource
	}

	if opts.dryRun {
		logger.Info("Dry run: nothing written", "to", opts.to, "path", opts.toPath)
		return nil
	}

	dstKV, err := cli.OpenBackend(opts.to, opts.toPath, opts.charmHost)
	if err != nil {
		return fmt.Errorf("failed to open destination: %w", err)
	}
	dst := crm.Open(dstKV, crm.Options{Logger: logger})

	if opts.backup {
		path, err := writeBackup(dst.Snapshot(), opts.backupDir, opts.to)
		if err != nil {
			_ = dst.Close()
			return err
		}
		logger.Info("Backup created", "path", path)
	}

	if err := dst.Replace(snap); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to write destination: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to save destination: %w", err)
	}
	return nil
}

func isEmpty(snap models.Snapshot) bool {
	return len(snap.Contacts) == 0 && len(snap.Deals) == 0 && len(snap.Activities) == 0
}

func writeBackup(snap models.Snapshot, dir, backend string) (string, error) {
	name := fmt.Sprintf("hookline-%s.backup.%s.json", backend, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return path, nil
}

func closeQuietly(v any) {
	if c, ok := v.(io.Closer); ok {
		_ = c.Close()
	}
}
