// ABOUTME: CLI commands for Charm KV sync operations
// ABOUTME: Status, manual sync, auto-sync toggle and local wipe

package charm

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// SyncStatusCommand shows current sync configuration and status.
func SyncStatusCommand(args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ExitOnError)
	_ = fs.Parse(args)

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c, err := GetClient()
	if err != nil {
		c = nil
	}
	return showSyncStatus(os.Stdout, cfg, c)
}

func showSyncStatus(w io.Writer, cfg *Config, c *Client) error {
	fmt.Fprintln(w, "Charm Sync Status")
	fmt.Fprintln(w, "─────────────────")
	fmt.Fprintf(w, "Server:    %s\n", cfg.Host)
	fmt.Fprintf(w, "Auto-sync: %v\n", cfg.AutoSync)

	if c == nil {
		fmt.Fprintln(w, "\nStatus: Not connected")
		fmt.Fprintln(w, "\nCharm uses SSH keys for authentication - no login required!")
		return nil
	}

	id, err := c.ID()
	if err != nil {
		fmt.Fprintln(w, "\nStatus: Local only (ID unavailable)")
	} else {
		fmt.Fprintln(w, "\nStatus: Connected to Charm Cloud")
		fmt.Fprintf(w, "ID:        %s\n", id)
	}

	keys, err := c.Keys()
	if err == nil {
		var names []string
		for _, k := range keys {
			if strings.HasPrefix(string(k), "hl_") {
				names = append(names, string(k))
			}
		}
		fmt.Fprintf(w, "Keys:      %d", len(keys))
		if len(names) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(names, ", "))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// SyncWipeCommand completely resets the local KV store.
func SyncWipeCommand(args []string) error {
	fs := flag.NewFlagSet("sync wipe", flag.ExitOnError)
	confirm := fs.Bool("confirm", false, "Confirm data wipe")
	_ = fs.Parse(args)

	if !*confirm {
		fmt.Println("WARNING: This will delete ALL local contacts, deals and activities!")
		fmt.Println()
		fmt.Println("To confirm, run:")
		fmt.Println("  hookline sync wipe --confirm")
		return nil
	}

	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}
	if err := c.Reset(); err != nil {
		return fmt.Errorf("failed to reset KV store: %w", err)
	}

	fmt.Println("✓ All data wiped")
	fmt.Println("Your Charm account is still linked.")
	return nil
}

// SyncNowCommand performs an immediate sync.
func SyncNowCommand(args []string) error {
	fs := flag.NewFlagSet("sync now", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	_ = fs.Parse(args)

	c, err := GetClient()
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	if *verbose {
		fmt.Println("Syncing with server...")
	}
	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	fmt.Println("✓ Synced")
	return nil
}

// SetAutoSyncCommand enables or disables auto-sync.
func SetAutoSyncCommand(args []string) error {
	fs := flag.NewFlagSet("sync auto", flag.ExitOnError)
	enable := fs.Bool("enable", false, "Enable auto-sync")
	disable := fs.Bool("disable", false, "Disable auto-sync")
	_ = fs.Parse(args)

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return setAutoSync(os.Stdout, cfg, *enable, *disable)
}

func setAutoSync(w io.Writer, cfg *Config, enable, disable bool) error {
	switch {
	case enable == disable:
		fmt.Fprintln(w, "Usage: hookline sync auto --enable|--disable")
		return nil
	case enable:
		if err := cfg.SetAutoSync(true); err != nil {
			return fmt.Errorf("failed to enable auto-sync: %w", err)
		}
		fmt.Fprintln(w, "✓ Auto-sync enabled")
	default:
		if err := cfg.SetAutoSync(false); err != nil {
			return fmt.Errorf("failed to disable auto-sync: %w", err)
		}
		fmt.Fprintln(w, "✓ Auto-sync disabled")
	}
	return nil
}
