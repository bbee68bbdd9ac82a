// ABOUTME: Export and import of the full record set as JSON
// ABOUTME: Import replaces everything after checking referential integrity
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
)

// ExportCommand writes the snapshot as indented JSON.
func ExportCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, append(data, '\n'), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", *output, err)
		}
		fmt.Fprintf(stdout, "✓ Exported to %s\n", *output)
		return nil
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

// ImportCommand replaces the record set with the contents of a file.
func ImportCommand(store *crm.Store, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "Validate only")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: import [--dry-run] <file>")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", fs.Arg(0), err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse %s: %w", fs.Arg(0), err)
	}

	if *dryRun {
		if err := crm.CheckIntegrity(snap); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "✓ Valid: %d contacts, %d deals, %d activities\n", len(snap.Contacts), len(snap.Deals), len(snap.Activities))
		return nil
	}

	if err := store.Replace(snap); err != nil {
		return fmt.Errorf("import rejected: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Imported %d contacts, %d deals, %d activities\n", len(snap.Contacts), len(snap.Deals), len(snap.Activities))
	return nil
}
