// ABOUTME: Entry point for the hookline CRM CLI and MCP server
// ABOUTME: Loads config, opens the chosen storage backend and routes commands
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hookline/charm"
	"github.com/harperreed/hookline/cli"
	"github.com/harperreed/hookline/config"
	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/idgen"
	"github.com/prometheus/client_golang/prometheus"
)

const version = "0.1.0"

type storeCommand func(store *crm.Store, args []string) error

var crmCommands = map[string]storeCommand{
	"add-contact":     cli.AddContactCommand,
	"list-contacts":   cli.ListContactsCommand,
	"show-contact":    cli.ShowContactCommand,
	"update-contact":  cli.UpdateContactCommand,
	"delete-contact":  cli.DeleteContactCommand,
	"add-deal":        cli.AddDealCommand,
	"list-deals":      cli.ListDealsCommand,
	"update-deal":     cli.UpdateDealCommand,
	"move-deal":       cli.MoveDealCommand,
	"delete-deal":     cli.DeleteDealCommand,
	"log-activity":    cli.LogActivityCommand,
	"list-activities": cli.ListActivitiesCommand,
	"delete-activity": cli.DeleteActivityCommand,
	"dashboard":       cli.DashboardCommand,
	"pipeline":        cli.PipelineCommand,
	"export":          cli.ExportCommand,
	"import":          cli.ImportCommand,
}

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "Show version and exit")
	configPath := flag.String("config", "", "Config file (default: ~/.config/hookline/config.yaml)")
	dbPath := flag.String("db-path", "", "Storage path, overrides the config file")
	flag.Usage = printUsage

	// Parse global flags; subcommands parse their own
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("hookline version %s\n", version)
		return 0
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	// stdout belongs to the MCP transport, so logs go to stderr
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "hookline",
		ReportTimestamp: true,
		Level:           cfg.LogLevel(),
	})
	log.SetDefault(logger)

	command, commandArgs := args[0], args[1:]

	// Sync commands manage the charm database directly
	if command == "sync" {
		if err := runSync(commandArgs); err != nil {
			logger.Error("sync failed", "err", err)
			return 1
		}
		return 0
	}

	switch command {
	case "crm", "viz", "mcp":
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		return 1
	}

	kv, err := cli.OpenBackend(cfg.Storage.Backend, cfg.StoragePath(), cfg.Charm.Host)
	if err != nil {
		logger.Error("failed to open storage", "backend", cfg.Storage.Backend, "err", err)
		return 1
	}
	newID, _ := idgen.ByName(cfg.Storage.IDScheme)

	store := crm.Open(kv, crm.Options{
		NewID:   newID,
		Seed:    !cfg.Storage.SkipSeed,
		Logger:  logger,
		Metrics: crm.NewMetrics(prometheus.DefaultRegisterer),
	})
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to save on exit", "err", err)
		}
	}()
	logger.Debug("storage ready", "backend", cfg.Storage.Backend, "path", cfg.StoragePath())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "mcp":
		err = cli.MCPCommand(ctx, store, cli.MCPOptions{
			Version:     version,
			MetricsAddr: cfg.Metrics.Addr,
			Gatherer:    prometheus.DefaultGatherer,
			Logger:      logger,
		})
	case "viz":
		err = runViz(ctx, store, commandArgs)
	case "crm":
		err = runCRM(store, commandArgs)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runCRM(store *crm.Store, args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("crm requires a subcommand")
	}
	cmd, ok := crmCommands[args[0]]
	if !ok {
		printUsage()
		return fmt.Errorf("unknown crm command: %s", args[0])
	}
	return cmd(store, args[1:])
}

func runViz(ctx context.Context, store *crm.Store, args []string) error {
	if len(args) == 0 || args[0] != "pipeline" {
		printUsage()
		return fmt.Errorf("viz requires a subcommand (pipeline)")
	}
	return cli.VizPipelineCommand(ctx, store, args[1:])
}

func runSync(args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("sync requires a subcommand")
	}
	switch args[0] {
	case "status":
		return charm.SyncStatusCommand(args[1:])
	case "now":
		return charm.SyncNowCommand(args[1:])
	case "auto":
		return charm.SetAutoSyncCommand(args[1:])
	case "wipe":
		return charm.SyncWipeCommand(args[1:])
	default:
		return fmt.Errorf("unknown sync command: %s", args[0])
	}
}

func printUsage() {
	fmt.Printf(`hookline v%s - Small-business CRM for the terminal and MCP clients

USAGE:
  hookline [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --config <path>        Config file (default: ~/.config/hookline/config.yaml)
  --db-path <path>       Storage path (default: ~/.local/share/hookline/hookline.db)

COMMANDS:
  mcp                    Start MCP server on stdio
  crm                    CRM management commands
  viz                    Visualization commands
  sync                   Charm cloud sync commands

CRM COMMANDS:
  hookline crm add-contact     Add a new contact
    --name <name>               Contact name (required)
    --email <email>             Email address (required)
    --phone <phone>             Phone number
    --company <company>         Company name
    --type <type>               individual or business (default: individual)
    --notes <notes>             Notes about contact

  hookline crm list-contacts   List contacts
    --query <text>              Search name, email or company
    --type <type>               all, individual or business
    --limit <n>                 Max results (default: 50)

  hookline crm show-contact <id>             Contact with its deals and activity
  hookline crm update-contact [flags] <id>   Update a contact (same flags as add)
  hookline crm delete-contact [--yes] <id>   Delete a contact, its deals and activities

  hookline crm add-deal        Add a new deal
    --title <title>             Deal title (required)
    --contact <id>              Contact ID (required)
    --value <amount>            Deal value
    --stage <stage>             lead, qualified, proposal, negotiation, won, lost
    --probability <0-100>       Win probability (default: 30)
    --close <YYYY-MM-DD>        Expected close date
    --notes <notes>             Notes

  hookline crm list-deals      List deals
    --stage <stage>             Filter by stage
    --contact <id>              Filter by contact

  hookline crm update-deal [flags] <id>      Edit a deal (same flags as add)
  hookline crm move-deal <id> <stage>        Move a deal; won sets 100%%, lost sets 0%%
  hookline crm delete-deal <id>              Delete a deal and its activities

  hookline crm log-activity    Log a call, email, meeting or note
    --contact <id>              Contact ID (required)
    --deal <id>                 Deal ID
    --type <type>               call, email, meeting or note (default: call)
    --description <text>        What happened (required)

  hookline crm list-activities [--contact <id>] [--deal <id>] [--limit <n>]
  hookline crm delete-activity <id>

  hookline crm dashboard                     KPIs, pipeline and recent activity
  hookline crm pipeline                      Deals grouped by stage
  hookline crm export [--output <file>]      Write all records as JSON
  hookline crm import [--dry-run] <file>     Replace all records from JSON

VIZ COMMANDS:
  hookline viz pipeline        Deal pipeline graph in DOT format
    --output <file>             Output file (default: stdout)

SYNC COMMANDS:
  hookline sync status         Show charm sync status
  hookline sync now            Sync with the charm server
  hookline sync auto --enable|--disable
  hookline sync wipe --confirm Delete the local charm database

EXAMPLES:
  # Start MCP server
  hookline mcp

  # Add a contact and a deal
  hookline crm add-contact --name "Sarah Chen" --email "s.chen@email.com"
  hookline crm add-deal --title "Starter Kit" --contact <id> --value 350

  # Close it
  hookline crm move-deal <id> won

`, version)
}
