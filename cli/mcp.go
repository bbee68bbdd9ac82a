// ABOUTME: MCP server subcommand
// ABOUTME: Serves CRM tools, resources and prompts on stdio with optional Prometheus metrics
package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Version string
	// MetricsAddr starts a /metrics listener when non-empty.
	MetricsAddr string
	// Gatherer serves metrics; defaults to the global registry.
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// NewMCPServer builds the server with every tool, resource and prompt registered.
func NewMCPServer(store *crm.Store, version string) *mcp.Server {
	contactHandlers := handlers.NewContactHandlers(store)
	dealHandlers := handlers.NewDealHandlers(store)
	activityHandlers := handlers.NewActivityHandlers(store)
	viewHandlers := handlers.NewViewHandlers(store)
	vizHandlers := handlers.NewVizHandlers(store)
	resourceHandlers := handlers.NewResourceHandlers(store)
	promptHandlers := handlers.NewPromptHandlers(store)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hookline",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact (individual or business) to the CRM",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact together with all of its deals and activities",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by name, email or company, optionally filtered by type",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get a contact with its deals and activity history",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal for an existing contact",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_deal",
		Description: "Edit a deal's fields directly; stage and probability are written as given",
	}, dealHandlers.UpdateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_deal",
		Description: "Move a deal to another stage; won sets probability to 100 and lost to 0",
	}, dealHandlers.MoveDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_deal",
		Description: "Delete a deal and the activities logged against it",
	}, dealHandlers.DeleteDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log a call, email, meeting or note with a contact",
	}, activityHandlers.LogActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_activities",
		Description: "List activities newest first, optionally for one contact or deal",
	}, activityHandlers.ListActivities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Dashboard KPIs: contacts, active deals, weighted pipeline value, won value and recent activity",
	}, viewHandlers.GetDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_pipeline",
		Description: "Count and value of deals per active stage, or the deals in one stage",
	}, viewHandlers.GetPipeline)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_graph",
		Description: "GraphViz source of contacts and their deals coloured by stage",
	}, vizHandlers.PipelineGraph)

	for _, r := range resourceHandlers.Resources() {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	for _, t := range resourceHandlers.Templates() {
		server.AddResourceTemplate(t, resourceHandlers.ReadResource)
	}
	for _, p := range promptHandlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}

// MCPCommand starts the MCP server on stdio and blocks until ctx is done
// or the client disconnects.
func MCPCommand(ctx context.Context, store *crm.Store, opts MCPOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Info("Starting hookline MCP server", "version", opts.Version)

	if opts.MetricsAddr != "" {
		stop := serveMetrics(opts.MetricsAddr, opts.Gatherer, logger)
		defer stop()
	}

	server := NewMCPServer(store, opts.Version)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func serveMetrics(addr string, gatherer prometheus.Gatherer, logger *log.Logger) func() {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics listener stopped", "addr", addr, "err", err)
		}
	}()
	logger.Info("Serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
