// ABOUTME: MCP resource handlers for exposing CRM data
// ABOUTME: Read-only JSON views of contacts, deals, the pipeline and the dashboard via hookline:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "hookline://"

type ResourceHandlers struct {
	store *crm.Store
}

func NewResourceHandlers(store *crm.Store) *ResourceHandlers {
	return &ResourceHandlers{store: store}
}

// Resources lists the fixed resources the server advertises.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{URI: resourceScheme + "contacts", Name: "contacts", Description: "All contacts", MIMEType: "application/json"},
		{URI: resourceScheme + "deals", Name: "deals", Description: "All deals", MIMEType: "application/json"},
		{URI: resourceScheme + "pipeline", Name: "pipeline", Description: "Active pipeline by stage", MIMEType: "application/json"},
		{URI: resourceScheme + "dashboard", Name: "dashboard", Description: "Dashboard KPIs and recent activity", MIMEType: "application/json"},
	}
}

// Templates lists the per-record resource templates.
func (h *ResourceHandlers) Templates() []*mcp.ResourceTemplate {
	return []*mcp.ResourceTemplate{
		{URITemplate: resourceScheme + "contacts/{id}", Name: "contact", Description: "A contact with its deals and activities", MIMEType: "application/json"},
		{URITemplate: resourceScheme + "deals/{id}", Name: "deal", Description: "A deal with its activities", MIMEType: "application/json"},
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	snap := h.store.Snapshot()

	var payload any
	switch {
	case parts[0] == "contacts" && len(parts) == 1:
		out := make([]ContactOutput, len(snap.Contacts))
		for i, c := range snap.Contacts {
			out[i] = contactToOutput(c)
		}
		payload = out

	case parts[0] == "contacts":
		_, detail, err := NewContactHandlers(h.store).GetContact(ctx, nil, GetContactInput{ID: parts[1]})
		if err != nil {
			return nil, err
		}
		payload = detail

	case parts[0] == "deals" && len(parts) == 1:
		payload = dealsToOutput(snap, snap.Deals)

	case parts[0] == "deals":
		deal, err := h.store.GetDeal(parts[1])
		if err != nil {
			return nil, err
		}
		payload = struct {
			DealOutput
			Activities []ActivityOutput `json:"activities"`
		}{
			DealOutput: dealToOutput(snap, deal),
			Activities: activitiesToOutput(snap, views.ActivitiesForDeal(snap, deal.ID)),
		}

	case parts[0] == "pipeline":
		payload = views.PipelineByStage(snap)

	case parts[0] == "dashboard":
		_, dash, err := NewViewHandlers(h.store).GetDashboard(ctx, nil, GetDashboardInput{})
		if err != nil {
			return nil, err
		}
		payload = dash

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
