// ABOUTME: Dashboard and pipeline MCP tool handlers
// ABOUTME: Implements get_dashboard and get_pipeline over the current snapshot
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ViewHandlers struct {
	store *crm.Store
}

func NewViewHandlers(store *crm.Store) *ViewHandlers {
	return &ViewHandlers{store: store}
}

type GetDashboardInput struct{}

type DashboardOutput struct {
	TotalContacts    int              `json:"total_contacts"`
	ActiveDeals      int              `json:"active_deals"`
	PipelineValue    float64          `json:"pipeline_value"`
	WonValue         float64          `json:"won_value"`
	RecentActivities []ActivityOutput `json:"recent_activities"`
	StorageWarning   string           `json:"storage_warning,omitempty"`
}

func (h *ViewHandlers) GetDashboard(_ context.Context, request *mcp.CallToolRequest, input GetDashboardInput) (*mcp.CallToolResult, DashboardOutput, error) {
	snap := h.store.Snapshot()
	k := views.ComputeKPIs(snap)

	out := DashboardOutput{
		TotalContacts:    k.TotalContacts,
		ActiveDeals:      k.ActiveDeals,
		PipelineValue:    k.PipelineValue,
		WonValue:         k.WonValue,
		RecentActivities: activitiesToOutput(snap, k.RecentActivities),
	}
	if err := h.store.LastPersistError(); err != nil {
		out.StorageWarning = err.Error()
	}
	return nil, out, nil
}

type GetPipelineInput struct {
	Stage string `json:"stage,omitempty" jsonschema:"List the deals in one stage instead of the summary"`
}

type StageOutput struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type PipelineOutput struct {
	Stages []StageOutput `json:"stages,omitempty"`
	Deals  []DealOutput  `json:"deals,omitempty"`
}

func (h *ViewHandlers) GetPipeline(_ context.Context, request *mcp.CallToolRequest, input GetPipelineInput) (*mcp.CallToolResult, PipelineOutput, error) {
	snap := h.store.Snapshot()

	if input.Stage != "" {
		stage, err := models.ParseStage(input.Stage)
		if err != nil {
			return nil, PipelineOutput{}, fmt.Errorf("invalid stage: %w", err)
		}
		return nil, PipelineOutput{Deals: dealsToOutput(snap, views.DealsInStage(snap, stage))}, nil
	}

	summary := views.PipelineByStage(snap)
	out := PipelineOutput{Stages: make([]StageOutput, len(summary))}
	for i, s := range summary {
		out.Stages[i] = StageOutput{Stage: string(s.Stage), Count: s.Count, Value: s.Value}
	}
	return nil, out, nil
}
