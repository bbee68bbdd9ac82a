// ABOUTME: GraphViz visualization MCP handler
// ABOUTME: Provides the pipeline_graph tool for agents
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type VizHandlers struct {
	store *crm.Store
}

func NewVizHandlers(store *crm.Store) *VizHandlers {
	return &VizHandlers{store: store}
}

type PipelineGraphInput struct{}

type PipelineGraphOutput struct {
	DOTSource string `json:"dot_source"`
	EdgeCount int    `json:"edge_count"`
}

func (h *VizHandlers) PipelineGraph(ctx context.Context, request *mcp.CallToolRequest, input PipelineGraphInput) (*mcp.CallToolResult, PipelineGraphOutput, error) {
	dot, err := viz.PipelineGraph(ctx, h.store.Snapshot())
	if err != nil {
		return nil, PipelineGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}
	return nil, PipelineGraphOutput{
		DOTSource: dot,
		EdgeCount: strings.Count(dot, "->"),
	}, nil
}
