// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, update_deal, move_deal and delete_deal
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type DealHandlers struct {
	store *crm.Store
}

func NewDealHandlers(store *crm.Store) *DealHandlers {
	return &DealHandlers{store: store}
}

type CreateDealInput struct {
	Title         string  `json:"title" jsonschema:"Deal title (required)"`
	ContactID     string  `json:"contact_id" jsonschema:"ID of the contact the deal is with (required)"`
	Value         float64 `json:"value,omitempty" jsonschema:"Deal value in pounds"`
	Stage         string  `json:"stage,omitempty" jsonschema:"lead, qualified, proposal, negotiation, won or lost (default lead)"`
	Probability   *int    `json:"probability,omitempty" jsonschema:"Win probability 0-100 (default 30; 100 for won, 0 for lost)"`
	ExpectedClose string  `json:"expected_close,omitempty" jsonschema:"Expected close date (YYYY-MM-DD)"`
	Notes         string  `json:"notes,omitempty" jsonschema:"Deal notes"`
}

// DefaultProbability is used when a new deal gives none.
const DefaultProbability = 30

func (h *DealHandlers) CreateDeal(_ context.Context, request *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	in := models.DealInput{
		Title:       input.Title,
		ContactID:   input.ContactID,
		Value:       input.Value,
		Probability: DefaultProbability,
		Notes:       input.Notes,
	}
	if input.Stage != "" {
		stage, err := models.ParseStage(input.Stage)
		if err != nil {
			return nil, DealOutput{}, err
		}
		in.Stage = stage
		in.Probability = crm.NextProbability(DefaultProbability, stage)
	}
	if input.Probability != nil {
		in.Probability = *input.Probability
	}
	if input.ExpectedClose != "" {
		d, err := models.ParseDate(input.ExpectedClose)
		if err != nil {
			return nil, DealOutput{}, fmt.Errorf("invalid expected_close: %w", err)
		}
		in.ExpectedClose = &d
	}

	deal, err := h.store.CreateDeal(in)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}
	return nil, dealToOutput(h.store.Snapshot(), deal), nil
}

type UpdateDealInput struct {
	ID            string   `json:"id" jsonschema:"Deal ID (required)"`
	Title         string   `json:"title,omitempty" jsonschema:"Updated title"`
	ContactID     string   `json:"contact_id,omitempty" jsonschema:"Reassign to another contact"`
	Value         *float64 `json:"value,omitempty" jsonschema:"Updated value"`
	Stage         string   `json:"stage,omitempty" jsonschema:"Updated stage (written as given; use move_deal to apply won/lost probability)"`
	Probability   *int     `json:"probability,omitempty" jsonschema:"Updated probability 0-100"`
	ExpectedClose string   `json:"expected_close,omitempty" jsonschema:"Updated expected close date (YYYY-MM-DD), or 'none' to clear"`
	Notes         string   `json:"notes,omitempty" jsonschema:"Updated notes"`
}

func (h *DealHandlers) UpdateDeal(_ context.Context, request *mcp.CallToolRequest, input UpdateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" {
		return nil, DealOutput{}, fmt.Errorf("id is required")
	}

	deal, err := h.store.GetDeal(input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}

	if input.Title != "" {
		deal.Title = input.Title
	}
	if input.ContactID != "" {
		deal.ContactID = input.ContactID
	}
	if input.Value != nil {
		deal.Value = *input.Value
	}
	if input.Stage != "" {
		stage, err := models.ParseStage(input.Stage)
		if err != nil {
			return nil, DealOutput{}, err
		}
		deal.Stage = stage
	}
	if input.Probability != nil {
		deal.Probability = *input.Probability
	}
	switch input.ExpectedClose {
	case "":
	case "none":
		deal.ExpectedClose = nil
	default:
		d, err := models.ParseDate(input.ExpectedClose)
		if err != nil {
			return nil, DealOutput{}, fmt.Errorf("invalid expected_close: %w", err)
		}
		deal.ExpectedClose = &d
	}
	if input.Notes != "" {
		deal.Notes = input.Notes
	}

	updated, err := h.store.UpdateDeal(deal)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to update deal: %w", err)
	}
	return nil, dealToOutput(h.store.Snapshot(), updated), nil
}

type MoveDealInput struct {
	ID    string `json:"id" jsonschema:"Deal ID (required)"`
	Stage string `json:"stage" jsonschema:"Target stage: lead, qualified, proposal, negotiation, won or lost"`
}

func (h *DealHandlers) MoveDeal(_ context.Context, request *mcp.CallToolRequest, input MoveDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" {
		return nil, DealOutput{}, fmt.Errorf("id is required")
	}
	stage, err := models.ParseStage(input.Stage)
	if err != nil {
		return nil, DealOutput{}, err
	}

	moved, err := h.store.MoveDeal(input.ID, stage)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to move deal: %w", err)
	}
	return nil, dealToOutput(h.store.Snapshot(), moved), nil
}

type DeleteDealInput struct {
	ID string `json:"id" jsonschema:"Deal ID (required)"`
}

func (h *DealHandlers) DeleteDeal(_ context.Context, request *mcp.CallToolRequest, input DeleteDealInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}
	if err := h.store.DeleteDeal(input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete deal: %w", err)
	}
	return nil, DeleteOutput{Success: true, Message: fmt.Sprintf("Deleted deal %s", input.ID)}, nil
}
