// ABOUTME: MCP prompt handlers for reusable CRM workflow templates
// ABOUTME: Builds contact-summary and deal-analysis prompts from the current records
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/viz"
	"github.com/harperreed/hookline/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	store *crm.Store
}

func NewPromptHandlers(store *crm.Store) *PromptHandlers {
	return &PromptHandlers{store: store}
}

// Prompts lists the prompt templates the server advertises.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "contact-summary",
			Description: "Summarize a contact with their deals and activity history",
			Arguments: []*mcp.PromptArgument{
				{Name: "contact_id", Description: "Contact ID", Required: true},
			},
		},
		{
			Name:        "deal-analysis",
			Description: "Analyze pipeline health and the deals that need attention",
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "contact-summary":
		return h.getContactSummaryPrompt(request.Params.Arguments)
	case "deal-analysis":
		return h.getDealAnalysisPrompt()
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getContactSummaryPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	contactID, ok := args["contact_id"]
	if !ok || contactID == "" {
		return nil, fmt.Errorf("contact_id is required")
	}

	contact, err := h.store.GetContact(contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact: %w", err)
	}
	snap := h.store.Snapshot()

	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("Contact: %s (%s)\n", contact.Name, contact.Type))
	promptText.WriteString(fmt.Sprintf("Email: %s\n", contact.Email))
	if contact.Phone != "" {
		promptText.WriteString(fmt.Sprintf("Phone: %s\n", contact.Phone))
	}
	if contact.Company != "" {
		promptText.WriteString(fmt.Sprintf("Company: %s\n", contact.Company))
	}
	promptText.WriteString(fmt.Sprintf("Customer since: %s\n", contact.CreatedAt))
	if contact.Notes != "" {
		promptText.WriteString(fmt.Sprintf("\nNotes: %s\n", contact.Notes))
	}

	if deals := views.DealsForContact(snap, contactID); len(deals) > 0 {
		promptText.WriteString("\nDeals:\n")
		for _, d := range deals {
			promptText.WriteString(fmt.Sprintf("- %s: %s, %s, %d%%\n", d.Title, viz.FormatMoney(d.Value), d.Stage, d.Probability))
		}
	}
	if acts := views.ActivitiesForContact(snap, contactID); len(acts) > 0 {
		promptText.WriteString("\nActivity (newest first):\n")
		for _, a := range acts {
			promptText.WriteString(fmt.Sprintf("- %s %s: %s\n", a.Date.Format("2006-01-02"), a.Type, a.Description))
		}
	}

	promptText.WriteString("\nPlease analyze this contact and provide:")
	promptText.WriteString("\n1. A brief summary of the relationship so far")
	promptText.WriteString("\n2. Recommendations for next steps or follow-up actions")
	promptText.WriteString("\n3. Any patterns or insights from their interaction history")

	return userPrompt(fmt.Sprintf("Summary for contact: %s", contact.Name), promptText.String()), nil
}

func (h *PromptHandlers) getDealAnalysisPrompt() (*mcp.GetPromptResult, error) {
	snap := h.store.Snapshot()
	k := views.ComputeKPIs(snap)

	var promptText strings.Builder
	promptText.WriteString("Please analyze the current deal pipeline:\n\n")
	promptText.WriteString(fmt.Sprintf("Active deals: %d, weighted pipeline value: %s, won: %s\n\n",
		k.ActiveDeals, viz.FormatMoney(k.PipelineValue), viz.FormatMoney(k.WonValue)))

	for _, s := range views.PipelineByStage(snap) {
		promptText.WriteString(fmt.Sprintf("%s: %d deals, %s\n", s.Stage.Title(), s.Count, viz.FormatMoney(s.Value)))
		for _, d := range views.DealsInStage(snap, s.Stage) {
			promptText.WriteString(fmt.Sprintf("  - %s with %s: %s at %d%%\n",
				d.Title, views.ContactName(snap, d.ContactID), viz.FormatMoney(d.Value), d.Probability))
		}
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Analysis of pipeline health and distribution")
	promptText.WriteString("\n2. Recommendations for deals that may need attention")
	promptText.WriteString("\n3. Suggestions for improving conversion rates")

	return userPrompt("Deal pipeline analysis", promptText.String()), nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
