// ABOUTME: Activity MCP tool handlers
// ABOUTME: Implements log_activity and list_activities
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ActivityHandlers struct {
	store *crm.Store
}

func NewActivityHandlers(store *crm.Store) *ActivityHandlers {
	return &ActivityHandlers{store: store}
}

type LogActivityInput struct {
	ContactID   string `json:"contact_id" jsonschema:"Contact the activity was with (required)"`
	DealID      string `json:"deal_id,omitempty" jsonschema:"Deal the activity relates to; must belong to the same contact"`
	Type        string `json:"type,omitempty" jsonschema:"call, email, meeting or note (default call)"`
	Description string `json:"description" jsonschema:"What happened (required)"`
}

func (h *ActivityHandlers) LogActivity(_ context.Context, request *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	activity, err := h.store.CreateActivity(models.ActivityInput{
		Type:        models.ActivityType(input.Type),
		ContactID:   input.ContactID,
		DealID:      input.DealID,
		Description: input.Description,
	})
	if err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}
	return nil, activityToOutput(h.store.Snapshot(), activity), nil
}

type ListActivitiesInput struct {
	ContactID string `json:"contact_id,omitempty" jsonschema:"Only activities with this contact"`
	DealID    string `json:"deal_id,omitempty" jsonschema:"Only activities for this deal"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
}

type ListActivitiesOutput struct {
	Activities []ActivityOutput `json:"activities"`
	Total      int              `json:"total"`
}

func (h *ActivityHandlers) ListActivities(_ context.Context, request *mcp.CallToolRequest, input ListActivitiesInput) (*mcp.CallToolResult, ListActivitiesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	snap := h.store.Snapshot()
	var activities []models.Activity
	switch {
	case input.DealID != "":
		activities = views.ActivitiesForDeal(snap, input.DealID)
	case input.ContactID != "":
		activities = views.ActivitiesForContact(snap, input.ContactID)
	default:
		activities = views.SortActivitiesNewestFirst(snap.Activities)
	}
	if input.DealID != "" && input.ContactID != "" {
		filtered := activities[:0]
		for _, a := range activities {
			if a.ContactID == input.ContactID {
				filtered = append(filtered, a)
			}
		}
		activities = filtered
	}

	total := len(activities)
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return nil, ListActivitiesOutput{Activities: activitiesToOutput(snap, activities), Total: total}, nil
}
