// ABOUTME: Wire shapes returned by the MCP tools
// ABOUTME: Converts records to flat outputs with resolved contact names and deal titles
package handlers

import (
	"time"

	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
)

type ContactOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Type      string `json:"type"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
}

type DealOutput struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Value         float64 `json:"value"`
	Stage         string  `json:"stage"`
	Probability   int     `json:"probability"`
	Weighted      float64 `json:"weighted_value"`
	ContactID     string  `json:"contact_id"`
	ContactName   string  `json:"contact_name"`
	ExpectedClose string  `json:"expected_close,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type ActivityOutput struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	DealID      string `json:"deal_id,omitempty"`
	DealTitle   string `json:"deal_title,omitempty"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Type:      string(c.Type),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.String(),
	}
}

func dealToOutput(snap models.Snapshot, d models.Deal) DealOutput {
	out := DealOutput{
		ID:          d.ID,
		Title:       d.Title,
		Value:       d.Value,
		Stage:       string(d.Stage),
		Probability: d.Probability,
		Weighted:    d.Weighted(),
		ContactID:   d.ContactID,
		ContactName: views.ContactName(snap, d.ContactID),
		Notes:       d.Notes,
	}
	if d.ExpectedClose != nil {
		out.ExpectedClose = d.ExpectedClose.String()
	}
	return out
}

func activityToOutput(snap models.Snapshot, a models.Activity) ActivityOutput {
	return ActivityOutput{
		ID:          a.ID,
		Type:        string(a.Type),
		ContactID:   a.ContactID,
		ContactName: views.ContactName(snap, a.ContactID),
		DealID:      a.DealID,
		DealTitle:   views.DealTitle(snap, a.DealID),
		Description: a.Description,
		Date:        a.Date.Format(time.RFC3339),
	}
}

func dealsToOutput(snap models.Snapshot, deals []models.Deal) []DealOutput {
	out := make([]DealOutput, len(deals))
	for i, d := range deals {
		out[i] = dealToOutput(snap, d)
	}
	return out
}

func activitiesToOutput(snap models.Snapshot, activities []models.Activity) []ActivityOutput {
	out := make([]ActivityOutput, len(activities))
	for i, a := range activities {
		out[i] = activityToOutput(snap, a)
	}
	return out
}

// DeleteOutput reports a removal.
type DeleteOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
