// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, update_contact, delete_contact, find_contacts and get_contact
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ContactHandlers struct {
	store *crm.Store
}

func NewContactHandlers(store *crm.Store) *ContactHandlers {
	return &ContactHandlers{store: store}
}

type AddContactInput struct {
	Name    string `json:"name" jsonschema:"Contact name (required)"`
	Email   string `json:"email" jsonschema:"Contact email address (required)"`
	Phone   string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	Company string `json:"company,omitempty" jsonschema:"Company name"`
	Type    string `json:"type,omitempty" jsonschema:"individual or business (default individual)"`
	Notes   string `json:"notes,omitempty" jsonschema:"Additional notes about the contact"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contact, err := h.store.CreateContact(models.ContactInput{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Type:    models.ContactType(input.Type),
		Notes:   input.Notes,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}
	return nil, contactToOutput(contact), nil
}

type UpdateContactInput struct {
	ID      string `json:"id" jsonschema:"Contact ID (required)"`
	Name    string `json:"name,omitempty" jsonschema:"Updated contact name"`
	Email   string `json:"email,omitempty" jsonschema:"Updated email address"`
	Phone   string `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Company string `json:"company,omitempty" jsonschema:"Updated company name"`
	Type    string `json:"type,omitempty" jsonschema:"Updated type: individual or business"`
	Notes   string `json:"notes,omitempty" jsonschema:"Updated notes"`
}

func (h *ContactHandlers) UpdateContact(_ context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == "" {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}

	contact, err := h.store.GetContact(input.ID)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	// Update fields if provided
	if input.Name != "" {
		contact.Name = input.Name
	}
	if input.Email != "" {
		contact.Email = input.Email
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}
	if input.Company != "" {
		contact.Company = input.Company
	}
	if input.Type != "" {
		contact.Type = models.ContactType(input.Type)
	}
	if input.Notes != "" {
		contact.Notes = input.Notes
	}

	updated, err := h.store.UpdateContact(contact)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return nil, contactToOutput(updated), nil
}

type DeleteContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

func (h *ContactHandlers) DeleteContact(_ context.Context, request *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if input.ID == "" {
		return nil, DeleteOutput{}, fmt.Errorf("id is required")
	}

	snap := h.store.Snapshot()
	deals := len(views.DealsForContact(snap, input.ID))

	if err := h.store.DeleteContact(input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil, DeleteOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted contact %s and %d deal(s)", input.ID, deals),
	}, nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search text matched against name, email and company"`
	Type  string `json:"type,omitempty" jsonschema:"all, individual or business (default all)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Total    int             `json:"total"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	typeFilter, err := views.ParseTypeFilter(input.Type)
	if err != nil {
		return nil, FindContactsOutput{}, err
	}

	matches := views.FilterContacts(h.store.Snapshot().Contacts, input.Query, typeFilter)
	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	result := make([]ContactOutput, len(matches))
	for i, c := range matches {
		result[i] = contactToOutput(c)
	}
	return nil, FindContactsOutput{Contacts: result, Total: total}, nil
}

type GetContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

type ContactDetailOutput struct {
	Contact    ContactOutput    `json:"contact"`
	Deals      []DealOutput     `json:"deals"`
	Activities []ActivityOutput `json:"activities"`
}

func (h *ContactHandlers) GetContact(_ context.Context, request *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, ContactDetailOutput, error) {
	if input.ID == "" {
		return nil, ContactDetailOutput{}, fmt.Errorf("id is required")
	}

	snap := h.store.Snapshot()
	contact, err := h.store.GetContact(input.ID)
	if err != nil {
		return nil, ContactDetailOutput{}, err
	}

	return nil, ContactDetailOutput{
		Contact:    contactToOutput(contact),
		Deals:      dealsToOutput(snap, views.DealsForContact(snap, input.ID)),
		Activities: activitiesToOutput(snap, views.ActivitiesForContact(snap, input.ID)),
	}, nil
}
