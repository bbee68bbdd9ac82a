// ABOUTME: Tests for the MCP tool, resource and prompt handlers
// ABOUTME: Calls handlers directly against a seeded in-memory store
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/harperreed/hookline/crm"
	"github.com/harperreed/hookline/models"
	"github.com/harperreed/hookline/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *crm.Store {
	t.Helper()
	return crm.Open(storage.NewMemoryKV(), crm.Options{Seed: true, Logger: log.New(io.Discard)})
}

func intPtr(v int) *int { return &v }

func TestAddAndFindContacts(t *testing.T) {
	store := newTestStore(t)
	h := NewContactHandlers(store)
	ctx := context.Background()

	_, added, err := h.AddContact(ctx, nil, AddContactInput{Name: "Nina Chen", Email: "nina@example.com", Type: "business"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "business", added.Type)

	_, found, err := h.FindContacts(ctx, nil, FindContactsInput{Query: "chen"})
	require.NoError(t, err)
	assert.Equal(t, 2, found.Total)
	assert.Equal(t, "Sarah Chen", found.Contacts[0].Name)

	_, found, err = h.FindContacts(ctx, nil, FindContactsInput{Query: "chen", Type: "business"})
	require.NoError(t, err)
	require.Len(t, found.Contacts, 1)
	assert.Equal(t, "Nina Chen", found.Contacts[0].Name)

	_, found, err = h.FindContacts(ctx, nil, FindContactsInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, found.Contacts, 2)
	assert.Equal(t, 6, found.Total)
}

func TestFindContactsTypeFilterAndLimit(t *testing.T) {
	h := NewContactHandlers(newTestStore(t))
	ctx := context.Background()

	_, found, err := h.FindContacts(ctx, nil, FindContactsInput{Type: "Business"})
	require.NoError(t, err)
	assert.Equal(t, 3, found.Total)

	_, _, err = h.FindContacts(ctx, nil, FindContactsInput{Type: "vendor"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, found, err = h.FindContacts(ctx, nil, FindContactsInput{Limit: -1})
	require.NoError(t, err)
	assert.Len(t, found.Contacts, 5)
	assert.Equal(t, 5, found.Total)
}

func TestListActivitiesNegativeLimitUsesDefault(t *testing.T) {
	h := NewActivityHandlers(newTestStore(t))

	_, out, err := h.ListActivities(context.Background(), nil, ListActivitiesInput{Limit: -1})
	require.NoError(t, err)
	assert.Len(t, out.Activities, 6)
	assert.Equal(t, 6, out.Total)
}

func TestAddContactValidation(t *testing.T) {
	h := NewContactHandlers(newTestStore(t))
	_, _, err := h.AddContact(context.Background(), nil, AddContactInput{Name: "No Email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestUpdateContactPartial(t *testing.T) {
	h := NewContactHandlers(newTestStore(t))
	ctx := context.Background()

	_, out, err := h.UpdateContact(ctx, nil, UpdateContactInput{ID: "2", Company: "Chen Flies"})
	require.NoError(t, err)
	assert.Equal(t, "Sarah Chen", out.Name)
	assert.Equal(t, "Chen Flies", out.Company)
	assert.Equal(t, "2025-12-01", out.CreatedAt)

	_, _, err = h.UpdateContact(ctx, nil, UpdateContactInput{ID: "404", Name: "x"})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetContactWithProjections(t *testing.T) {
	h := NewContactHandlers(newTestStore(t))

	_, detail, err := h.GetContact(context.Background(), nil, GetContactInput{ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "James Wilson", detail.Contact.Name)
	require.Len(t, detail.Deals, 1)
	assert.Equal(t, "James Wilson", detail.Deals[0].ContactName)
	require.Len(t, detail.Activities, 2)
	assert.Equal(t, "1", detail.Activities[0].ID)
	assert.Equal(t, "Wilson Club Equipment Order", detail.Activities[0].DealTitle)
}

func TestDeleteContactCascades(t *testing.T) {
	store := newTestStore(t)
	h := NewContactHandlers(store)

	_, out, err := h.DeleteContact(context.Background(), nil, DeleteContactInput{ID: "2"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Contains(t, out.Message, "2 deal(s)")
	assert.Len(t, store.Snapshot().Deals, 4)
}

func TestCreateDealDefaults(t *testing.T) {
	h := NewDealHandlers(newTestStore(t))
	ctx := context.Background()

	_, lead, err := h.CreateDeal(ctx, nil, CreateDealInput{Title: "Waders", ContactID: "4", Value: 200})
	require.NoError(t, err)
	assert.Equal(t, "lead", lead.Stage)
	assert.Equal(t, DefaultProbability, lead.Probability)
	assert.InDelta(t, 60, lead.Weighted, 1e-9)
	assert.Equal(t, "Emma Davies", lead.ContactName)

	_, won, err := h.CreateDeal(ctx, nil, CreateDealInput{Title: "Reels", ContactID: "4", Stage: "Won", ExpectedClose: "2026-05-01"})
	require.NoError(t, err)
	assert.Equal(t, 100, won.Probability)
	assert.Equal(t, "2026-05-01", won.ExpectedClose)

	_, set, err := h.CreateDeal(ctx, nil, CreateDealInput{Title: "Line", ContactID: "4", Probability: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Probability)

	_, _, err = h.CreateDeal(ctx, nil, CreateDealInput{Title: "Ghost", ContactID: "404"})
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, _, err = h.CreateDeal(ctx, nil, CreateDealInput{Title: "Bad", ContactID: "4", Stage: "closed"})
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestMoveAndUpdateDeal(t *testing.T) {
	h := NewDealHandlers(newTestStore(t))
	ctx := context.Background()

	_, moved, err := h.MoveDeal(ctx, nil, MoveDealInput{ID: "3", Stage: "lost"})
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Probability)

	// A direct edit may put any probability on a lost deal.
	_, edited, err := h.UpdateDeal(ctx, nil, UpdateDealInput{ID: "3", Probability: intPtr(35), ExpectedClose: "none"})
	require.NoError(t, err)
	assert.Equal(t, "lost", edited.Stage)
	assert.Equal(t, 35, edited.Probability)
	assert.Empty(t, edited.ExpectedClose)

	_, _, err = h.MoveDeal(ctx, nil, MoveDealInput{ID: "404", Stage: "won"})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestDeleteDeal(t *testing.T) {
	store := newTestStore(t)
	h := NewDealHandlers(store)

	_, out, err := h.DeleteDeal(context.Background(), nil, DeleteDealInput{ID: "1"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Len(t, store.Snapshot().Activities, 4)
}

func TestLogAndListActivities(t *testing.T) {
	h := NewActivityHandlers(newTestStore(t))
	ctx := context.Background()

	_, logged, err := h.LogActivity(ctx, nil, LogActivityInput{ContactID: "5", DealID: "5", Type: "meeting", Description: "Boat survey"})
	require.NoError(t, err)
	assert.Equal(t, "Tom Richards", logged.ContactName)
	assert.Equal(t, "Charter Saltwater Package", logged.DealTitle)

	_, all, err := h.ListActivities(ctx, nil, ListActivitiesInput{})
	require.NoError(t, err)
	assert.Equal(t, 7, all.Total)
	assert.Equal(t, logged.ID, all.Activities[0].ID)

	_, forDeal, err := h.ListActivities(ctx, nil, ListActivitiesInput{DealID: "1"})
	require.NoError(t, err)
	assert.Equal(t, 2, forDeal.Total)

	_, forContact, err := h.ListActivities(ctx, nil, ListActivitiesInput{ContactID: "3", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, forContact.Total)

	_, _, err = h.LogActivity(ctx, nil, LogActivityInput{ContactID: "5", DealID: "1", Description: "wrong deal"})
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestDashboardAndPipeline(t *testing.T) {
	h := NewViewHandlers(newTestStore(t))
	ctx := context.Background()

	_, dash, err := h.GetDashboard(ctx, nil, GetDashboardInput{})
	require.NoError(t, err)
	assert.Equal(t, 5, dash.TotalContacts)
	assert.Equal(t, 4, dash.ActiveDeals)
	assert.InDelta(t, 10790, dash.PipelineValue, 1e-9)
	assert.Len(t, dash.RecentActivities, 5)
	assert.Empty(t, dash.StorageWarning)

	_, pipe, err := h.GetPipeline(ctx, nil, GetPipelineInput{})
	require.NoError(t, err)
	require.Len(t, pipe.Stages, 4)
	assert.Equal(t, "lead", pipe.Stages[0].Stage)

	_, won, err := h.GetPipeline(ctx, nil, GetPipelineInput{Stage: "won"})
	require.NoError(t, err)
	require.Len(t, won.Deals, 1)
	assert.Equal(t, "Pike Lure Collection", won.Deals[0].Title)
}

func TestDashboardReportsStorageWarning(t *testing.T) {
	kv := storage.NewMemoryKV()
	kv.FailWrites = errors.New("read-only filesystem")
	store := crm.Open(kv, crm.Options{Seed: true, Logger: log.New(io.Discard)})
	_, err := store.MoveDeal("1", models.StageWon)
	require.NoError(t, err)

	_, dash, err := NewViewHandlers(store).GetDashboard(context.Background(), nil, GetDashboardInput{})
	require.NoError(t, err)
	assert.Contains(t, dash.StorageWarning, "read-only filesystem")
}

func TestReadResource(t *testing.T) {
	h := NewResourceHandlers(newTestStore(t))
	ctx := context.Background()

	read := func(uri string) (string, error) {
		res, err := h.ReadResource(ctx, &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}})
		if err != nil {
			return "", err
		}
		return res.Contents[0].Text, nil
	}

	text, err := read("hookline://contacts")
	require.NoError(t, err)
	var contacts []ContactOutput
	require.NoError(t, json.Unmarshal([]byte(text), &contacts))
	assert.Len(t, contacts, 5)

	text, err = read("hookline://deals/4")
	require.NoError(t, err)
	assert.Contains(t, text, "Pike Lure Collection")
	assert.Contains(t, text, "very satisfied")

	text, err = read("hookline://dashboard")
	require.NoError(t, err)
	assert.Contains(t, text, "pipeline_value")

	_, err = read("crm://contacts")
	assert.Error(t, err)
	_, err = read("hookline://contacts/404")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	assert.Len(t, h.Resources(), 4)
	assert.Len(t, h.Templates(), 2)
}

func TestPrompts(t *testing.T) {
	h := NewPromptHandlers(newTestStore(t))
	ctx := context.Background()

	res, err := h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{
		Name:      "contact-summary",
		Arguments: map[string]string{"contact_id": "2"},
	}})
	require.NoError(t, err)
	text := res.Messages[0].Content.(*mcp.TextContent).Text
	assert.Contains(t, text, "Sarah Chen")
	assert.Contains(t, text, "Budget Rod Bundle")
	assert.Contains(t, text, "£400")

	res, err = h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Name: "deal-analysis"}})
	require.NoError(t, err)
	text = res.Messages[0].Content.(*mcp.TextContent).Text
	assert.True(t, strings.Contains(text, "£10,790"), text)

	_, err = h.GetPrompt(ctx, &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Name: "contact-summary"}})
	assert.Error(t, err)
}

func TestPipelineGraphTool(t *testing.T) {
	_, out, err := NewVizHandlers(newTestStore(t)).PipelineGraph(context.Background(), nil, PipelineGraphInput{})
	require.NoError(t, err)
	assert.Contains(t, out.DOTSource, "digraph")
	assert.Equal(t, 6, out.EdgeCount)
}
