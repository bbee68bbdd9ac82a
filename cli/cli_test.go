// ABOUTME: Tests for the human-facing CLI commands and the MCP server wiring
// ABOUTME: Captures command output and drives the server over in-memory transports
package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
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

func setup(t *testing.T) (*crm.Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return crm.Open(storage.NewMemoryKV(), crm.Options{Seed: true, Logger: log.New(io.Discard)}), &buf
}

func TestContactCommands(t *testing.T) {
	store, out := setup(t)

	require.NoError(t, AddContactCommand(store, []string{"--name", "Ada Lovelace", "--email", "ada@example.com", "--type", "business"}))
	assert.Contains(t, out.String(), "✓ Contact created: Ada Lovelace")

	out.Reset()
	require.NoError(t, ListContactsCommand(store, []string{"--type", "business"}))
	assert.Contains(t, out.String(), "Ada Lovelace")
	assert.Contains(t, out.String(), "Wilson Angling Club")
	assert.NotContains(t, out.String(), "Sarah Chen")
	assert.Contains(t, out.String(), "4 contact(s)")

	out.Reset()
	require.NoError(t, UpdateContactCommand(store, []string{"--phone", "0800 000", "2"}))
	c, err := store.GetContact("2")
	require.NoError(t, err)
	assert.Equal(t, "0800 000", c.Phone)
	assert.Equal(t, "s.chen@email.com", c.Email)

	out.Reset()
	require.NoError(t, ShowContactCommand(store, []string{"2"}))
	assert.Contains(t, out.String(), "Fly Fishing Starter Kit")
	assert.Contains(t, out.String(), "Customer confirmed budget")

	assert.Error(t, AddContactCommand(store, []string{"--name", "No Email"}))
	assert.Error(t, ListContactsCommand(store, []string{"--type", "vendor"}))
	assert.Error(t, ShowContactCommand(store, nil))
}

func TestDeleteContactNeedsConfirmation(t *testing.T) {
	store, out := setup(t)

	prevTerm, prevIn := isTerminal, stdin
	t.Cleanup(func() { isTerminal, stdin = prevTerm, prevIn })

	isTerminal = func() bool { return false }
	assert.Error(t, DeleteContactCommand(store, []string{"1"}))

	isTerminal = func() bool { return true }
	stdin = strings.NewReader("n\n")
	require.NoError(t, DeleteContactCommand(store, []string{"1"}))
	assert.Contains(t, out.String(), "with 1 deal(s) and 2 activit(ies)")
	assert.Contains(t, out.String(), "Cancelled")
	assert.Len(t, store.Snapshot().Contacts, 5)

	stdin = strings.NewReader("y\n")
	require.NoError(t, DeleteContactCommand(store, []string{"1"}))
	assert.Len(t, store.Snapshot().Contacts, 4)

	require.NoError(t, DeleteContactCommand(store, []string{"--yes", "2"}))
	snap := store.Snapshot()
	assert.Len(t, snap.Contacts, 3)
	assert.Len(t, snap.Deals, 3)
}

func TestDealCommands(t *testing.T) {
	store, out := setup(t)

	require.NoError(t, AddDealCommand(store, []string{"--title", "Waders", "--contact", "4", "--value", "250", "--close", "2026-06-01"}))
	assert.Contains(t, out.String(), "Lead, £250 at 30%")

	require.NoError(t, MoveDealCommand(store, []string{"5", "won"}))
	d, err := store.GetDeal("5")
	require.NoError(t, err)
	assert.Equal(t, 100, d.Probability)

	require.NoError(t, UpdateDealCommand(store, []string{"--probability", "55", "5"}))
	d, _ = store.GetDeal("5")
	assert.Equal(t, models.StageWon, d.Stage)
	assert.Equal(t, 55, d.Probability)

	require.NoError(t, UpdateDealCommand(store, []string{"--close", "", "5"}))
	d, _ = store.GetDeal("5")
	assert.Nil(t, d.ExpectedClose)

	out.Reset()
	require.NoError(t, ListDealsCommand(store, []string{"--stage", "won"}))
	assert.Contains(t, out.String(), "Charter Saltwater Package")
	assert.Contains(t, out.String(), "Pike Lure Collection")
	assert.NotContains(t, out.String(), "Waders")

	require.NoError(t, DeleteDealCommand(store, []string{"1"}))
	assert.Len(t, store.Snapshot().Activities, 4)

	assert.Error(t, MoveDealCommand(store, []string{"3", "archived"}))
	assert.Error(t, MoveDealCommand(store, []string{"3"}))
	assert.Error(t, UpdateDealCommand(store, []string{"--stage", "bogus", "3"}))
}

func TestActivityCommands(t *testing.T) {
	store, out := setup(t)

	require.NoError(t, LogActivityCommand(store, []string{"--contact", "3", "--deal", "3", "--type", "meeting", "--description", "Site visit"}))
	assert.Contains(t, out.String(), "✓ Logged meeting with Mike Thompson")
	assert.Equal(t, "Site visit", store.Snapshot().Activities[0].Description)

	out.Reset()
	require.NoError(t, ListActivitiesCommand(store, []string{"--deal", "3"}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Site visit")

	id := store.Snapshot().Activities[0].ID
	require.NoError(t, DeleteActivityCommand(store, []string{id}))
	assert.Len(t, store.Snapshot().Activities, 6)
}

func TestDashboardAndPipelineCommands(t *testing.T) {
	store, out := setup(t)

	require.NoError(t, DashboardCommand(store, nil))
	assert.Contains(t, out.String(), "£10,790")

	out.Reset()
	require.NoError(t, PipelineCommand(store, nil))
	text := out.String()
	assert.Contains(t, text, "Lead (1) £4,200")
	assert.Contains(t, text, "Lost (1) £120")
	assert.Less(t, strings.Index(text, "Lead"), strings.Index(text, "Negotiation"))
}

func TestExportImportRoundTrip(t *testing.T) {
	store, out := setup(t)
	path := filepath.Join(t.TempDir(), "backup.json")

	require.NoError(t, ExportCommand(store, []string{"--output", path}))
	assert.Contains(t, out.String(), "✓ Exported")

	require.NoError(t, store.DeleteContact("1"))
	require.NoError(t, ImportCommand(store, []string{"--dry-run", path}))
	assert.Len(t, store.Snapshot().Contacts, 4)

	require.NoError(t, ImportCommand(store, []string{path}))
	assert.Equal(t, models.SeedSnapshot(), store.Snapshot())

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"contacts":[],"deals":[{"id":"d","title":"x","stage":"lead","contactId":"ghost"}],"activities":[]}`), 0600))
	assert.Error(t, ImportCommand(store, []string{bad}))
	assert.Len(t, store.Snapshot().Contacts, 5)
}

func TestVizPipelineCommand(t *testing.T) {
	store, out := setup(t)
	require.NoError(t, VizPipelineCommand(context.Background(), store, nil))
	assert.Contains(t, out.String(), "digraph")
}

func TestMCPServerTools(t *testing.T) {
	store, _ := setup(t)
	ctx := context.Background()

	server := NewMCPServer(store, "test")
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	for _, want := range []string{"add_contact", "update_contact", "delete_contact", "find_contacts", "get_contact",
		"create_deal", "update_deal", "move_deal", "delete_deal", "log_activity", "list_activities",
		"get_dashboard", "get_pipeline"} {
		assert.Contains(t, names, want)
	}

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{Name: "move_deal", Arguments: map[string]any{"id": "1", "stage": "won"}})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	d, _ := store.GetDeal("1")
	assert.Equal(t, 100, d.Probability)

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{Name: "delete_deal", Arguments: map[string]any{"id": "404"}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
