// ABOUTME: Tests for dashboard KPIs, pipeline aggregation and contact filtering
// ABOUTME: Runs against the sample record set and small hand-built snapshots
package views

import (
	"testing"
	"time"

	"github.com/harperreed/hookline/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeKPIsSeed(t *testing.T) {
	k := ComputeKPIs(models.SeedSnapshot())

	assert.Equal(t, 5, k.TotalContacts)
	assert.Equal(t, 4, k.ActiveDeals)
	assert.InDelta(t, 1750+280+7500+1260, k.PipelineValue, 1e-9)
	assert.InDelta(t, 180, k.WonValue, 1e-9)
	require.Len(t, k.RecentActivities, RecentLimit)
	assert.Equal(t, []string{"2", "1", "3", "4", "6"}, ids(k.RecentActivities))
}

func TestPipelineValueSingleLead(t *testing.T) {
	snap := models.Snapshot{
		Deals: []models.Deal{
			{ID: "a", Stage: models.StageLead, Value: 1000, Probability: 25},
			{ID: "b", Stage: models.StageWon, Value: 5000, Probability: 100},
			{ID: "c", Stage: models.StageLost, Value: 800, Probability: 0},
		},
	}
	k := ComputeKPIs(snap)
	assert.Equal(t, 1, k.ActiveDeals)
	assert.InDelta(t, 250, k.PipelineValue, 1e-9)
	assert.InDelta(t, 5000, k.WonValue, 1e-9)
}

func TestPipelineValueIgnoresOverriddenTerminalProbability(t *testing.T) {
	snap := models.Snapshot{
		Deals: []models.Deal{
			{ID: "a", Stage: models.StageWon, Value: 1000, Probability: 40},
			{ID: "b", Stage: models.StageLost, Value: 1000, Probability: 60},
		},
	}
	k := ComputeKPIs(snap)
	assert.Zero(t, k.ActiveDeals)
	assert.Zero(t, k.PipelineValue)
	assert.InDelta(t, 1000, k.WonValue, 1e-9)
}

func TestRecentActivitiesSortsOutOfOrderInput(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var acts []models.Activity
	for i := 0; i < 7; i++ {
		acts = append(acts, models.Activity{ID: string(rune('a' + i)), Date: base.Add(time.Duration(i) * time.Hour)})
	}
	snap := models.Snapshot{Activities: acts}

	k := ComputeKPIs(snap)
	assert.Equal(t, []string{"g", "f", "e", "d", "c"}, ids(k.RecentActivities))
	assert.Equal(t, "a", snap.Activities[0].ID, "input is not reordered")
}

func TestSortActivitiesNewestFirstIsStable(t *testing.T) {
	same := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	acts := []models.Activity{
		{ID: "x", Date: same},
		{ID: "old", Date: same.Add(-time.Hour)},
		{ID: "y", Date: same},
	}
	assert.Equal(t, []string{"x", "y", "old"}, ids(SortActivitiesNewestFirst(acts)))
}

func TestPipelineByStage(t *testing.T) {
	got := PipelineByStage(models.SeedSnapshot())
	want := []StageSummary{
		{Stage: models.StageLead, Count: 1, Value: 4200},
		{Stage: models.StageQualified, Count: 1, Value: 350},
		{Stage: models.StageProposal, Count: 1, Value: 2500},
		{Stage: models.StageNegotiation, Count: 1, Value: 15000},
	}
	assert.Equal(t, want, got)
}

func TestPipelineByStageOrderAndIdempotence(t *testing.T) {
	snap := models.Snapshot{
		Deals: []models.Deal{
			{ID: "1", Stage: models.StageNegotiation, Value: 10},
			{ID: "2", Stage: models.StageLead, Value: 5},
			{ID: "3", Stage: models.StageNegotiation, Value: 20},
		},
	}
	first := PipelineByStage(snap)
	second := PipelineByStage(snap)
	assert.Equal(t, first, second)

	require.Len(t, first, 4)
	assert.Equal(t, models.StageLead, first[0].Stage)
	assert.Equal(t, 0, first[1].Count)
	assert.Equal(t, StageSummary{Stage: models.StageNegotiation, Count: 2, Value: 30}, first[3])
}

func TestFilterContacts(t *testing.T) {
	contacts := models.SeedContacts()

	got := FilterContacts(contacts, "chen", TypeFilterAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Sarah Chen", got[0].Name)

	assert.Len(t, FilterContacts(contacts, "", TypeFilterAll), 5)
	assert.Len(t, FilterContacts(contacts, "", ""), 5)
	assert.Empty(t, FilterContacts(contacts, "zzz", TypeFilterAll))

	// Company and email match too.
	got = FilterContacts(contacts, "LAKESIDE", TypeFilterAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Mike Thompson", got[0].Name)
	assert.Len(t, FilterContacts(contacts, "email.com", TypeFilterAll), 5)
}

func TestFilterContactsQueryIsNotTrimmed(t *testing.T) {
	contacts := models.SeedContacts()
	assert.Empty(t, FilterContacts(contacts, "chen ", TypeFilterAll))
	assert.Len(t, FilterContacts(contacts, "sarah chen", TypeFilterAll), 1)
}

func TestParseTypeFilter(t *testing.T) {
	for raw, want := range map[string]string{
		"":             TypeFilterAll,
		"All":          TypeFilterAll,
		"Business":     "business",
		" individual ": "individual",
	} {
		got, err := ParseTypeFilter(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseTypeFilter("vendor")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFilterContactsByType(t *testing.T) {
	contacts := models.SeedContacts()

	business := FilterContacts(contacts, "", string(models.ContactBusiness))
	assert.Equal(t, []string{"1", "3", "5"}, contactIDs(business))
	for _, c := range business {
		assert.Equal(t, models.ContactBusiness, c.Type)
	}

	individual := FilterContacts(contacts, "e", string(models.ContactIndividual))
	assert.Equal(t, []string{"2", "4"}, contactIDs(individual))

	assert.Empty(t, FilterContacts(contacts, "chen", string(models.ContactBusiness)))
}

func TestProjections(t *testing.T) {
	snap := models.SeedSnapshot()

	deals := DealsForContact(snap, "2")
	assert.Equal(t, []string{"2", "6"}, dealIDs(deals))

	acts := ActivitiesForContact(snap, "1")
	assert.Equal(t, []string{"1", "6"}, ids(acts))

	assert.Equal(t, []string{"1", "6"}, ids(ActivitiesForDeal(snap, "1")))
	assert.Empty(t, ActivitiesForDeal(snap, ""))

	assert.Equal(t, []string{"4"}, dealIDs(DealsInStage(snap, models.StageWon)))
}

func TestEmptyProjections(t *testing.T) {
	snap := models.SeedSnapshot()
	snap.Contacts = append(snap.Contacts, models.Contact{ID: "new", Name: "Lonely", Email: "l@example.com", Type: models.ContactIndividual})

	deals := DealsForContact(snap, "new")
	acts := ActivitiesForContact(snap, "new")
	assert.NotNil(t, deals)
	assert.Empty(t, deals)
	assert.NotNil(t, acts)
	assert.Empty(t, acts)

	k := ComputeKPIs(models.Snapshot{})
	assert.Zero(t, k.TotalContacts)
	assert.Empty(t, k.RecentActivities)
}

func TestNameLookups(t *testing.T) {
	snap := models.SeedSnapshot()
	assert.Equal(t, "Emma Davies", ContactName(snap, "4"))
	assert.Equal(t, "Unknown", ContactName(snap, "404"))
	assert.Equal(t, "Budget Rod Bundle", DealTitle(snap, "6"))
	assert.Equal(t, "", DealTitle(snap, "404"))
	assert.Equal(t, "", DealTitle(snap, ""))
}

func ids(as []models.Activity) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func dealIDs(ds []models.Deal) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func contactIDs(cs []models.Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}
