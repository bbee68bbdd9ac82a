// ABOUTME: Tests for model enums, dates, validation and errors
// ABOUTME: Covers stage helpers, Date JSON handling and field validation
package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagesCanonicalOrder(t *testing.T) {
	assert.Equal(t, []Stage{StageLead, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost}, Stages())
	assert.Equal(t, []Stage{StageLead, StageQualified, StageProposal, StageNegotiation}, ActiveStages())

	// Returned slice is a copy.
	s := Stages()
	s[0] = StageLost
	assert.Equal(t, StageLead, Stages()[0])
}

func TestStageTerminal(t *testing.T) {
	for _, s := range Stages() {
		assert.Equal(t, s == StageWon || s == StageLost, s.Terminal(), string(s))
	}
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("  Negotiation ")
	require.NoError(t, err)
	assert.Equal(t, StageNegotiation, s)
	assert.Equal(t, "Negotiation", s.Title())

	_, err = ParseStage("closed_won")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-02-28"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(d.Time))

	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	assert.True(t, back.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`"2026-01-10T15:04:05Z"`), &back))
	assert.Equal(t, "2026-01-10", back.String())

	assert.Error(t, json.Unmarshal([]byte(`"tomorrow"`), &back))
}

func TestDealExpectedCloseNullable(t *testing.T) {
	data, err := json.Marshal(Deal{ID: "d", Title: "t", Stage: StageLead, ContactID: "c"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expectedClose":null`)
}

func TestNewDateTruncates(t *testing.T) {
	d := NewDate(time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2026-03-04", d.String())
	assert.Equal(t, 0, d.Hour())
}

func TestContactInputValidate(t *testing.T) {
	assert.NoError(t, ContactInput{Name: "A", Email: "a@x.com"}.Validate())

	err := ContactInput{Name: " ", Type: "robot"}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 3)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestDealValidate(t *testing.T) {
	assert.NoError(t, DealInput{Title: "T", ContactID: "1", Probability: 30}.Validate())

	cases := map[string]DealInput{
		"contactId":   {Title: "T"},
		"title":       {ContactID: "1"},
		"value":       {Title: "T", ContactID: "1", Value: -1},
		"probability": {Title: "T", ContactID: "1", Probability: 101},
		"stage":       {Title: "T", ContactID: "1", Stage: "closed"},
	}
	for field, in := range cases {
		err := in.Validate()
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), field)
		assert.Equal(t, field, verr.Errors[0].Field)
	}

	err := Deal{ID: "1", Title: "T", ContactID: "1"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage")
}

func TestActivityInputValidate(t *testing.T) {
	assert.NoError(t, ActivityInput{ContactID: "1", Description: "hi"}.Validate())
	assert.Error(t, ActivityInput{ContactID: "1"}.Validate())
	assert.Error(t, ActivityInput{Description: "hi"}.Validate())
	assert.Error(t, ActivityInput{ContactID: "1", Description: "hi", Type: "fax"}.Validate())
}

func TestReferenceError(t *testing.T) {
	err := NotFound("deal", "42")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, `deal "42" not found`, err.Error())
}

func TestSeedIsFreshAndConsistent(t *testing.T) {
	a := SeedSnapshot()
	a.Contacts[0].Name = "changed"
	*a.Deals[0].ExpectedClose = Date{}
	b := SeedSnapshot()
	assert.Equal(t, "James Wilson", b.Contacts[0].Name)
	assert.Equal(t, "2026-02-28", b.Deals[0].ExpectedClose.String())

	contacts := map[string]bool{}
	for _, c := range b.Contacts {
		contacts[c.ID] = true
	}
	deals := map[string]string{}
	for _, d := range b.Deals {
		assert.True(t, contacts[d.ContactID])
		deals[d.ID] = d.ContactID
	}
	for i, a := range b.Activities {
		assert.True(t, contacts[a.ContactID])
		assert.Equal(t, a.ContactID, deals[a.DealID])
		if i > 0 {
			assert.False(t, a.Date.After(b.Activities[i-1].Date), "seed activities must be newest first")
		}
	}
}

func TestSnapshotClone(t *testing.T) {
	s := SeedSnapshot()
	c := s.Clone()
	c.Deals[0].Title = "other"
	c.Deals[0].ExpectedClose.Time = time.Time{}
	c.Activities[0].Description = "other"
	assert.Equal(t, "Wilson Club Equipment Order", s.Deals[0].Title)
	assert.False(t, s.Deals[0].ExpectedClose.IsZero())
	assert.NotEqual(t, "other", s.Activities[0].Description)
}
