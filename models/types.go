// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Contact, Deal, Activity, their enums and the Snapshot bundle
package models

import (
	"fmt"
	"strings"
	"time"
)

// Stage is the position of a deal in the sales pipeline.
type Stage string

const (
	StageLead        Stage = "lead"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageWon         Stage = "won"
	StageLost        Stage = "lost"
)

var stageOrder = []Stage{
	StageLead,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageWon,
	StageLost,
}

// Stages returns all stages in canonical pipeline order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// ActiveStages returns the non-terminal stages in canonical order.
func ActiveStages() []Stage {
	return []Stage{StageLead, StageQualified, StageProposal, StageNegotiation}
}

// Valid reports whether s is one of the six known stages.
func (s Stage) Valid() bool {
	for _, known := range stageOrder {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the deal is closed (won or lost).
func (s Stage) Terminal() bool {
	return s == StageWon || s == StageLost
}

// Title returns the stage label with its first letter upper-cased.
func (s Stage) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseStage normalizes and validates a stage name.
func ParseStage(raw string) (Stage, error) {
	s := Stage(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", NewValidationError("stage", fmt.Sprintf("invalid stage %q (valid: lead, qualified, proposal, negotiation, won, lost)", raw))
	}
	return s, nil
}

// ContactType distinguishes people from organisations.
type ContactType string

const (
	ContactIndividual ContactType = "individual"
	ContactBusiness   ContactType = "business"
)

// Valid reports whether t is a known contact type.
func (t ContactType) Valid() bool {
	return t == ContactIndividual || t == ContactBusiness
}

// ActivityType is the kind of interaction logged against a contact.
type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityNote    ActivityType = "note"
)

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote:
		return true
	}
	return false
}

type Contact struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Company   string      `json:"company"`
	Type      ContactType `json:"type"`
	Notes     string      `json:"notes"`
	CreatedAt Date        `json:"createdAt"`
}

type Deal struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Value         float64 `json:"value"`
	Stage         Stage   `json:"stage"`
	ContactID     string  `json:"contactId"`
	Probability   int     `json:"probability"`
	ExpectedClose *Date   `json:"expectedClose"`
	Notes         string  `json:"notes"`
}

// Weighted returns the probability-weighted value of the deal.
func (d Deal) Weighted() float64 {
	return d.Value * float64(d.Probability) / 100
}

type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	ContactID   string       `json:"contactId"`
	DealID      string       `json:"dealId,omitempty"`
	Description string       `json:"description"`
	Date        time.Time    `json:"date"`
}

// ContactInput carries the caller-supplied fields of a new contact.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Type    ContactType
	Notes   string
}

// DealInput carries the caller-supplied fields of a new deal.
type DealInput struct {
	Title         string
	Value         float64
	Stage         Stage
	ContactID     string
	Probability   int
	ExpectedClose *Date
	Notes         string
}

// ActivityInput carries the caller-supplied fields of a new activity.
type ActivityInput struct {
	Type        ActivityType
	ContactID   string
	DealID      string
	Description string
}

// Snapshot is the complete record set at a point in time.
type Snapshot struct {
	Contacts   []Contact  `json:"contacts"`
	Deals      []Deal     `json:"deals"`
	Activities []Activity `json:"activities"`
}

// Clone returns a copy that shares no backing arrays with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Contacts:   make([]Contact, len(s.Contacts)),
		Deals:      make([]Deal, len(s.Deals)),
		Activities: make([]Activity, len(s.Activities)),
	}
	copy(out.Contacts, s.Contacts)
	copy(out.Activities, s.Activities)
	for i, d := range s.Deals {
		if d.ExpectedClose != nil {
			ec := *d.ExpectedClose
			d.ExpectedClose = &ec
		}
		out.Deals[i] = d
	}
	return out
}
