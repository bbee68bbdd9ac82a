// ABOUTME: Pure derived views over a record snapshot
// ABOUTME: KPIs, pipeline aggregation, contact search and per-record projections
package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/hookline/models"
)

// RecentLimit is how many activities the dashboard shows.
const RecentLimit = 5

// TypeFilterAll disables contact type filtering.
const TypeFilterAll = "all"

// KPIs are the dashboard headline figures.
type KPIs struct {
	TotalContacts    int               `json:"totalContacts"`
	ActiveDeals      int               `json:"activeDeals"`
	PipelineValue    float64           `json:"pipelineValue"`
	WonValue         float64           `json:"wonValue"`
	RecentActivities []models.Activity `json:"recentActivities"`
}

// StageSummary is one column of the pipeline.
type StageSummary struct {
	Stage models.Stage `json:"stage"`
	Count int          `json:"count"`
	Value float64      `json:"value"`
}

// ComputeKPIs derives the dashboard figures. Pipeline value weights each
// active deal by its probability; won value is unweighted and not limited
// to any period.
func ComputeKPIs(snap models.Snapshot) KPIs {
	k := KPIs{TotalContacts: len(snap.Contacts)}
	for _, d := range snap.Deals {
		switch {
		case d.Stage == models.StageWon:
			k.WonValue += d.Value
		case !d.Stage.Terminal():
			k.ActiveDeals++
			k.PipelineValue += d.Weighted()
		}
	}

	recent := SortActivitiesNewestFirst(snap.Activities)
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	k.RecentActivities = recent
	return k
}

// PipelineByStage returns count and total value for each active stage, in
// canonical stage order. Stages with no deals are included with zeros.
func PipelineByStage(snap models.Snapshot) []StageSummary {
	active := models.ActiveStages()
	out := make([]StageSummary, len(active))
	pos := make(map[models.Stage]int, len(active))
	for i, st := range active {
		out[i] = StageSummary{Stage: st}
		pos[st] = i
	}
	for _, d := range snap.Deals {
		if i, ok := pos[d.Stage]; ok {
			out[i].Count++
			out[i].Value += d.Value
		}
	}
	return out
}

// FilterContacts returns contacts whose name, email or company contains
// query (case-insensitive) and whose type matches typeFilter. An empty query
// matches everything; typeFilter "" or "all" matches every type. Stored
// order is preserved.
func FilterContacts(contacts []models.Contact, query, typeFilter string) []models.Contact {
	q := strings.ToLower(query)
	out := []models.Contact{}
	for _, c := range contacts {
		if typeFilter != "" && typeFilter != TypeFilterAll && string(c.Type) != typeFilter {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Email), q) &&
			!strings.Contains(strings.ToLower(c.Company), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ParseTypeFilter normalizes a contact type filter. Empty means all.
func ParseTypeFilter(raw string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" || v == TypeFilterAll {
		return TypeFilterAll, nil
	}
	if !models.ContactType(v).Valid() {
		return "", models.NewValidationError("type", fmt.Sprintf("invalid type filter %q (valid: all, individual, business)", raw))
	}
	return v, nil
}

// DealsForContact returns the contact's deals in stored order.
func DealsForContact(snap models.Snapshot, contactID string) []models.Deal {
	out := []models.Deal{}
	for _, d := range snap.Deals {
		if d.ContactID == contactID {
			out = append(out, d)
		}
	}
	return out
}

// DealsInStage returns the deals in one stage in stored order.
func DealsInStage(snap models.Snapshot, stage models.Stage) []models.Deal {
	out := []models.Deal{}
	for _, d := range snap.Deals {
		if d.Stage == stage {
			out = append(out, d)
		}
	}
	return out
}

// ActivitiesForContact returns the contact's activities, newest first.
func ActivitiesForContact(snap models.Snapshot, contactID string) []models.Activity {
	out := []models.Activity{}
	for _, a := range snap.Activities {
		if a.ContactID == contactID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out
}

// ActivitiesForDeal returns the activities logged against a deal, newest first.
func ActivitiesForDeal(snap models.Snapshot, dealID string) []models.Activity {
	out := []models.Activity{}
	for _, a := range snap.Activities {
		if a.DealID != "" && a.DealID == dealID {
			out = append(out, a)
		}
	}
	sortNewestFirst(out)
	return out
}

// SortActivitiesNewestFirst returns a sorted copy. Activities with equal
// dates keep their relative order.
func SortActivitiesNewestFirst(activities []models.Activity) []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(as []models.Activity) {
	sort.SliceStable(as, func(i, j int) bool {
		return as[i].Date.After(as[j].Date)
	})
}

// ContactName resolves a contact id for display.
func ContactName(snap models.Snapshot, id string) string {
	for _, c := range snap.Contacts {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}

// DealTitle resolves a deal id for display; empty when unknown.
func DealTitle(snap models.Snapshot, id string) string {
	if id == "" {
		return ""
	}
	for _, d := range snap.Deals {
		if d.ID == id {
			return d.Title
		}
	}
	return ""
}
