// ABOUTME: Sample record set loaded when storage is empty
// ABOUTME: Five contacts, six deals and six activities for a tackle shop
package models

import "time"

func mustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *Date {
	d := mustDate(s)
	return &d
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedContacts returns a fresh copy of the sample contacts.
func SeedContacts() []Contact {
	return []Contact{
		{ID: "1", Name: "James Wilson", Email: "james.w@email.com", Phone: "07700 123456", Company: "Wilson Angling Club", Type: ContactBusiness, Notes: "Bulk buyer, interested in carp equipment", CreatedAt: mustDate("2025-11-15")},
		{ID: "2", Name: "Sarah Chen", Email: "s.chen@email.com", Phone: "07700 234567", Company: "", Type: ContactIndividual, Notes: "Fly fishing enthusiast", CreatedAt: mustDate("2025-12-01")},
		{ID: "3", Name: "Mike Thompson", Email: "mike.t@email.com", Phone: "07700 345678", Company: "Lakeside Tackle Shop", Type: ContactBusiness, Notes: "Potential wholesale partner", CreatedAt: mustDate("2026-01-10")},
		{ID: "4", Name: "Emma Davies", Email: "emma.d@email.com", Phone: "07700 456789", Company: "", Type: ContactIndividual, Notes: "Regular customer, pike fishing specialist", CreatedAt: mustDate("2025-10-20")},
		{ID: "5", Name: "Tom Richards", Email: "tom.r@email.com", Phone: "07700 567890", Company: "Sea Breeze Charters", Type: ContactBusiness, Notes: "Charter boat operator, needs saltwater gear", CreatedAt: mustDate("2026-01-25")},
	}
}

// SeedDeals returns a fresh copy of the sample deals.
func SeedDeals() []Deal {
	return []Deal{
		{ID: "1", Title: "Wilson Club Equipment Order", Value: 2500, Stage: StageProposal, ContactID: "1", Probability: 70, ExpectedClose: datePtr("2026-02-28"), Notes: "Annual equipment refresh"},
		{ID: "2", Title: "Fly Fishing Starter Kit", Value: 350, Stage: StageQualified, ContactID: "2", Probability: 80, ExpectedClose: datePtr("2026-02-15"), Notes: "Complete beginner setup"},
		{ID: "3", Title: "Lakeside Wholesale Partnership", Value: 15000, Stage: StageNegotiation, ContactID: "3", Probability: 50, ExpectedClose: datePtr("2026-03-31"), Notes: "Monthly supply agreement"},
		{ID: "4", Title: "Pike Lure Collection", Value: 180, Stage: StageWon, ContactID: "4", Probability: 100, ExpectedClose: datePtr("2026-01-20"), Notes: "Premium lure set"},
		{ID: "5", Title: "Charter Saltwater Package", Value: 4200, Stage: StageLead, ContactID: "5", Probability: 30, ExpectedClose: datePtr("2026-04-15"), Notes: "Full charter boat equipment"},
		{ID: "6", Title: "Budget Rod Bundle", Value: 120, Stage: StageLost, ContactID: "2", Probability: 0, ExpectedClose: datePtr("2026-01-10"), Notes: "Customer went with competitor"},
	}
}

// SeedActivities returns a fresh copy of the sample activities, newest first.
func SeedActivities() []Activity {
	return []Activity{
		{ID: "2", Type: ActivityEmail, ContactID: "3", DealID: "3", Description: "Sent wholesale pricing proposal", Date: at("2026-02-01T14:00:00")},
		{ID: "1", Type: ActivityCall, ContactID: "1", DealID: "1", Description: "Discussed equipment needs for upcoming season", Date: at("2026-02-01T10:30:00")},
		{ID: "3", Type: ActivityMeeting, ContactID: "5", DealID: "5", Description: "On-site visit to Sea Breeze marina", Date: at("2026-01-30T09:00:00")},
		{ID: "4", Type: ActivityNote, ContactID: "2", DealID: "2", Description: "Customer confirmed budget of £400", Date: at("2026-01-29T16:45:00")},
		{ID: "6", Type: ActivityEmail, ContactID: "1", DealID: "1", Description: "Sent updated quote with volume discount", Date: at("2026-01-28T13:30:00")},
		{ID: "5", Type: ActivityCall, ContactID: "4", DealID: "4", Description: "Follow-up on delivered pike lures - very satisfied", Date: at("2026-01-25T11:00:00")},
	}
}

// SeedSnapshot bundles the three sample collections.
func SeedSnapshot() Snapshot {
	return Snapshot{
		Contacts:   SeedContacts(),
		Deals:      SeedDeals(),
		Activities: SeedActivities(),
	}
}
