// ABOUTME: Whole-snapshot replacement used by import
// ABOUTME: Rejects record sets with invalid records, duplicate ids or dangling references
package crm

import (
	"fmt"
	"sort"

	"github.com/harperreed/hookline/models"
)

// CheckIntegrity validates every record and verifies that each foreign key
// resolves. It returns the first problem found.
func CheckIntegrity(snap models.Snapshot) error {
	contacts := make(map[string]bool, len(snap.Contacts))
	for _, c := range snap.Contacts {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("contact %q: %w", c.ID, err)
		}
		if contacts[c.ID] {
			return models.NewValidationError("id", fmt.Sprintf("duplicate contact id %q", c.ID))
		}
		contacts[c.ID] = true
	}

	deals := make(map[string]string, len(snap.Deals))
	for _, d := range snap.Deals {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("deal %q: %w", d.ID, err)
		}
		if _, dup := deals[d.ID]; dup {
			return models.NewValidationError("id", fmt.Sprintf("duplicate deal id %q", d.ID))
		}
		if !contacts[d.ContactID] {
			return fmt.Errorf("deal %q: %w", d.ID, models.NotFound("contact", d.ContactID))
		}
		deals[d.ID] = d.ContactID
	}

	activities := make(map[string]bool, len(snap.Activities))
	for _, a := range snap.Activities {
		if a.ID == "" {
			return models.NewValidationError("id", "activity id is required")
		}
		if activities[a.ID] {
			return models.NewValidationError("id", fmt.Sprintf("duplicate activity id %q", a.ID))
		}
		activities[a.ID] = true
		if !a.Type.Valid() {
			return fmt.Errorf("activity %q: %w", a.ID, models.NewValidationError("type", "must be one of call, email, meeting, note"))
		}
		if !contacts[a.ContactID] {
			return fmt.Errorf("activity %q: %w", a.ID, models.NotFound("contact", a.ContactID))
		}
		if a.DealID != "" {
			if _, ok := deals[a.DealID]; !ok {
				return fmt.Errorf("activity %q: %w", a.ID, models.NotFound("deal", a.DealID))
			}
		}
	}
	return nil
}

// Replace swaps the whole record set for snap after checking integrity.
// Activities are re-ordered newest-first; ties keep their given order.
func (s *Store) Replace(snap models.Snapshot) error {
	if err := CheckIntegrity(snap); err != nil {
		return err
	}

	next := snap.Clone()
	sort.SliceStable(next.Activities, func(i, j int) bool {
		return next.Activities[i].Date.After(next.Activities[j].Date)
	})

	err := s.update("snapshot", "replace", func(t *txn) error {
		t.state = next
		t.touch(allKeys...)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("record set replaced",
		"contacts", len(next.Contacts),
		"deals", len(next.Deals),
		"activities", len(next.Activities))
	return nil
}
