// ABOUTME: Contact create, update and delete with cascading removal
// ABOUTME: Deleting a contact removes its deals and every activity tied to them
package crm

import (
	"github.com/harperreed/hookline/models"
)

func (t *txn) contactIndex(id string) int {
	for i := range t.state.Contacts {
		if t.state.Contacts[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateContact assigns an id and today's date and appends the contact.
func (s *Store) CreateContact(in models.ContactInput) (models.Contact, error) {
	if err := in.Validate(); err != nil {
		return models.Contact{}, err
	}
	if in.Type == "" {
		in.Type = models.ContactIndividual
	}

	var created models.Contact
	err := s.update("contact", "create", func(t *txn) error {
		created = models.Contact{
			ID:        s.newID(),
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Company:   in.Company,
			Type:      in.Type,
			Notes:     in.Notes,
			CreatedAt: models.NewDate(t.now),
		}
		t.state.Contacts = append(t.state.Contacts, created)
		t.touch(KeyContacts)
		return nil
	})
	if err != nil {
		return models.Contact{}, err
	}

	s.logger.Debug("contact created", "id", created.ID)
	return created, nil
}

// UpdateContact replaces the stored contact with the same id, in place.
// CreatedAt is immutable and keeps its stored value.
func (s *Store) UpdateContact(c models.Contact) (models.Contact, error) {
	if c.Type == "" {
		c.Type = models.ContactIndividual
	}
	if err := c.Validate(); err != nil {
		return models.Contact{}, err
	}

	err := s.update("contact", "update", func(t *txn) error {
		i := t.contactIndex(c.ID)
		if i < 0 {
			return models.NotFound("contact", c.ID)
		}
		c.CreatedAt = t.state.Contacts[i].CreatedAt
		t.state.Contacts[i] = c
		t.touch(KeyContacts)
		return nil
	})
	if err != nil {
		return models.Contact{}, err
	}

	s.logger.Debug("contact updated", "id", c.ID)
	return c, nil
}

// DeleteContact removes the contact, every deal referencing it, and every
// activity referencing either the contact or one of those deals.
func (s *Store) DeleteContact(id string) error {
	var dealsRemoved, activitiesRemoved int
	err := s.update("contact", "delete", func(t *txn) error {
		if t.contactIndex(id) < 0 {
			return models.NotFound("contact", id)
		}

		contacts := t.state.Contacts[:0]
		for _, c := range t.state.Contacts {
			if c.ID != id {
				contacts = append(contacts, c)
			}
		}
		t.state.Contacts = contacts

		removedDeals := make(map[string]bool)
		deals := t.state.Deals[:0]
		for _, d := range t.state.Deals {
			if d.ContactID == id {
				removedDeals[d.ID] = true
				continue
			}
			deals = append(deals, d)
		}
		t.state.Deals = deals
		dealsRemoved = len(removedDeals)

		activities := t.state.Activities[:0]
		for _, a := range t.state.Activities {
			if a.ContactID == id || (a.DealID != "" && removedDeals[a.DealID]) {
				activitiesRemoved++
				continue
			}
			activities = append(activities, a)
		}
		t.state.Activities = activities

		t.touch(KeyContacts, KeyDeals, KeyActivities)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("contact deleted", "id", id, "deals", dealsRemoved, "activities", activitiesRemoved)
	return nil
}

// GetContact returns a copy of the contact with id.
func (s *Store) GetContact(id string) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.state.Contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Contact{}, models.NotFound("contact", id)
}
