// ABOUTME: Deal create, update and delete
// ABOUTME: A deal must reference an existing contact; deleting it removes its activities
package crm

import (
	"github.com/harperreed/hookline/models"
)

func (t *txn) dealIndex(id string) int {
	for i := range t.state.Deals {
		if t.state.Deals[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateDeal assigns an id and appends the deal. Value and probability are
// taken as supplied; an empty stage means lead.
func (s *Store) CreateDeal(in models.DealInput) (models.Deal, error) {
	if err := in.Validate(); err != nil {
		return models.Deal{}, err
	}
	if in.Stage == "" {
		in.Stage = models.StageLead
	}

	var created models.Deal
	err := s.update("deal", "create", func(t *txn) error {
		if t.contactIndex(in.ContactID) < 0 {
			return models.NotFound("contact", in.ContactID)
		}
		created = models.Deal{
			ID:            s.newID(),
			Title:         in.Title,
			Value:         in.Value,
			Stage:         in.Stage,
			ContactID:     in.ContactID,
			Probability:   in.Probability,
			ExpectedClose: in.ExpectedClose,
			Notes:         in.Notes,
		}
		t.state.Deals = append(t.state.Deals, created)
		t.touch(KeyDeals)
		return nil
	})
	if err != nil {
		return models.Deal{}, err
	}

	s.logger.Debug("deal created", "id", created.ID, "stage", created.Stage)
	return created, nil
}

// UpdateDeal replaces the stored deal with the same id, in place. Stage and
// probability are written as given: a direct edit may leave a won or lost
// deal with any probability.
func (s *Store) UpdateDeal(d models.Deal) (models.Deal, error) {
	if err := d.Validate(); err != nil {
		return models.Deal{}, err
	}

	err := s.update("deal", "update", func(t *txn) error {
		return t.replaceDeal(d)
	})
	if err != nil {
		return models.Deal{}, err
	}

	if !probabilityMatchesStage(d) {
		s.logger.Debug("deal probability overrides stage", "id", d.ID, "stage", d.Stage, "probability", d.Probability)
	}
	s.logger.Debug("deal updated", "id", d.ID)
	return d, nil
}

func (t *txn) replaceDeal(d models.Deal) error {
	i := t.dealIndex(d.ID)
	if i < 0 {
		return models.NotFound("deal", d.ID)
	}
	if t.contactIndex(d.ContactID) < 0 {
		return models.NotFound("contact", d.ContactID)
	}
	t.state.Deals[i] = d
	t.touch(KeyDeals)
	return nil
}

// DeleteDeal removes the deal and every activity logged against it.
func (s *Store) DeleteDeal(id string) error {
	var activitiesRemoved int
	err := s.update("deal", "delete", func(t *txn) error {
		if t.dealIndex(id) < 0 {
			return models.NotFound("deal", id)
		}

		deals := t.state.Deals[:0]
		for _, d := range t.state.Deals {
			if d.ID != id {
				deals = append(deals, d)
			}
		}
		t.state.Deals = deals

		activities := t.state.Activities[:0]
		for _, a := range t.state.Activities {
			if a.DealID == id {
				activitiesRemoved++
				continue
			}
			activities = append(activities, a)
		}
		t.state.Activities = activities

		t.touch(KeyDeals, KeyActivities)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("deal deleted", "id", id, "activities", activitiesRemoved)
	return nil
}

// GetDeal returns a copy of the deal with id.
func (s *Store) GetDeal(id string) (models.Deal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.state.Deals {
		if d.ID == id {
			if d.ExpectedClose != nil {
				ec := *d.ExpectedClose
				d.ExpectedClose = &ec
			}
			return d, nil
		}
	}
	return models.Deal{}, models.NotFound("deal", id)
}
