// ABOUTME: Activity logging against contacts and, optionally, their deals
// ABOUTME: Activities are append-only and always inserted at the front
package crm

import (
	"github.com/harperreed/hookline/models"
)

func (t *txn) activityIndex(id string) int {
	for i := range t.state.Activities {
		if t.state.Activities[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateActivity stamps the activity with an id and the current time and
// prepends it, keeping the collection newest-first.
func (s *Store) CreateActivity(in models.ActivityInput) (models.Activity, error) {
	if err := in.Validate(); err != nil {
		return models.Activity{}, err
	}
	if in.Type == "" {
		in.Type = models.ActivityCall
	}

	var created models.Activity
	err := s.update("activity", "create", func(t *txn) error {
		if t.contactIndex(in.ContactID) < 0 {
			return models.NotFound("contact", in.ContactID)
		}
		if in.DealID != "" {
			i := t.dealIndex(in.DealID)
			if i < 0 {
				return models.NotFound("deal", in.DealID)
			}
			if t.state.Deals[i].ContactID != in.ContactID {
				return models.NewValidationError("dealId", "deal belongs to a different contact")
			}
		}

		created = models.Activity{
			ID:          s.newID(),
			Type:        in.Type,
			ContactID:   in.ContactID,
			DealID:      in.DealID,
			Description: in.Description,
			Date:        t.now,
		}
		activities := make([]models.Activity, 0, len(t.state.Activities)+1)
		activities = append(activities, created)
		t.state.Activities = append(activities, t.state.Activities...)
		t.touch(KeyActivities)
		return nil
	})
	if err != nil {
		return models.Activity{}, err
	}

	s.logger.Debug("activity logged", "id", created.ID, "contact", created.ContactID)
	return created, nil
}

// DeleteActivity removes a single activity.
func (s *Store) DeleteActivity(id string) error {
	err := s.update("activity", "delete", func(t *txn) error {
		i := t.activityIndex(id)
		if i < 0 {
			return models.NotFound("activity", id)
		}
		t.state.Activities = append(t.state.Activities[:i], t.state.Activities[i+1:]...)
		t.touch(KeyActivities)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("activity deleted", "id", id)
	return nil
}
