// ABOUTME: Deal stage transitions and the stage/probability rule
// ABOUTME: Moving to won forces 100, to lost forces 0, any other stage keeps the estimate
package crm

import (
	"github.com/harperreed/hookline/models"
)

// NextProbability maps a deal's current probability and a target stage to
// the probability the deal carries after the transition.
func NextProbability(current int, target models.Stage) int {
	switch target {
	case models.StageWon:
		return 100
	case models.StageLost:
		return 0
	default:
		return current
	}
}

func probabilityMatchesStage(d models.Deal) bool {
	switch d.Stage {
	case models.StageWon:
		return d.Probability == 100
	case models.StageLost:
		return d.Probability == 0
	}
	return true
}

// MoveDeal transitions a deal to target. Any stage may move to any other.
func (s *Store) MoveDeal(id string, target models.Stage) (models.Deal, error) {
	if !target.Valid() {
		return models.Deal{}, models.NewValidationError("stage", "must be one of lead, qualified, proposal, negotiation, won, lost")
	}

	var moved models.Deal
	var from models.Stage
	err := s.update("deal", "move", func(t *txn) error {
		i := t.dealIndex(id)
		if i < 0 {
			return models.NotFound("deal", id)
		}
		moved = t.state.Deals[i]
		from = moved.Stage
		moved.Stage = target
		moved.Probability = NextProbability(moved.Probability, target)
		return t.replaceDeal(moved)
	})
	if err != nil {
		return models.Deal{}, err
	}

	s.logger.Debug("deal moved", "id", id, "from", from, "to", target, "probability", moved.Probability)
	return moved, nil
}
