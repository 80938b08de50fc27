package service

import (
	"github.com/mkarval/brewduel/internal/game"
	"github.com/mkarval/brewduel/internal/logging"
)

// HandleTimedOutBattle applies timeout resolution for a single battle whose
// turn deadline has passed. A timeout is an ordinary forced phase advance,
// never an error: a timed-out draw phase auto-completes, a timed-out main
// phase auto-ends the turn. The battle may settle as a consequence (round
// cap or poison), in which case rewards are granted here.
func (s *Service) HandleTimedOutBattle(b *game.Battle) error {
	if b.Status != game.StatusInProgress {
		return nil
	}
	if b.TurnDeadline.IsZero() || s.now().Before(b.TurnDeadline) {
		return nil
	}
	if len(b.Combatants) != 2 {
		s.discardCorruptBattle(b)
		return nil
	}

	logging.Info("turn timed out; forcing phase advance", logging.Fields{
		"battle_id": b.ID,
		"phase":     string(b.Phase),
		"player":    b.Active().PlayerName,
	})
	if err := s.eng.ForceAdvance(b); err != nil {
		return err
	}

	if !b.Terminal() && b.Active() != nil && b.Active().IsAI {
		if err := s.runAITurns(b); err != nil {
			return err
		}
	}

	if b.Terminal() {
		if _, err := s.settleRewards(b); err != nil {
			return err
		}
	} else {
		s.resetDeadline(b)
	}
	return s.repo.UpdateBattle(b)
}
