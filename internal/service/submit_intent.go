package service

import (
	"errors"

	"github.com/mkarval/brewduel/internal/engine"
	"github.com/mkarval/brewduel/internal/game"
)

// IntentParams carries one discrete player intent from the UI layer. These
// are the only mutation entry points into a running battle.
type IntentParams struct {
	Intent     game.IntentType
	InstanceID string
	TargetUUID string
}

// SubmitIntent applies one player intent to the identified battle. Expected
// rule failures come back inside the outcome's effect result; sentinel
// errors cover everything the UI must render as a hard refusal.
func (s *Service) SubmitIntent(battleID uint, playerUUID string, p IntentParams) (*IntentOutcome, error) {
	b, err := s.repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status == game.StatusInProgress && len(b.Combatants) != 2 {
		s.discardCorruptBattle(b)
		return nil, ErrBattleNotFound
	}
	if b.Terminal() {
		return nil, engine.ErrBattleAlreadyEnded
	}
	if b.Status != game.StatusInProgress {
		return nil, ErrBattleNotInProgress
	}
	actor, idx := b.CombatantByUUID(playerUUID)
	if actor == nil {
		return nil, ErrPlayerNotInBattle
	}

	out := &IntentOutcome{}

	// Forfeit is accepted from either seat at any point of the turn.
	if p.Intent == game.IntentForfeit {
		if err := s.eng.Forfeit(b, idx); err != nil {
			return nil, err
		}
		return s.finish(b, out)
	}

	if idx != b.ActiveIndex {
		return nil, ErrNotYourTurn
	}

	switch p.Intent {
	case game.IntentDrawCard:
		out.Effect, err = s.eng.DrawCard(b, idx, 1)
	case game.IntentPlayCard:
		out.Effect, err = s.eng.PlayCard(b, idx, p.InstanceID, p.TargetUUID)
	case game.IntentEndTurn:
		err = s.eng.EndTurn(b, idx)
	case game.IntentToggleBluff:
		out.Effect, err = s.eng.ToggleBluff(b, idx)
	case game.IntentActivateDetect:
		out.Detect, err = s.eng.ActivateDetect(b, idx)
	default:
		return nil, ErrUnknownIntent
	}
	if err != nil {
		if errors.Is(err, engine.ErrNotActiveCombatant) {
			return nil, ErrNotYourTurn
		}
		return nil, err
	}

	// Control may have passed to the house; its whole turn resolves now.
	if !b.Terminal() && b.Active() != nil && b.Active().IsAI {
		if err := s.runAITurns(b); err != nil {
			return nil, err
		}
	}
	return s.finish(b, out)
}

// finish settles rewards when the battle just ended, re-arms the turn timer
// otherwise, and persists the battle.
func (s *Service) finish(b *game.Battle, out *IntentOutcome) (*IntentOutcome, error) {
	if b.Terminal() {
		rewards, err := s.settleRewards(b)
		if err != nil {
			return nil, err
		}
		out.Rewards = rewards
	} else {
		s.resetDeadline(b)
	}
	if err := s.repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	out.Battle = b
	return out, nil
}
