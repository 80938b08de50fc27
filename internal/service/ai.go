package service

import (
	"github.com/mkarval/brewduel/internal/game"
)

// aiTurnLimit bounds how many consecutive turns the house can take (extra
// turns included) before the loop bails out. Purely a safety net.
const aiTurnLimit = 8

// runAITurns plays the house combatant's turn(s) synchronously: draw, play
// whatever helps, end the turn. The loop continues while extra turns keep
// control on the house side and stops the moment the battle settles or a
// human becomes active.
func (s *Service) runAITurns(b *game.Battle) error {
	for turns := 0; turns < aiTurnLimit; turns++ {
		if b.Terminal() {
			return nil
		}
		a := b.Active()
		if a == nil || !a.IsAI {
			return nil
		}
		if err := s.runOneAITurn(b); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) runOneAITurn(b *game.Battle) error {
	idx := b.ActiveIndex

	if b.Phase == game.PhaseDraw {
		if _, err := s.eng.DrawCard(b, idx, 1); err != nil {
			return err
		}
	}
	if b.Terminal() {
		return nil
	}

	// Play cards greedily until nothing is worth playing. Each iteration
	// re-picks because a play can change what is legal (materials, hand).
	for plays := 0; plays < b.HandLimit; plays++ {
		if b.Terminal() || b.Phase != game.PhaseMain {
			return nil
		}
		instanceID := s.pickAICard(b, idx)
		if instanceID == "" {
			break
		}
		res, err := s.eng.PlayCard(b, idx, instanceID, "")
		if err != nil {
			return err
		}
		if !res.Applied {
			break
		}
	}
	if b.Terminal() {
		return nil
	}
	return s.eng.EndTurn(b, idx)
}

// pickAICard chooses the house's next play: lethal damage first, then any
// damage, then healing when hurt, then gathering materials. Cards it cannot
// evaluate are left alone.
func (s *Service) pickAICard(b *game.Battle, idx int) string {
	me := &b.Combatants[idx]
	opp := b.Opponent(idx)

	var bestDamage, anyDamage, heal, gather string
	for _, ci := range me.Zone(game.LocationHand) {
		card, ok := s.catalog.Lookup(ci.CardID)
		if !ok {
			continue
		}
		switch card.Effect.Kind {
		case game.EffectDamage:
			if card.Effect.Amount >= opp.Health+opp.Shield && bestDamage == "" {
				bestDamage = ci.InstanceID
			}
			if anyDamage == "" {
				anyDamage = ci.InstanceID
			}
		case game.EffectHeal:
			if heal == "" && me.Health*2 < me.MaxHealth {
				heal = ci.InstanceID
			}
		case game.EffectGather:
			if gather == "" {
				gather = ci.InstanceID
			}
		}
	}
	switch {
	case bestDamage != "":
		return bestDamage
	case anyDamage != "":
		return anyDamage
	case heal != "":
		return heal
	default:
		return gather
	}
}
