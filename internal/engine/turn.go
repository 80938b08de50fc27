package engine

import (
	"strconv"

	"github.com/mkarval/brewduel/internal/deck"
	"github.com/mkarval/brewduel/internal/game"
)

// StartTurn begins the active combatant's turn: transient bluff flags reset,
// status effects tick, and the phase moves to draw. Poison ticking can end
// the battle here; callers must treat a finished battle as settled.
func (e *Engine) StartTurn(b *game.Battle) error {
	if len(b.Combatants) != 2 {
		return ErrInvalidBattle
	}
	if b.Terminal() {
		return ErrBattleAlreadyEnded
	}
	bc := e.ctx(b)
	c := b.Active()
	c.CanBluff = true
	c.IsBluffing = false
	b.Phase = game.PhaseDraw
	bc.addf("Turn ", strconv.Itoa(b.TurnCount), ": ", c.PlayerName, " is up")
	bc.tickStatuses(c)
	bc.checkHealthSettlement()
	return nil
}

// DrawCard completes the draw phase for the active combatant, moving up to
// count cards (capped by deck size and hand headroom) and advancing the
// phase to main. A zero-card draw is a valid outcome, not an error.
func (e *Engine) DrawCard(b *game.Battle, actorIdx, count int) (*EffectResult, error) {
	if b.Terminal() {
		return nil, ErrBattleAlreadyEnded
	}
	if actorIdx != b.ActiveIndex {
		return nil, ErrNotActiveCombatant
	}
	if b.Phase != game.PhaseDraw {
		return failed(ReasonWrongPhase), nil
	}
	bc := e.ctx(b)
	c := b.Active()
	drawn, short := deck.Draw(c, count, b.HandLimit)
	b.Phase = game.PhaseMain
	bc.addf(c.PlayerName, " draws ", strconv.Itoa(len(drawn)), " card(s)")
	return &EffectResult{Applied: true, CardsDrawn: len(drawn), DrawShortfall: short}, nil
}

// EndTurn moves main -> end and hands the turn over. A pending extra turn is
// consumed to give the departing combatant another full turn; otherwise the
// opponent starts theirs. Completing a full round past the round cap settles
// the battle by remaining health.
func (e *Engine) EndTurn(b *game.Battle, actorIdx int) error {
	if b.Terminal() {
		return ErrBattleAlreadyEnded
	}
	if actorIdx != b.ActiveIndex {
		return ErrNotActiveCombatant
	}
	bc := e.ctx(b)
	c := b.Active()
	b.Phase = game.PhaseEnd
	bc.addf(c.PlayerName, " ends their turn")

	if c.ExtraTurns > 0 {
		c.ExtraTurns--
		bc.addf(c.PlayerName, " takes an extra turn")
		return e.StartTurn(b)
	}

	b.ActiveIndex = 1 - b.ActiveIndex
	if b.ActiveIndex == 0 {
		b.TurnCount++
		if b.TurnCount > b.MaxRounds {
			bc.settleRoundCap()
			return nil
		}
	}
	return e.StartTurn(b)
}

// ForceAdvance resolves a turn timeout as an ordinary phase transition: a
// timed-out draw phase auto-completes with the default single card, a
// timed-out main phase auto-ends the turn without playing a card.
func (e *Engine) ForceAdvance(b *game.Battle) error {
	if b.Terminal() {
		return ErrBattleAlreadyEnded
	}
	switch b.Phase {
	case game.PhaseDraw:
		b.AppendLog(b.Active().PlayerName + " ran out of time; draw auto-completed")
		_, err := e.DrawCard(b, b.ActiveIndex, 1)
		return err
	case game.PhaseMain:
		b.AppendLog(b.Active().PlayerName + " ran out of time; turn auto-ended")
		return e.EndTurn(b, b.ActiveIndex)
	default:
		return nil
	}
}

// ToggleBluff flips the active combatant's bluff posture. The flag can be
// changed once per turn; further toggles report BluffUnavailable.
func (e *Engine) ToggleBluff(b *game.Battle, actorIdx int) (*EffectResult, error) {
	if b.Terminal() {
		return nil, ErrBattleAlreadyEnded
	}
	if actorIdx != b.ActiveIndex {
		return nil, ErrNotActiveCombatant
	}
	c := b.Active()
	if !c.CanBluff {
		return failed(ReasonBluffUnavailable), nil
	}
	c.IsBluffing = !c.IsBluffing
	c.CanBluff = false
	b.AppendLog(c.PlayerName + " studies their hand at length")
	return &EffectResult{Applied: true}, nil
}

// ActivateDetect verifies the opponent's bluff flag, an explicit boolean
// check and nothing more. A revealed bluff is cleared and logged.
func (e *Engine) ActivateDetect(b *game.Battle, actorIdx int) (*DetectResult, error) {
	if b.Terminal() {
		return nil, ErrBattleAlreadyEnded
	}
	if actorIdx != b.ActiveIndex {
		return nil, ErrNotActiveCombatant
	}
	opp := b.Opponent(actorIdx)
	res := &DetectResult{WasBluffing: opp.IsBluffing}
	if opp.IsBluffing {
		opp.IsBluffing = false
		b.AppendLog(b.Active().PlayerName + " calls the bluff: " + opp.PlayerName + " was bluffing")
	} else {
		b.AppendLog(b.Active().PlayerName + " calls a bluff, but " + opp.PlayerName + " was playing it straight")
	}
	return res, nil
}

// Forfeit ends the battle immediately with the opponent as winner.
func (e *Engine) Forfeit(b *game.Battle, actorIdx int) error {
	if b.Terminal() {
		return ErrBattleAlreadyEnded
	}
	if actorIdx < 0 || actorIdx > 1 || len(b.Combatants) != 2 {
		return ErrInvalidBattle
	}
	bc := e.ctx(b)
	bc.addf(b.Combatants[actorIdx].PlayerName, " forfeits the battle")
	bc.settle(1-actorIdx, false, "forfeit")
	return nil
}
