package engine

import (
	"sort"
	"strconv"

	"github.com/mkarval/brewduel/internal/config"
	"github.com/mkarval/brewduel/internal/game"
)

// Outcome is a battle result from one combatant's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// checkHealthSettlement settles the battle the moment any health reaches
// zero. Both at zero (reflection can do this) is a draw.
func (bc *battleContext) checkHealthSettlement() bool {
	b := bc.b
	if b.Terminal() {
		return true
	}
	h0 := b.Combatants[0].Health
	h1 := b.Combatants[1].Health
	switch {
	case h0 == 0 && h1 == 0:
		bc.settle(0, true, "both combatants fell")
		return true
	case h0 == 0:
		bc.settle(1, false, "health reached zero")
		return true
	case h1 == 0:
		bc.settle(0, false, "health reached zero")
		return true
	}
	return false
}

// settleRoundCap settles at the round cap: strictly greater remaining health
// wins, equal health is a draw.
func (bc *battleContext) settleRoundCap() {
	h0 := bc.b.Combatants[0].Health
	h1 := bc.b.Combatants[1].Health
	switch {
	case h0 > h1:
		bc.settle(0, false, "round cap reached")
	case h1 > h0:
		bc.settle(1, false, "round cap reached")
	default:
		bc.settle(0, true, "round cap reached")
	}
}

// settle marks the battle terminal. No further mutation is accepted after
// this point; reward application is guarded separately by RewardsGranted.
func (bc *battleContext) settle(winnerIdx int, draw bool, cause string) {
	b := bc.b
	if b.Terminal() {
		return
	}
	b.Status = game.StatusFinished
	b.TurnDeadline = zeroTime
	if draw {
		b.IsDraw = true
		b.Winner = ""
		b.Message = "The battle ends in a draw (" + cause + ")"
	} else {
		w := &b.Combatants[winnerIdx]
		b.Winner = w.PlayerUUID
		b.Message = "Victory for " + w.PlayerName + " (" + cause + ")"
	}
	bc.addf(b.Message, " on turn ", strconv.Itoa(b.TurnCount))
}

// OutcomeFor reports the terminal battle's result from the perspective of
// the combatant at idx. Calling it on a live battle is a caller bug.
func OutcomeFor(b *game.Battle, idx int) Outcome {
	if b.IsDraw {
		return OutcomeDraw
	}
	if b.Winner == b.Combatants[idx].PlayerUUID {
		return OutcomeWin
	}
	return OutcomeLoss
}

// ComputeRewards computes the settlement payout as a pure function of the
// result, the difficulty and streak inputs and the materials gathered during
// the battle. No hidden state: the same inputs always produce the same
// reward.
func ComputeRewards(table config.RewardTable, outcome Outcome, difficulty, streak int, gathered game.MaterialCounter) game.Reward {
	if difficulty < 0 {
		difficulty = 0
	}
	if streak < 0 {
		streak = 0
	}
	var r game.Reward
	switch outcome {
	case OutcomeWin:
		r.Gold = table.WinGold * (difficulty + 1)
		r.Experience = table.WinExperience*(difficulty+1) + 10*streak
		r.Reputation = table.WinReputation + streak
		r.RatingDelta = table.RatingStake + streak
	case OutcomeLoss:
		r.Experience = table.LossExperience
		r.RatingDelta = -table.RatingStake
	case OutcomeDraw:
		r.Gold = table.DrawGold
		r.Experience = table.LossExperience
	}
	if outcome != OutcomeLoss && len(gathered) > 0 {
		ids := make([]string, 0, len(gathered))
		for id := range gathered {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if gathered[id] > 0 {
				r.Materials = append(r.Materials, game.MaterialDrop{CardID: id, Count: gathered[id]})
			}
		}
	}
	return r
}
