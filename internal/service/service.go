package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/mkarval/brewduel/internal/catalog"
	"github.com/mkarval/brewduel/internal/config"
	"github.com/mkarval/brewduel/internal/deck"
	"github.com/mkarval/brewduel/internal/engine"
	"github.com/mkarval/brewduel/internal/game"
	"github.com/mkarval/brewduel/internal/storage"
)

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrBattleFull          = errors.New("battle is full")
	ErrPlayerNotInBattle   = errors.New("player not in battle")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrUnknownDeckList     = errors.New("unknown deck list")
	ErrUnknownIntent       = errors.New("unknown intent")
	ErrAlreadyJoined       = errors.New("player already in this battle")
)

// Service orchestrates battles: it owns the engine, the deck lists and the
// battle settings, and serializes every mutation through the repository.
type Service struct {
	repo     storage.Repository
	eng      *engine.Engine
	catalog  *catalog.Catalog
	lists    *deck.Lists
	settings config.BattleSettings
	rewards  config.RewardTable
	rng      *rand.Rand
	now      func() time.Time
}

func New(repo storage.Repository, eng *engine.Engine, cat *catalog.Catalog, lists *deck.Lists, settings config.BattleSettings, rewards config.RewardTable, rng *rand.Rand) *Service {
	return &Service{
		repo:     repo,
		eng:      eng,
		catalog:  cat,
		lists:    lists,
		settings: settings,
		rewards:  rewards,
		rng:      rng,
		now:      time.Now,
	}
}

// IntentOutcome is what a submitted intent produced, for the UI to render.
type IntentOutcome struct {
	Battle  *game.Battle           `json:"battle"`
	Effect  *engine.EffectResult   `json:"effect,omitempty"`
	Detect  *engine.DetectResult   `json:"detect,omitempty"`
	Rewards map[string]game.Reward `json:"rewards,omitempty"`
}

// resetDeadline arms the turn timer for a human active combatant. AI turns
// resolve synchronously, so they never hold a deadline.
func (s *Service) resetDeadline(b *game.Battle) {
	if b.Terminal() {
		b.TurnDeadline = time.Time{}
		return
	}
	if a := b.Active(); a != nil && !a.IsAI {
		b.TurnDeadline = s.now().Add(s.settings.TurnTimeout)
	}
}

// settleRewards computes and applies the settlement payout exactly once.
// Re-entering on an already-granted battle is a no-op.
func (s *Service) settleRewards(b *game.Battle) (map[string]game.Reward, error) {
	if !b.Terminal() || b.RewardsGranted {
		return nil, nil
	}
	rewards := make(map[string]game.Reward, len(b.Combatants))
	for i := range b.Combatants {
		c := &b.Combatants[i]
		if c.IsAI {
			continue
		}
		streak := 0
		if p, err := s.repo.GetProfileByUUID(c.PlayerUUID); err == nil && p != nil {
			streak = p.WinStreak
		}
		rewards[c.PlayerUUID] = engine.ComputeRewards(
			s.rewards, engine.OutcomeFor(b, i), b.Difficulty, streak, c.MaterialCounts)
	}
	if err := s.repo.ApplyBattleRewards(b, rewards); err != nil {
		return nil, err
	}
	b.RewardsGranted = true
	return rewards, nil
}

// discardCorruptBattle handles a battle reconstructed in an impossible shape
// (e.g. in progress without two combatants). The in-progress battle is
// abandoned and both players return to a neutral state instead of crashing.
func (s *Service) discardCorruptBattle(b *game.Battle) {
	b.Status = game.StatusFinished
	b.IsDraw = true
	b.Winner = ""
	b.Message = "Battle state could not be restored and was abandoned"
	b.RewardsGranted = true
	b.TurnDeadline = time.Time{}
	_ = s.repo.UpdateBattle(b)
}
