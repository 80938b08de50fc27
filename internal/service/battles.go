package service

import (
	"github.com/google/uuid"
	"github.com/mkarval/brewduel/internal/deck"
	"github.com/mkarval/brewduel/internal/game"
)

// CreateBattleParams describes a battle being opened by its host.
type CreateBattleParams struct {
	Name       string
	Private    bool
	JoinCode   string
	PlayerUUID string
	PlayerName string
	DeckList   string
	Difficulty int
	// VersusAI fills the second seat with the house combatant and starts
	// the battle immediately.
	VersusAI bool
}

// CreateBattle opens a new battle with the host seated. Versus-AI battles
// start at once; otherwise the battle waits for an opponent to join.
func (s *Service) CreateBattle(p CreateBattleParams) (*game.Battle, error) {
	host, err := s.buildCombatant(p.PlayerUUID, p.PlayerName, p.DeckList, false)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertProfile(p.PlayerUUID, p.PlayerName); err != nil {
		return nil, err
	}

	b := &game.Battle{
		Name:       p.Name,
		Private:    p.Private,
		JoinCode:   p.JoinCode,
		Combatants: []game.Combatant{*host},
		Status:     game.StatusWaiting,
		MaxRounds:  s.settings.MaxRounds,
		HandLimit:  s.settings.HandLimit,
		Difficulty: p.Difficulty,
	}

	if p.VersusAI {
		house, err := s.buildCombatant(uuid.NewString(), "The House", p.DeckList, true)
		if err != nil {
			return nil, err
		}
		b.Combatants = append(b.Combatants, *house)
		if err := s.startBattle(b); err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// JoinBattle seats the second player and starts the battle.
func (s *Service) JoinBattle(joinCode, playerUUID, playerName, deckList string) (*game.Battle, error) {
	b, err := s.repo.FindBattleByJoinCode(joinCode)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.Status != game.StatusWaiting {
		return nil, ErrBattleNotInProgress
	}
	if len(b.Combatants) >= 2 {
		return nil, ErrBattleFull
	}
	if c, _ := b.CombatantByUUID(playerUUID); c != nil {
		return nil, ErrAlreadyJoined
	}

	guest, err := s.buildCombatant(playerUUID, playerName, deckList, false)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpsertProfile(playerUUID, playerName); err != nil {
		return nil, err
	}
	b.Combatants = append(b.Combatants, *guest)
	if err := s.startBattle(b); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateBattle(b); err != nil {
		return nil, err
	}
	return b, nil
}

// buildCombatant creates a seated participant with a freshly built deck.
func (s *Service) buildCombatant(playerUUID, playerName, deckList string, isAI bool) (*game.Combatant, error) {
	ids, ok := s.lists.Get(deckList)
	if deckList == "" {
		ids, ok = s.lists.Default(), true
	}
	if !ok || len(ids) == 0 {
		return nil, ErrUnknownDeckList
	}
	cards, err := deck.Build(s.catalog, ids)
	if err != nil {
		return nil, err
	}
	return &game.Combatant{
		PlayerUUID:     playerUUID,
		PlayerName:     playerName,
		IsAI:           isAI,
		Health:         s.settings.StartingHealth,
		MaxHealth:      s.settings.StartingHealth,
		Cards:          cards,
		MaterialCounts: game.MaterialCounter{},
		CanBluff:       true,
	}, nil
}

// startBattle shuffles both decks, deals opening hands and opens the first
// turn. Both combatants begin at max health.
func (s *Service) startBattle(b *game.Battle) error {
	for i := range b.Combatants {
		c := &b.Combatants[i]
		deck.Shuffle(c, s.rng)
		deck.Draw(c, s.settings.StartingHandSize, b.HandLimit)
	}
	b.Status = game.StatusInProgress
	b.TurnCount = 1
	b.ActiveIndex = 0
	b.AppendLog("The battle begins")
	if err := s.eng.StartTurn(b); err != nil {
		return err
	}
	if b.Active() != nil && b.Active().IsAI {
		if err := s.runAITurns(b); err != nil {
			return err
		}
	}
	s.resetDeadline(b)
	return nil
}
