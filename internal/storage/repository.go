package storage

import (
	"time"

	"github.com/mkarval/brewduel/internal/game"
)

type Repository interface {
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	FindBattleByJoinCode(code string) (*game.Battle, error)
	UpdateBattle(b *game.Battle) error
	// GetPublicBattles lists recently created, non-private battles that are
	// still waiting for an opponent.
	GetPublicBattles() ([]game.Battle, error)
	// FindTimedOutBattles returns battles that are in progress and whose
	// turn deadline is at or before the provided time. The caller decides
	// how to resolve them (forced phase advance).
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)

	// Player profiles and progression
	UpsertProfile(playerUUID, playerName string) error
	GetProfileByUUID(playerUUID string) (*game.PlayerProfile, error)
	SaveProfile(p *game.PlayerProfile) error
	// ApplyBattleRewards credits each combatant's profile with its reward
	// and updates the win/loss/draw tallies and streaks. The caller guards
	// against double application via Battle.RewardsGranted.
	ApplyBattleRewards(b *game.Battle, rewards map[string]game.Reward) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.PlayerProfile, error)
}
