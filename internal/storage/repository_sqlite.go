package storage

import (
	"errors"
	"time"

	"github.com/mkarval/brewduel/internal/game"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	err := r.db.
		Preload("Combatants.Cards").
		Preload("Combatants.StatusEffects").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.
		Preload("Combatants.Cards").
		Preload("Combatants.StatusEffects").
		Where("join_code = ?", code).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Save upserts association rows but never deletes ones dropped from
		// the slice, so expired status effects must be pruned here or they
		// come back on the next Preload.
		for i := range b.Combatants {
			c := &b.Combatants[i]
			if c.ID == 0 {
				continue
			}
			kept := make([]uint, 0, len(c.StatusEffects))
			for j := range c.StatusEffects {
				if c.StatusEffects[j].ID != 0 {
					kept = append(kept, c.StatusEffects[j].ID)
				}
			}
			q := tx.Where("combatant_id = ?", c.ID)
			if len(kept) > 0 {
				q = q.Where("id NOT IN ?", kept)
			}
			if err := q.Delete(&game.StatusEffect{}).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
	})
}

func (r *sqliteRepository) GetPublicBattles() ([]game.Battle, error) {
	var battles []game.Battle
	fiveMinutesAgo := time.Now().Add(-5 * time.Minute)
	err := r.db.
		Preload("Combatants").
		Where("private = ? AND status = ? AND created_at > ?", false, game.StatusWaiting, fiveMinutesAgo).
		Order("created_at desc").
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.
		Where("status = ? AND turn_deadline > ? AND turn_deadline <= ?", game.StatusInProgress, time.Time{}, now).
		Find(&battles).Error
	if err != nil {
		return nil, err
	}
	return battles, nil
}

func (r *sqliteRepository) UpsertProfile(playerUUID, playerName string) error {
	var p game.PlayerProfile
	err := r.db.Where("player_uuid = ?", playerUUID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&game.PlayerProfile{PlayerUUID: playerUUID, PlayerName: playerName}).Error
	}
	if err != nil {
		return err
	}
	if playerName != "" && playerName != p.PlayerName {
		p.PlayerName = playerName
		return r.db.Save(&p).Error
	}
	return nil
}

func (r *sqliteRepository) GetProfileByUUID(playerUUID string) (*game.PlayerProfile, error) {
	var p game.PlayerProfile
	if err := r.db.Where("player_uuid = ?", playerUUID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) SaveProfile(p *game.PlayerProfile) error {
	return r.db.Save(p).Error
}

func (r *sqliteRepository) ApplyBattleRewards(b *game.Battle, rewards map[string]game.Reward) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range b.Combatants {
			c := &b.Combatants[i]
			if c.IsAI {
				continue
			}
			var p game.PlayerProfile
			err := tx.Where("player_uuid = ?", c.PlayerUUID).First(&p).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				p = game.PlayerProfile{PlayerUUID: c.PlayerUUID, PlayerName: c.PlayerName}
			} else if err != nil {
				return err
			}

			p.BattlesPlayed++
			switch {
			case b.IsDraw:
				p.Draws++
				p.WinStreak = 0
			case b.Winner == c.PlayerUUID:
				p.Wins++
				p.WinStreak++
			default:
				p.Losses++
				p.WinStreak = 0
			}

			if rw, ok := rewards[c.PlayerUUID]; ok {
				p.Gold += rw.Gold
				p.Experience += rw.Experience
				p.Reputation += rw.Reputation
				p.Rating += rw.RatingDelta
				if p.Rating < 0 {
					p.Rating = 0
				}
			}
			if err := tx.Save(&p).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var players []game.PlayerProfile
	err := r.db.
		Where("battles_played > 0").
		Order("rating desc, wins desc").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
