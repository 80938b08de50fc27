package storage

import (
	"github.com/mkarval/brewduel/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenAndMigrate opens the sqlite database at dataSourceName and keeps the
// schema updated via AutoMigrate. The card catalog itself is not persisted:
// the config file is the single source of truth for card definitions, only
// runtime battle state and player profiles live in the database.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&game.Battle{},
		&game.Combatant{},
		&game.CardInstance{},
		&game.StatusEffect{},
		&game.PlayerProfile{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
