package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/mkarval/brewduel/internal/api"
	"github.com/mkarval/brewduel/internal/catalog"
	"github.com/mkarval/brewduel/internal/config"
	"github.com/mkarval/brewduel/internal/constants"
	"github.com/mkarval/brewduel/internal/deck"
	"github.com/mkarval/brewduel/internal/engine"
	"github.com/mkarval/brewduel/internal/logging"
	"github.com/mkarval/brewduel/internal/service"
	"github.com/mkarval/brewduel/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load the battle configuration file (required). Path may be provided
	// via BREWDUEL_CONFIG env var or defaults to ./brewduel_config.json in
	// the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./brewduel_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid brewduel configuration", err, logging.Fields{"config_path": configPath, "hint": "create a brewduel_config.json with a 'card_list' array of card objects (id,name,category,rarity,effect{kind,amount,status,magnitude,duration,unique},target,requires) and optional keys: server.address, battle, rewards, deck_list_path"})
	}

	cat := catalog.New(cfg.Cards)
	lists, err := deck.ParseDeckFile(cfg.DeckListPath, cat)
	if err != nil {
		logging.Fatal("Missing or invalid deck list file", err, logging.Fields{"deck_list_path": cfg.DeckListPath})
	}

	// Allow the DB path to be configured via BREWDUEL_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/brewduel.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	eng := engine.New(cat, rng)
	svc := service.New(repo, eng, cat, lists, cfg.Battle, cfg.Rewards, rng)
	handler := api.NewBattleHandler(repo, svc, cat, lists)

	// Background scanner: periodically force-advance battles whose turn
	// deadline has passed. A stalled draw phase auto-draws one card and a
	// stalled main phase ends the turn, so a slow player never blocks the
	// battle indefinitely.
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			battles, err := repo.FindTimedOutBattles(now)
			if err != nil {
				logging.Error("timeout scanner failed", err, nil)
				continue
			}
			if len(battles) > 0 {
				logging.Debug("timeout scan found stalled battles", logging.Fields{"count": len(battles)})
			}
			for _, b := range battles {
				bb, err := repo.GetBattleByID(b.ID)
				if err != nil {
					continue
				}
				if err := svc.HandleTimedOutBattle(bb); err != nil {
					logging.Error("failed to advance timed-out battle", err, logging.Fields{constants.LogFieldBattleID: bb.ID})
				}
			}
		}
	}()

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteCards, handler.ListCards)
		apiRoutes.GET(constants.RouteDecks, handler.ListDecks)
		apiRoutes.GET(constants.RoutePublicBattles, handler.ListPublicBattles)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Identified endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.IdentityRequired())

		protected.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.POST(constants.RouteBattlesJoin, handler.JoinBattle)
		protected.GET(constants.RouteBattleByCode, handler.GetBattle)
		protected.POST(constants.RouteBattleIntent, handler.SubmitIntent)
		protected.POST(constants.RouteBattleForfeit, handler.Forfeit)
	}

	router.GET(constants.RouteHealth, api.Health)

	// Start server on configured address
	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
