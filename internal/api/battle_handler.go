package api

import (
	"github.com/mkarval/brewduel/internal/catalog"
	"github.com/mkarval/brewduel/internal/deck"
	"github.com/mkarval/brewduel/internal/service"
	"github.com/mkarval/brewduel/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo  storage.Repository
	svc   *service.Service
	cat   *catalog.Catalog
	lists *deck.Lists
}

// NewBattleHandler creates a BattleHandler over the repository, the
// orchestration service and the shared card catalog and deck lists.
func NewBattleHandler(repo storage.Repository, svc *service.Service, cat *catalog.Catalog, lists *deck.Lists) *BattleHandler {
	return &BattleHandler{repo: repo, svc: svc, cat: cat, lists: lists}
}
