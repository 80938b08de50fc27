package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mkarval/brewduel/internal/constants"
	"github.com/mkarval/brewduel/internal/dedupe"
	"github.com/mkarval/brewduel/internal/game"
)

// GetBattle returns a read-only snapshot of the battle for the session
// player: health, hand contents, phase and timer, with hidden zones
// redacted.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	b, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, out)
}

// ListPublicBattles lists joinable battles. Concurrent requests share one
// database query through the singleflight group.
func (h *BattleHandler) ListPublicBattles(c *gin.Context) {
	v, err, _ := dedupe.ListGroup.Do("public-battles", func() (interface{}, error) {
		return h.repo.GetPublicBattles()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	battles := v.([]game.Battle)
	out, err := MarshalForContext(c, battles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top-rated player profiles.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	v, err, _ := dedupe.BoardGroup.Do("top-"+strconv.Itoa(limit), func() (interface{}, error) {
		return h.repo.GetTopPlayers(limit)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBoard})
		return
	}
	c.JSON(http.StatusOK, v)
}

// GetPlayerStats returns the session player's persistent profile.
func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	playerUUID, _ := sessionIdentity(c)
	p, err := h.repo.GetProfileByUUID(playerUUID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListCards returns the card catalog, optionally filtered by the category
// query parameter (material, item or special).
func (h *BattleHandler) ListCards(c *gin.Context) {
	if raw := c.Query("category"); raw != "" {
		cat := game.Category(strings.ToLower(raw))
		switch cat {
		case game.CategoryMaterial, game.CategoryItem, game.CategorySpecial:
			c.JSON(http.StatusOK, h.cat.ByCategory(cat))
		default:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCategory})
		}
		return
	}
	c.JSON(http.StatusOK, h.cat.List())
}

// ListDecks returns the configured deck-list names.
func (h *BattleHandler) ListDecks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"decks": h.lists.Names()})
}
