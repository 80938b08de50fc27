package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkarval/brewduel/internal/constants"
	"github.com/mkarval/brewduel/internal/service"
)

type CreateBattleRequest struct {
	Name       string `json:"name"`
	Private    bool   `json:"private"`
	DeckList   string `json:"deck_list"`
	Difficulty int    `json:"difficulty"`
	VersusAI   bool   `json:"versus_ai"`
}

// CreateBattle opens a new battle for the session player.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if len(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBattleNameExceeds})
		return
	}
	playerUUID, playerName := sessionIdentity(c)

	b, err := h.svc.CreateBattle(service.CreateBattleParams{
		Name:       req.Name,
		Private:    req.Private,
		JoinCode:   generateJoinCode(),
		PlayerUUID: playerUUID,
		PlayerName: playerName,
		DeckList:   req.DeckList,
		Difficulty: req.Difficulty,
		VersusAI:   req.VersusAI,
	})
	if err != nil {
		switch err {
		case service.ErrUnknownDeckList:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownDeckList})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		}
		return
	}
	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, out)
}

type JoinBattleRequest struct {
	JoinCode string `json:"join_code"`
	DeckList string `json:"deck_list"`
}

// JoinBattle seats the session player in a waiting battle; the battle
// starts as soon as the seat is filled.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeJoinCode(req.JoinCode)
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	playerUUID, playerName := sessionIdentity(c)

	b, err := h.svc.JoinBattle(code, playerUUID, playerName, req.DeckList)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrBattleFull:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFull})
		case service.ErrAlreadyJoined:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrCannotJoinOwnBattle})
		case service.ErrBattleNotInProgress:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		case service.ErrUnknownDeckList:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownDeckList})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		}
		return
	}
	out, err := MarshalForContext(c, b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}
