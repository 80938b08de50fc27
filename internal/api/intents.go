package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkarval/brewduel/internal/constants"
	"github.com/mkarval/brewduel/internal/engine"
	"github.com/mkarval/brewduel/internal/game"
	"github.com/mkarval/brewduel/internal/service"
)

type IntentRequest struct {
	Intent     string `json:"intent"`
	InstanceID string `json:"instance_id"`
	TargetUUID string `json:"target_uuid"`
}

// SubmitIntent applies one player intent (draw, play, end turn, bluff,
// detect) to the battle identified by its join code.
func (h *BattleHandler) SubmitIntent(c *gin.Context) {
	b, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	var req IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	playerUUID, _ := sessionIdentity(c)

	out, err := h.svc.SubmitIntent(b.ID, playerUUID, service.IntentParams{
		Intent:     game.IntentType(req.Intent),
		InstanceID: req.InstanceID,
		TargetUUID: req.TargetUUID,
	})
	if err != nil {
		h.writeIntentError(c, err)
		return
	}
	body, err := MarshalForContext(c, out)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreIntent})
		return
	}
	c.JSON(http.StatusOK, body)
}

// Forfeit concedes the battle for the session player.
func (h *BattleHandler) Forfeit(c *gin.Context) {
	b, ok := h.battleFromPath(c)
	if !ok {
		return
	}
	playerUUID, _ := sessionIdentity(c)
	out, err := h.svc.SubmitIntent(b.ID, playerUUID, service.IntentParams{Intent: game.IntentForfeit})
	if err != nil {
		h.writeIntentError(c, err)
		return
	}
	body, err := MarshalForContext(c, out)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreIntent})
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *BattleHandler) battleFromPath(c *gin.Context) (*game.Battle, bool) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return nil, false
	}
	b, err := h.repo.FindBattleByJoinCode(code)
	if err != nil || b == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return nil, false
	}
	return b, true
}

func (h *BattleHandler) writeIntentError(c *gin.Context, err error) {
	switch err {
	case service.ErrBattleNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case service.ErrBattleNotInProgress:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
	case engine.ErrBattleAlreadyEnded:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleAlreadyEnded})
	case service.ErrPlayerNotInBattle:
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
	case service.ErrNotYourTurn:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
	case service.ErrUnknownIntent:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrIntentNotRecognized})
	case engine.ErrNoSuchTarget:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreIntent})
	}
}
