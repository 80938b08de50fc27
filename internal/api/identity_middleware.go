package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mkarval/brewduel/internal/constants"
)

// Context keys populated by IdentityRequired.
const (
	ctxPlayerUUID = "playerUUID"
	ctxPlayerName = "playerName"
)

// IdentityRequired validates the player token header and injects identity
// into the request context. The token is a client-held UUID; there is no
// external identity provider, the UI generates and keeps it.
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerToken))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrIdentityRequired})
			return
		}
		if _, err := uuid.Parse(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrIdentityRequired})
			return
		}
		c.Set(ctxPlayerUUID, token)
		name := strings.TrimSpace(c.GetHeader(constants.HeaderPlayerName))
		if name == "" {
			name = "Patron " + token[:8]
		}
		c.Set(ctxPlayerName, name)
		c.Next()
	}
}

func sessionIdentity(c *gin.Context) (playerUUID, name string) {
	if v, ok := c.Get(ctxPlayerUUID); ok {
		playerUUID, _ = v.(string)
	}
	if v, ok := c.Get(ctxPlayerName); ok {
		name, _ = v.(string)
	}
	return playerUUID, name
}
