package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkarval/brewduel/internal/constants"
	"github.com/mkarval/brewduel/internal/version"
)

// Version returns build and VCS metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
		"dirty":   version.Dirty,
	})
}

// Health is a liveness probe used by the container healthcheck.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
}
