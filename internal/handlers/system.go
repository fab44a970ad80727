package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK   = "ok"
	apiBase    = "/api"
	apiVersion = "1.0.0"

	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      API index
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string  "status, base, version"
// @Router       /api [get]
func (h *Handler) apiIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  statusOK,
		"base":    apiBase,
		"version": apiVersion,
	})
}
