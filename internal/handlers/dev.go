package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Seed sample telemetry
// @Description  Development only. Inserts 90 sample readings ending now.
// @Tags         dev
// @Produce      json
// @Success      200  {object}  map[string]int  "inserted"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dev/seed [post]
// @Security     BearerAuth
func (h *Handler) seed(c *gin.Context) {
	n, err := h.services.Seed(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to seed sample data", "dev_seed_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inserted": n})
}
