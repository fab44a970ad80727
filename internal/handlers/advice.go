package handlers

import (
	"net/http"

	"carbon_netzero/internal/advice"

	"github.com/gin-gonic/gin"
)

// @Summary      Reduction strategies
// @Description  Always answers 200. When the model is unavailable or its output is unusable, a deterministic heuristic payload is returned with fallback=true.
// @Tags         ai
// @Produce      json
// @Param        hours    query     int     false  "Window in hours, clamped to [1,48], default 6"
// @Param        topN     query     int     false  "Departments to keep, clamped to [1,10], default 5"
// @Param        noCache  query     string  false  "Any value bypasses the cache read"
// @Success      200      {object}  models.AdvicePayload
// @Failure      401      {object}  map[string]string
// @Router       /api/v1/ai/strategies [get]
// @Security     BearerAuth
func (h *Handler) strategies(c *gin.Context) {
	req := advice.Request{
		WindowHours: queryInt(c, "hours"),
		TopN:        queryInt(c, "topN"),
		NoCache:     c.Query("noCache") != "",
	}
	out := h.services.Strategies(c.Request.Context(), req)
	if h.log != nil {
		h.log.Debugw("ai_strategies_served", "state", out.State, "hours", out.Payload.WindowHours)
	}
	c.JSON(http.StatusOK, out.Payload)
}
