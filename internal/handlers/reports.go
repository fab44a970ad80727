package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Net-zero summary
// @Description  Emission totals honor the filter; offsets are counted in full.
// @Tags         reports
// @Produce      json
// @Param        from        query     string  false  "Start of range"
// @Param        to          query     string  false  "End of range. Date-only treated as end of day."
// @Param        department  query     string  false  "Department"
// @Success      200         {object}  models.ReportSummary
// @Failure      400         {object}  map[string]string
// @Failure      401         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /api/v1/reports/summary [get]
// @Security     BearerAuth
func (h *Handler) reportSummary(c *gin.Context) {
	f, err := telemetryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sum, err := h.services.Summary(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "Failed to get summary", "report_summary_failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
