package handlers

import (
	"errors"
	"net/http"
	"time"

	"carbon_netzero/internal/models"
	"carbon_netzero/internal/service"

	"github.com/gin-gonic/gin"
)

// OffsetRequest records a purchased or generated offset in kg CO2e.
type OffsetRequest struct {
	Description string     `json:"description" binding:"required" example:"Solar PPA"`
	Amount      *float64   `json:"amount" binding:"required" example:"120"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// @Summary      Record an offset
// @Tags         offsets
// @Accept       json
// @Produce      json
// @Param        body  body      OffsetRequest  true  "Offset"
// @Success      200   {object}  map[string]interface{}  "status, id"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/offsets [post]
// @Security     BearerAuth
func (h *Handler) recordOffset(c *gin.Context) {
	var req OffsetRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	o := models.CarbonOffset{Description: req.Description, Amount: *req.Amount, Timestamp: time.Now().UTC()}
	if req.Timestamp != nil {
		o.Timestamp = req.Timestamp.UTC()
	}
	stored, err := h.services.Record(c.Request.Context(), o)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOffset) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to store offset", "offset_record_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "id": stored.ID})
}

// @Summary      List offsets
// @Description  Newest first, at most 200.
// @Tags         offsets
// @Produce      json
// @Success      200  {array}   models.CarbonOffset
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/offsets [get]
// @Security     BearerAuth
func (h *Handler) listOffsets(c *gin.Context) {
	items, err := h.services.Offsets.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "Failed to fetch offsets", "offset_list_failed", err)
		return
	}
	if items == nil {
		items = []models.CarbonOffset{}
	}
	c.JSON(http.StatusOK, items)
}
