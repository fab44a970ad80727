package handlers

import (
	"errors"
	"net/http"
	"time"

	"carbon_netzero/internal/models"
	"carbon_netzero/internal/service"

	"github.com/gin-gonic/gin"
)

// IngestRequest is one device reading. Timestamp defaults to the time of receipt.
type IngestRequest struct {
	Department   string     `json:"department" example:"Melting"`
	Scope        int        `json:"scope" example:"1"`
	Current      float64    `json:"current" example:"12.5"`
	Voltage      float64    `json:"voltage" example:"400"`
	Power        float64    `json:"power" example:"5000"`
	Energy       float64    `json:"energy" example:"0.42"`
	CO2Emissions float64    `json:"co2_emissions" example:"0.34"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}

func (r IngestRequest) record() models.TelemetryRecord {
	rec := models.TelemetryRecord{
		Department:   r.Department,
		Scope:        r.Scope,
		Current:      r.Current,
		Voltage:      r.Voltage,
		Power:        r.Power,
		Energy:       r.Energy,
		CO2Emissions: r.CO2Emissions,
	}
	if r.Timestamp != nil {
		rec.Timestamp = *r.Timestamp
	}
	return rec
}

// @Summary      Ingest a telemetry reading
// @Description  Requires X-INGEST-TOKEN when an ingest token is configured. Readings at or above the alert threshold notify the department.
// @Tags         emissions
// @Accept       json
// @Produce      json
// @Param        X-INGEST-TOKEN  header    string         false  "Device ingest token"
// @Param        body            body      IngestRequest  true   "Reading"
// @Success      200             {object}  map[string]interface{}  "status, id"
// @Failure      400             {object}  map[string]string
// @Failure      401             {object}  map[string]string
// @Failure      500             {object}  map[string]string
// @Router       /api/v1/emissions [post]
func (h *Handler) ingestEmission(c *gin.Context) {
	var req IngestRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	stored, err := h.services.Ingest(c.Request.Context(), req.record())
	if err != nil {
		if errors.Is(err, service.ErrInvalidTelemetry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data", "details": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to store reading", "emission_ingest_failed", err, "department", req.Department)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "id": stored.ID})
}

// @Summary      Recent readings
// @Description  Newest first. limit is clamped to [1,500], default 50.
// @Tags         emissions
// @Produce      json
// @Param        limit       query     int     false  "Max readings"
// @Param        from        query     string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"
// @Param        to          query     string  false  "End of range. Date-only treated as end of day."
// @Param        department  query     string  false  "Department"
// @Success      200         {array}   models.TelemetryRecord
// @Failure      400         {object}  map[string]string
// @Failure      401         {object}  map[string]string
// @Failure      500         {object}  map[string]string
// @Router       /api/v1/emissions/recent [get]
// @Security     BearerAuth
func (h *Handler) recentEmissions(c *gin.Context) {
	f, err := telemetryFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := h.services.Recent(c.Request.Context(), service.RecentQuery{
		Limit:      queryInt(c, "limit"),
		From:       f.From,
		To:         f.To,
		Department: f.Department,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "Failed to fetch recent emissions", "emission_recent_failed", err)
		return
	}
	if items == nil {
		items = []models.TelemetryRecord{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Emission hotspots
// @Description  Top three departments by cumulative CO2.
// @Tags         emissions
// @Produce      json
// @Success      200  {array}   models.Hotspot
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/emissions/hotspots [get]
// @Security     BearerAuth
func (h *Handler) hotspots(c *gin.Context) {
	items, err := h.services.Hotspots(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "Failed to compute hotspots", "emission_hotspots_failed", err)
		return
	}
	if items == nil {
		items = []models.Hotspot{}
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Forecast CO2
// @Description  Linear fit of per-reading CO2 over time. minutesAhead is clamped to [1,1440], default 60.
// @Tags         emissions
// @Produce      json
// @Param        minutesAhead  query     int     false  "Minutes past the last reading"
// @Param        department    query     string  false  "Department"
// @Success      200           {object}  models.EmissionForecast
// @Failure      401           {object}  map[string]string
// @Failure      500           {object}  map[string]string
// @Router       /api/v1/emissions/predict [get]
// @Security     BearerAuth
func (h *Handler) predict(c *gin.Context) {
	fc, err := h.services.Predict(c.Request.Context(), queryInt(c, "minutesAhead"), c.Query("department"))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "Failed to compute prediction", "emission_predict_failed", err)
		return
	}
	c.JSON(http.StatusOK, fc)
}
