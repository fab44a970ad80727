package handlers

import (
	"net/http"

	"carbon_netzero/internal/logger"
	"carbon_netzero/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options toggles the parts of the HTTP surface that depend on deployment.
type Options struct {
	// IngestToken guards telemetry ingest via X-INGEST-TOKEN. Empty leaves it open.
	IngestToken string
	// EnableDevRoutes mounts /api/v1/dev. Keep it off in production.
	EnableDevRoutes bool
	// Metrics, when set, is served at /metrics.
	Metrics http.Handler
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if h.opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.opts.Metrics))
	}

	router.GET("/health", h.health)
	router.GET("/api", h.apiIndex)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Live totals over WebSocket on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Devices post readings with the shared ingest token, not a user JWT.
	v1.POST("/emissions", h.ingestTokenMiddleware, h.ingestEmission)

	api := v1.Group("", h.userIdMiddleware)
	{
		h.registerEmissionRoutes(api)
		h.registerOffsetRoutes(api)
		h.registerReportRoutes(api)
		h.registerAdviceRoutes(api)
		if h.opts.EnableDevRoutes {
			h.registerDevRoutes(api)
		}
	}
}

func (h *Handler) registerEmissionRoutes(api *gin.RouterGroup) {
	emissions := api.Group("/emissions")
	{
		emissions.GET("/recent", h.recentEmissions)
		emissions.GET("/hotspots", h.hotspots)
		emissions.GET("/predict", h.predict)
	}
}

func (h *Handler) registerOffsetRoutes(api *gin.RouterGroup) {
	offsets := api.Group("/offsets")
	{
		offsets.GET("", h.listOffsets)
		// Body example: {"description":"Solar PPA","amount":120}
		offsets.POST("", h.recordOffset)
	}
}

func (h *Handler) registerReportRoutes(api *gin.RouterGroup) {
	api.GET("/reports/summary", h.reportSummary)
}

func (h *Handler) registerAdviceRoutes(api *gin.RouterGroup) {
	api.GET("/ai/strategies", h.strategies)
}

func (h *Handler) registerDevRoutes(api *gin.RouterGroup) {
	api.POST("/dev/seed", h.seed)
}
