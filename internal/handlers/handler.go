package handlers

import (
	"time"

	"controlling_dishwasher/internal/logger"
	"controlling_dishwasher/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	streamInterval time.Duration
}

type Option func(*Handler)

// WithStreamInterval sets the WebSocket push interval used when the client
// does not ask for one.
func WithStreamInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 && d <= maxInterval {
			h.streamInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, streamInterval: defaultInterval}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// State stream, same port
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
	api := r.Group("/api/v1", h.operatorMiddleware)
	{
		h.registerDishwasherRoutes(api)
		h.registerProgramRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerDishwasherRoutes(api *gin.RouterGroup) {
	dishwasher := api.Group("/dishwasher")
	{
		// Body example: {"program":"ECO","fill_level":"HALF","tablets_used":true}
		dishwasher.POST("/start", h.startCycle)
		dishwasher.GET("/state", h.getState)
		dishwasher.POST("/door/open", h.openDoor)
		dishwasher.POST("/door/close", h.closeDoor)
		dishwasher.PUT("/filter", h.setFilter)
		dishwasher.POST("/faults", h.injectFaults)
		dishwasher.POST("/reset", h.reset)
	}
}

func (h *Handler) registerProgramRoutes(api *gin.RouterGroup) {
	api.GET("/programs", h.listPrograms)
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
