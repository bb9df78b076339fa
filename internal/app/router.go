package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"tripplanner/internal/handler"
	"tripplanner/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	ChatHandler       *handler.ChatHandler
	OptimizeHandler   *handler.OptimizeHandler
	SessionHandler    *handler.SessionHandler
	AttractionHandler *handler.AttractionHandler
	WSHandler         *handler.WSHandler
	IdempotencyStore  middleware.ResponseStore
	RateLimiter       *middleware.RateLimiter
	MetricsHandler    http.Handler
	AllowedOrigins    []string
	NewRelicApp       *newrelic.Application
	Logger            *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(corsMiddleware(deps.AllowedOrigins))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	// Realtime updates.
	router.GET("/ws/:session_id", deps.WSHandler.Subscribe)

	// API v1 routes.
	v1 := router.Group("/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	v1.Use(middleware.IdempotencyMiddleware(deps.IdempotencyStore, logger))
	{
		v1.POST("/chat", deps.ChatHandler.Chat)
		v1.POST("/optimize", deps.OptimizeHandler.Optimize)

		// Session routes.
		sessions := v1.Group("/sessions")
		{
			sessions.GET("/:session_id/trip", deps.SessionHandler.GetTrip)
			sessions.DELETE("/:session_id/trip", deps.SessionHandler.DeleteTrip)
		}

		// Attraction routes.
		attractions := v1.Group("/attractions")
		{
			attractions.GET("", deps.AttractionHandler.Search)
			attractions.GET("/:id", deps.AttractionHandler.Get)
		}
	}

	return router
}

// corsMiddleware adapts rs/cors to gin. Preflight requests are answered by
// rs/cors and go no further.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Idempotent-Replayed"},
		AllowCredentials: true,
	})

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
