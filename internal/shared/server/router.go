package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pdfdash-backend/internal/pipeline"
	"pdfdash-backend/internal/records"
	"pdfdash-backend/internal/services/health"
	"pdfdash-backend/internal/shared/config"
	"pdfdash-backend/internal/shared/server/middleware"
	"pdfdash-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	RecordsHandler  *records.Handler
	PipelineHandler *pipeline.Handler
	RateLimiter     *middleware.RateLimiter
	RateLimitRule   middleware.RateLimitRule
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	rule := deps.RateLimitRule
	if rule.Rate <= 0 || rule.Burst <= 0 {
		rule = middleware.DefaultRule()
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigins),
		middleware.RateLimit(deps.RateLimiter, rule),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})

	api := r.Group("/api")
	if deps.RecordsHandler != nil {
		deps.RecordsHandler.RegisterRoutes(api)
	}
	if deps.PipelineHandler != nil {
		deps.PipelineHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
