package api

import (
	"github.com/asume21/Codedswitchmonatize-sub012/internal/api/handlers"
	apimiddleware "github.com/asume21/Codedswitchmonatize-sub012/internal/api/middleware"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/config"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/metrics"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the HTTP routes. db may be nil, which disables history.
func SetupRouter(db *gorm.DB, cfg *config.Config, recorder metrics.Recorder, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSAllowedOrigins))

	historyService := services.NewHistoryService(db)
	progressionService := services.NewProgressionService(historyService, recorder, cfg.CodeMusicMaxBytes)

	// Health check
	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, db != nil)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	limiter := apimiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	v1 := router.Group("/api/v1")
	v1.Use(limiter.Middleware())
	{
		v1.GET("/theory/keys", handlers.ListKeys)
		v1.GET("/theory/genres", handlers.ListGenres)

		progressionHandler := handlers.NewProgressionHandler(progressionService)
		v1.POST("/progressions", progressionHandler.Generate)
		v1.GET("/progressions/summary", progressionHandler.Summary)
		v1.POST("/hash", progressionHandler.Hash)
		v1.POST("/code-to-music", progressionHandler.CodeToMusic)

		historyHandler := handlers.NewHistoryHandler(historyService)
		v1.GET("/history", historyHandler.List)
		v1.GET("/history/:id", historyHandler.Get)
	}

	return router
}
