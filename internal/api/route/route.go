package route

import (
	"net/http"

	"github.com/bassista/go_touchline/internal/api/middleware"
	"github.com/bassista/go_touchline/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the engine with the global middleware chain and every route.
func SetupRoutes(appCtx *app.App, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.HoneybadgerMiddleware(logger))
	r.Use(gin.LoggerWithWriter(logger.Writer()))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))
	r.Use(middleware.RateLimit(appCtx.Config.Server.RateLimitPerSec, appCtx.Config.Server.RateBurst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	publicRouter := r.Group("")
	NewConfigurationRouter(appCtx, publicRouter)

	NewAccountRouter(appCtx, r.Group("/api"))

	apiRouter := r.Group("/api/modules")
	NewModuleRouter(appCtx, apiRouter)
	NewZoneRouter(appCtx, apiRouter)
	NewScheduleRouter(appCtx, apiRouter)

	return r
}
