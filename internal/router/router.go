package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/karahanbuhan/besinveri/internal/apierr"
	"github.com/karahanbuhan/besinveri/internal/config"
	"github.com/karahanbuhan/besinveri/internal/food"
	"github.com/karahanbuhan/besinveri/internal/middleware"
	"github.com/karahanbuhan/besinveri/internal/status"
)

// New wires the middleware chain and routes. Collaborators arrive as
// constructor arguments; nothing here reaches for globals.
func New(
	cfg config.Config,
	foodHandler *food.Handler,
	statusHandler *status.Handler,
	responseCache *middleware.ResponseCache,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()

	// The cache aborts the chain on a hit, so anything that must stamp
	// every response (headers, admission control) sits before it.
	r.Use(
		middleware.SecurityHeaders(),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}),
		middleware.RequestID(),
		rateLimiter.Middleware(),
		apierr.Boundary(),
		responseCache.Middleware(),
		gin.Recovery(),
	)

	r.NoRoute(apierr.NoRoute)

	api := r.Group(cfg.BasePath)
	{
		api.GET("", statusHandler.Endpoints())
		api.GET("/health", statusHandler.Health())

		api.GET("/food/:slug", foodHandler.GetBySlug())
		api.GET("/foods", foodHandler.ListVerified())
		api.GET("/foods/search", foodHandler.Search())
		api.GET("/tags", foodHandler.ListTags())
	}

	return r
}
