package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"open-rooms-backend/internal/engine"
	"open-rooms-backend/internal/mw"
	"open-rooms-backend/internal/refresher"
	"open-rooms-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, e *engine.Engine, r *refresher.Service, webpushOptions *webpush.Options, cacheTTL time.Duration) *gin.Engine {
	router := gin.Default()

	handler := NewHandler(s, e, r, webpushOptions)

	// Rate limit: 10 requests per second with a burst of 5
	rateLimiter := mw.RateLimiter(rate.Limit(10), 5)

	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := router.Group("/api")
	api.Use(rateLimiter)
	{
		// GET /api/buildings
		api.GET("/buildings", caching, GetBuildings(s.DB()))

		// GET /api/snapshot
		api.GET("/snapshot", caching, handler.GetSnapshot)

		// GET /api/buildings/{building}/rooms/{room}/timeline
		api.GET("/buildings/:building/rooms/:room/timeline", caching, handler.GetDayTimeline)

		// POST /api/cache/refresh
		api.POST("/cache/refresh", handler.PostCacheRefresh)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return router
}
