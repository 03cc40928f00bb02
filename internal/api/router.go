package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendora/marketfeed/internal/cache"
	"github.com/vendora/marketfeed/internal/db"
	"github.com/vendora/marketfeed/internal/feed"
	"github.com/vendora/marketfeed/pkg/config"
	"github.com/vendora/marketfeed/pkg/logging"
)

// Router sets up API routes
type Router struct {
	feedHandler *FeedHandler
	database    *db.DB
	cache       *cache.Cache
	cfg         *config.Config
	logger      *zap.Logger
}

// NewRouter wires repositories, the feed service and its handlers
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)

	posts := db.NewPostRepository(repo)
	users := db.NewUserRepository(repo)
	vendors := db.NewVendorRepository(repo)
	subs := db.NewSubscriptionRepository(repo)
	engagement := db.NewEngagementRepository(repo)

	resolver := feed.NewTierResolver(vendors, subs)
	enricher := feed.NewEnricher(users, vendors, engagement)

	svc := feed.NewService(posts, users, resolver, enricher, redisCache, feed.Limits{
		DefaultPageSize: cfg.Feed.DefaultPageSize,
		MaxPageSize:     cfg.Feed.MaxPageSize,
		MaxContentLen:   cfg.Feed.MaxContentLength,
		MaxMediaItems:   cfg.Feed.MaxMediaItems,
	})

	return &Router{
		feedHandler: NewFeedHandler(svc),
		database:    database,
		cache:       redisCache,
		cfg:         cfg,
		logger:      logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(RequestID(), AccessLog())

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	v1 := engine.Group("/api/v1")
	v1.GET("/feed", OptionalAuth(r.cfg.Auth.JWTSecret), r.feedHandler.GetFeed)
	v1.POST("/posts", RequireAuth(r.cfg.Auth.JWTSecret), r.feedHandler.CreatePost)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "OK",
		"service": "marketfeed-api",
	})
}
