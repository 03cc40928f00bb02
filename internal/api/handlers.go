package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendora/marketfeed/internal/feed"
	"github.com/vendora/marketfeed/pkg/logging"
	"github.com/vendora/marketfeed/pkg/telemetry"
)

// FeedHandler serves the feed read and write endpoints
type FeedHandler struct {
	svc    *feed.Service
	logger *zap.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(svc *feed.Service) *FeedHandler {
	return &FeedHandler{
		svc:    svc,
		logger: logging.WithComponent("feed-handler"),
	}
}

// GetFeed handles GET /api/v1/feed
func (h *FeedHandler) GetFeed(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "feed.get")
	defer span.End()

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	page := h.svc.GetFeed(ctx, feed.FeedRequest{
		Limit:    limit,
		Cursor:   c.Query("cursor"),
		ViewerID: ViewerID(c),
	})

	c.JSON(http.StatusOK, page)
}

// CreatePost handles POST /api/v1/posts
func (h *FeedHandler) CreatePost(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "feed.create_post")
	defer span.End()

	var in feed.CreatePostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.svc.CreatePost(ctx, ViewerID(c), in)
	if err != nil {
		if feed.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("create post failed",
			zap.String("request_id", logging.RequestIDFrom(ctx)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, view)
}
