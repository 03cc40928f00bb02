package feed

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vendora/marketfeed/internal/cache"
	"github.com/vendora/marketfeed/internal/models"
	"github.com/vendora/marketfeed/pkg/logging"
)

// Anonymous first pages are identical for every caller, so they are safe
// to cache briefly. Viewer-scoped pages never are (viewer_has_liked).
const firstPageCacheTTL = 3 * time.Second

// Limits bounds feed reads and writes
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxContentLen   int
	MaxMediaItems   int
}

// DefaultLimits returns the standard feed limits
func DefaultLimits() Limits {
	return Limits{
		DefaultPageSize: 20,
		MaxPageSize:     50,
		MaxContentLen:   5000,
		MaxMediaItems:   4,
	}
}

// Service orchestrates the feed read and write paths
type Service struct {
	posts    PostStore
	users    IdentityStore
	resolver *TierResolver
	enricher *Enricher
	cache    *cache.Cache
	limits   Limits
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a new feed service. redisCache may be nil when
// caching is disabled.
func NewService(posts PostStore, users IdentityStore, resolver *TierResolver, enricher *Enricher, redisCache *cache.Cache, limits Limits) *Service {
	return &Service{
		posts:    posts,
		users:    users,
		resolver: resolver,
		enricher: enricher,
		cache:    redisCache,
		limits:   limits,
		logger:   logging.GetLogger().With(zap.String("component", "feed-service")),
		now:      time.Now,
	}
}

// FeedRequest is one page request
type FeedRequest struct {
	Limit    int
	Cursor   string
	ViewerID int64 // 0 for anonymous viewers
}

// GetFeed returns one enriched page of the feed. Store failures degrade
// to an empty page with no next cursor so a broken feed never blocks
// page rendering; they are logged with the request's correlation id.
func (s *Service) GetFeed(ctx context.Context, req FeedRequest) *Page {
	limit := req.Limit
	if limit <= 0 {
		limit = s.limits.DefaultPageSize
	}
	if limit > s.limits.MaxPageSize {
		limit = s.limits.MaxPageSize
	}

	cacheable := req.ViewerID == 0 && req.Cursor == ""
	cacheKey := cache.HashKey("feed_page", strconv.Itoa(limit))
	if cacheable && s.cache != nil {
		var page Page
		if err := s.cache.GetJSON(cacheKey, &page); err == nil {
			return &page
		}
	}

	posts, mode, err := s.loadPage(ctx, limit+1, DecodeCursor(req.Cursor))
	if err != nil {
		logging.FromContext(ctx).Error("feed page query failed", zap.Error(err))
		return &Page{Posts: []PostView{}}
	}

	// The extra row only signals that more pages exist
	var next *string
	if len(posts) > limit {
		posts = posts[:limit]
		token := EncodeCursor(CursorFrom(posts[len(posts)-1], mode))
		next = &token
	}

	page := &Page{
		Posts:      s.enricher.Enrich(ctx, posts, req.ViewerID),
		NextCursor: next,
	}

	if cacheable && s.cache != nil {
		if err := s.cache.SetJSON(cacheKey, page, firstPageCacheTTL); err != nil && err != cache.ErrCacheDisabled {
			s.logger.Debug("feed page cache write failed", zap.Error(err))
		}
	}

	return page
}

// MediaInput is one media attachment on a write request
type MediaInput struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// CreatePostInput is the write request body
type CreatePostInput struct {
	Content string       `json:"content"`
	Media   []MediaInput `json:"media"`
}

// CreatePost validates and persists a new post. Role and tier are fetched
// fresh from collaborator state, and the priority rank computed from them
// is written alongside the post row in the same insert. There is no later
// re-rank: the snapshot is permanent.
func (s *Service) CreatePost(ctx context.Context, authorID int64, in CreatePostInput) (*PostView, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" && len(in.Media) == 0 {
		return nil, ErrEmptyPost
	}
	if len(content) > s.limits.MaxContentLen {
		return nil, fmt.Errorf("content is %d characters, limit is %d: %w", len(content), s.limits.MaxContentLen, ErrContentTooLong)
	}
	if len(in.Media) > s.limits.MaxMediaItems {
		return nil, fmt.Errorf("%d media attachments, limit is %d: %w", len(in.Media), s.limits.MaxMediaItems, ErrTooManyMedia)
	}
	for _, m := range in.Media {
		if (m.Type != models.MediaTypeImage && m.Type != models.MediaTypeVideo) || m.URL == "" {
			return nil, ErrInvalidMedia
		}
	}

	users, err := s.users.GetByIDs(ctx, []int64{authorID})
	if err != nil {
		return nil, fmt.Errorf("load author %d: %w", authorID, err)
	}
	author := users[authorID]
	if author == nil {
		return nil, fmt.Errorf("author %d not found", authorID)
	}

	role := Role(author.Role)
	tier := s.resolver.Resolve(ctx, authorID, role)

	now := s.now().UTC()
	post := &models.Post{
		AuthorID:     authorID,
		AuthorRole:   string(role),
		AuthorTier:   string(tier),
		PriorityRank: Rank(role, tier),
		Content:      content,
		CreatedAt:    now,
	}
	for _, m := range in.Media {
		post.Media = append(post.Media, models.PostMedia{
			MediaType: m.Type,
			URL:       m.URL,
			CreatedAt: now,
		})
	}

	if err := s.posts.Create(ctx, post); err != nil {
		logging.FromContext(ctx).Error("post insert failed", zap.Int64("author_id", authorID), zap.Error(err))
		return nil, fmt.Errorf("create post: %w", err)
	}

	// Fresh posts have zero engagement; only identity needs resolving
	view := buildPostView(*post, authorView(authorID, author, false))
	return &view, nil
}
