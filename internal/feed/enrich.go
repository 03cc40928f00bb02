package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vendora/marketfeed/internal/models"
	"github.com/vendora/marketfeed/pkg/logging"
)

// IdentityStore provides author display identities
type IdentityStore interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
}

// BadgeStore provides vendor verification badges
type BadgeStore interface {
	VerifiedByUserIDs(ctx context.Context, userIDs []int64) (map[int64]bool, error)
}

// EngagementStore provides per-post engagement aggregates
type EngagementStore interface {
	LikeCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error)
	CommentCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error)
	LikedBy(ctx context.Context, postIDs []int64, viewerID int64) (map[int64]bool, error)
}

// AuthorView is the resolved display identity of a post author
type AuthorView struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsVerified  bool   `json:"is_verified"`
}

// MediaView is a media attachment on a post
type MediaView struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// PostView is the enriched post shape returned by the API
type PostView struct {
	ID             int64       `json:"id"`
	Author         AuthorView  `json:"author"`
	Content        string      `json:"content"`
	Media          []MediaView `json:"media"`
	PriorityRank   int         `json:"priority_rank"`
	IsPinned       bool        `json:"is_pinned"`
	LikeCount      int64       `json:"like_count"`
	ViewerHasLiked bool        `json:"viewer_has_liked"`
	CommentCount   int64       `json:"comment_count"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Page is one page of the feed
type Page struct {
	Posts      []PostView `json:"posts"`
	NextCursor *string    `json:"next_cursor"`
}

// Enricher annotates a page of posts with author identity, badges and
// engagement aggregates. Enrichment never reorders the page and never
// fails it: a lookup that errors degrades to defaults for its fields.
type Enricher struct {
	identities IdentityStore
	badges     BadgeStore
	engagement EngagementStore
	logger     *zap.Logger
}

// NewEnricher creates a new enricher
func NewEnricher(identities IdentityStore, badges BadgeStore, engagement EngagementStore) *Enricher {
	return &Enricher{
		identities: identities,
		badges:     badges,
		engagement: engagement,
		logger:     logging.GetLogger().With(zap.String("component", "feed-enricher")),
	}
}

// Enrich decorates posts for the given viewer. Anonymous viewers pass
// viewerID 0 and always get viewer_has_liked = false.
func (e *Enricher) Enrich(ctx context.Context, posts []models.Post, viewerID int64) []PostView {
	if len(posts) == 0 {
		return []PostView{}
	}

	authorIDs := distinctAuthorIDs(posts)
	postIDs := make([]int64, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	// The three lookups are independent of each other and of the page
	// ordering, so they run concurrently and join before building views.
	var (
		users       map[int64]*models.User
		verified    map[int64]bool
		likes       map[int64]int64
		comments    map[int64]int64
		viewerLikes map[int64]bool
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		u, err := e.identities.GetByIDs(ctx, authorIDs)
		if err != nil {
			e.logger.Warn("identity lookup failed", zap.Error(err))
			return
		}
		users = u
	}()

	go func() {
		defer wg.Done()
		v, err := e.badges.VerifiedByUserIDs(ctx, authorIDs)
		if err != nil {
			e.logger.Warn("badge lookup failed", zap.Error(err))
			return
		}
		verified = v
	}()

	go func() {
		defer wg.Done()
		var err error
		if likes, err = e.engagement.LikeCounts(ctx, postIDs); err != nil {
			e.logger.Warn("like count lookup failed", zap.Error(err))
			likes = nil
		}
		if comments, err = e.engagement.CommentCounts(ctx, postIDs); err != nil {
			e.logger.Warn("comment count lookup failed", zap.Error(err))
			comments = nil
		}
		if viewerID != 0 {
			if viewerLikes, err = e.engagement.LikedBy(ctx, postIDs, viewerID); err != nil {
				e.logger.Warn("viewer like lookup failed", zap.Error(err))
				viewerLikes = nil
			}
		}
	}()

	wg.Wait()

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		view := buildPostView(p, authorView(p.AuthorID, users[p.AuthorID], verified[p.AuthorID]))
		view.LikeCount = likes[p.ID]
		view.CommentCount = comments[p.ID]
		view.ViewerHasLiked = viewerLikes[p.ID]
		views = append(views, view)
	}
	return views
}

// authorView resolves the display identity for an author. The name falls
// back from display name to username to a generated placeholder.
func authorView(authorID int64, user *models.User, vendorVerified bool) AuthorView {
	view := AuthorView{
		ID:          authorID,
		DisplayName: fmt.Sprintf("user-%d", authorID),
		IsVerified:  vendorVerified,
	}
	if user == nil {
		return view
	}
	if user.DisplayName.Valid && user.DisplayName.String != "" {
		view.DisplayName = user.DisplayName.String
	} else if user.Username != "" {
		view.DisplayName = user.Username
	}
	view.AvatarURL = user.AvatarURL
	view.IsVerified = vendorVerified || user.IsVerified
	return view
}

func buildPostView(p models.Post, author AuthorView) PostView {
	media := make([]MediaView, 0, len(p.Media))
	attachments := append([]models.PostMedia(nil), p.Media...)
	sort.Slice(attachments, func(i, j int) bool {
		if !attachments[i].CreatedAt.Equal(attachments[j].CreatedAt) {
			return attachments[i].CreatedAt.Before(attachments[j].CreatedAt)
		}
		return attachments[i].ID < attachments[j].ID
	})
	for _, m := range attachments {
		media = append(media, MediaView{Type: m.MediaType, URL: m.URL})
	}

	return PostView{
		ID:           p.ID,
		Author:       author,
		Content:      p.Content,
		Media:        media,
		PriorityRank: p.PriorityRank,
		IsPinned:     p.IsPinned,
		CreatedAt:    p.CreatedAt,
	}
}

func distinctAuthorIDs(posts []models.Post) []int64 {
	seen := make(map[int64]bool, len(posts))
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}
	return ids
}
