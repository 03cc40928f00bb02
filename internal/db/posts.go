package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vendora/marketfeed/internal/feed"
	"github.com/vendora/marketfeed/internal/models"
)

// PostRepository provides post-related database operations. It implements
// feed.PostStore.
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// ListPage returns one page of non-deleted posts ordered per q.Mode.
// The cursor is applied as a compound inequality on the sort key, never
// as an offset, so concurrent inserts do not shift which rows are next.
func (r *PostRepository) ListPage(ctx context.Context, q feed.PageQuery) ([]models.Post, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("is_deleted = ?", false).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		})

	switch q.Mode {
	case feed.ModeRanked:
		query = query.Order("is_pinned DESC, priority_rank ASC, created_at DESC, id DESC")
		if c := q.Cursor; c != nil {
			query = query.Where(
				"priority_rank > ? OR (priority_rank = ? AND created_at < ?) OR (priority_rank = ? AND created_at = ? AND id < ?)",
				c.Rank, c.Rank, c.CreatedAt, c.Rank, c.CreatedAt, c.ID,
			)
		}
	default:
		query = query.Order("created_at DESC, id DESC")
		if c := q.Cursor; c != nil {
			query = query.Where(
				"created_at < ? OR (created_at = ? AND id < ?)",
				c.CreatedAt, c.CreatedAt, c.ID,
			)
		}
	}

	var posts []models.Post
	if err := query.Limit(q.Limit).Find(&posts).Error; err != nil {
		if q.Mode == feed.ModeRanked && isRankColumnMissing(err) {
			return nil, fmt.Errorf("ranked feed query: %w", feed.ErrRankingUnavailable)
		}
		return nil, err
	}
	return posts, nil
}

// Create persists a post together with its media rows in one insert
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Media").
		First(&post, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// SoftDelete marks a post deleted, removing it from all feed queries
func (r *PostRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// isRankColumnMissing matches the postgres undefined_column error
// (SQLSTATE 42703) for priority_rank, so a feed deployed ahead of the
// schema migration degrades instead of erroring.
func isRankColumnMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "priority_rank") {
		return false
	}
	return strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "undefined column") ||
		strings.Contains(msg, "42703")
}
