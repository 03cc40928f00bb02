package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vendora/marketfeed/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByIDs retrieves users by ids, keyed by id. Missing ids are absent
// from the map.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	result := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []*models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// VendorRepository provides vendor-related database operations
type VendorRepository struct {
	*Repository
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(repo *Repository) *VendorRepository {
	return &VendorRepository{Repository: repo}
}

// GetByUserID retrieves a vendor profile by owning user id
func (r *VendorRepository) GetByUserID(ctx context.Context, userID int64) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vendor, nil
}

// GetPlanName resolves a plan id to its name. Unknown plans resolve to ""
func (r *VendorRepository) GetPlanName(ctx context.Context, planID int64) (string, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return plan.Name, nil
}

// VerifiedByUserIDs returns the subset of user ids owning a verified vendor
func (r *VendorRepository) VerifiedByUserIDs(ctx context.Context, userIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var rows []struct {
		UserID int64 `gorm:"column:user_id"`
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Select("user_id").
		Where("user_id IN ? AND is_verified = ?", userIDs, true).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.UserID] = true
	}
	return result, nil
}

// SubscriptionRepository provides subscription-related database operations
type SubscriptionRepository struct {
	*Repository
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(repo *Repository) *SubscriptionRepository {
	return &SubscriptionRepository{Repository: repo}
}

// GetLatestByUserID retrieves the most recently updated subscription for a user
func (r *SubscriptionRepository) GetLatestByUserID(ctx context.Context, userID int64) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// EngagementRepository provides like/comment aggregate queries
type EngagementRepository struct {
	*Repository
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(repo *Repository) *EngagementRepository {
	return &EngagementRepository{Repository: repo}
}

type countRow struct {
	PostID int64 `gorm:"column:post_id"`
	Count  int64 `gorm:"column:count"`
}

// LikeCounts returns like counts per post id
func (r *EngagementRepository) LikeCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []countRow
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = row.Count
	}
	return result, nil
}

// CommentCounts returns comment counts per post id, excluding deleted comments
func (r *EngagementRepository) CommentCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	var rows []countRow
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ? AND is_deleted = ?", postIDs, false).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = row.Count
	}
	return result, nil
}

// LikedBy returns, per post id, whether the viewer has liked it
func (r *EngagementRepository) LikedBy(ctx context.Context, postIDs []int64, viewerID int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(postIDs))
	if len(postIDs) == 0 || viewerID == 0 {
		return result, nil
	}
	var rows []struct {
		PostID int64 `gorm:"column:post_id"`
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("post_id").
		Where("post_id IN ? AND user_id = ?", postIDs, viewerID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PostID] = true
	}
	return result, nil
}
