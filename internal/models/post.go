package models

import (
	"time"
)

// Post represents a feed post
type Post struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	AuthorID     int64     `gorm:"not null;index;column:author_id"`
	AuthorRole   string    `gorm:"type:varchar(16);not null;column:author_role"`
	AuthorTier   string    `gorm:"type:varchar(16);not null;column:author_tier"`
	PriorityRank int       `gorm:"not null;column:priority_rank"`
	IsPinned     bool      `gorm:"not null;default:false;column:is_pinned"`
	IsDeleted    bool      `gorm:"not null;default:false;column:is_deleted"`
	Content      string    `gorm:"type:text;not null;column:content"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Author *User       `gorm:"foreignKey:AuthorID;references:ID"`
	Media  []PostMedia `gorm:"foreignKey:PostID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "feed_posts"
}

// Media type constants
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// PostMedia represents a media attachment on a post
type PostMedia struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64     `gorm:"not null;index;column:post_id"`
	MediaType string    `gorm:"type:varchar(8);not null;column:media_type"`
	URL       string    `gorm:"type:varchar(1024);not null;column:url"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for PostMedia
func (PostMedia) TableName() string {
	return "feed_post_media"
}
