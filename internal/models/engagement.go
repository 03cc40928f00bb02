package models

import (
	"time"
)

// Like represents a user liking a post
type Like struct {
	PostID    int64     `gorm:"primaryKey;column:post_id"`
	UserID    int64     `gorm:"primaryKey;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID;references:ID"`
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "post_likes"
}

// Comment represents a comment on a post
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64     `gorm:"not null;index;column:post_id"`
	UserID    int64     `gorm:"not null;column:user_id"`
	Body      string    `gorm:"type:text;not null;column:body"`
	IsDeleted bool      `gorm:"not null;default:false;column:is_deleted"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID;references:ID"`
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "post_comments"
}
