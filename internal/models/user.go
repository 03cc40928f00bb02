package models

import (
	"database/sql"
	"time"
)

// User represents a marketplace identity (vendor, consumer, driver, affiliate or admin)
type User struct {
	ID          int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Username    string         `gorm:"type:varchar(32);not null;uniqueIndex:users_ux1;column:username"`
	Role        string         `gorm:"type:varchar(16);not null;default:'consumer';column:role"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at"`

	// Profile fields
	DisplayName sql.NullString `gorm:"type:varchar(64);column:display_name"`
	AvatarURL   string         `gorm:"type:varchar(1024);not null;default:'';column:avatar_url"`

	IsVerified  bool           `gorm:"not null;default:false;column:is_verified"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
