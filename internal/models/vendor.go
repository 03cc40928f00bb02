package models

import (
	"database/sql"
	"time"
)

// Vendor represents a vendor profile attached to a user
type Vendor struct {
	ID                 int64          `gorm:"primaryKey;autoIncrement;column:id"`
	UserID             int64          `gorm:"not null;uniqueIndex:vendors_ux1;column:user_id"`
	BusinessName       string         `gorm:"type:varchar(128);not null;column:business_name"`
	SubscriptionStatus string         `gorm:"type:varchar(16);not null;default:'inactive';column:subscription_status"`
	PlanID             sql.NullInt64  `gorm:"column:plan_id"`
	// Coarse tier used before per-plan billing existed; kept as a fallback
	Tier               sql.NullString `gorm:"type:varchar(16);column:tier"`
	IsVerified         bool           `gorm:"not null;default:false;column:is_verified"`
	CreatedAt          time.Time      `gorm:"not null;column:created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID"`
	Plan *Plan `gorm:"foreignKey:PlanID;references:ID"`
}

// TableName specifies the table name for Vendor
func (Vendor) TableName() string {
	return "vendors"
}

// Plan represents a vendor billing plan
type Plan struct {
	ID   int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Name string `gorm:"type:varchar(64);not null;column:name"`
}

// TableName specifies the table name for Plan
func (Plan) TableName() string {
	return "plans"
}
