package schema

import (
	"time"
)

// User represents the users table - one row per Telegram user that ever contacted the bot
type User struct {
	// ID is the Telegram user id, stable across sessions
	ID int64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// Username is the Telegram @handle without the leading @, may be empty
	Username string `gorm:"column:username;not null;default:'';type:text"`
	// FirstName is the Telegram first name
	FirstName string `gorm:"column:first_name;not null;default:'';type:text"`
	// LastName is the Telegram last name
	LastName string `gorm:"column:last_name;not null;default:'';type:text"`
	// ReferralCode is the user's invite token (e.g., "FSRAB12CD"), assigned once and never changed
	ReferralCode string `gorm:"column:referral_code;not null;uniqueIndex:idx_users_referral_code;type:text"`
	// CreatedAt is when the user first registered
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	// UpdatedAt is the last time the profile was refreshed
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
