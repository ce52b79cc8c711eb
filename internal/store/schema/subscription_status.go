package schema

import (
	"time"
)

// SubscriptionStatus represents the subscription_status table - the latest completed
// channel membership check for a user, overwritten on every verification pass
type SubscriptionStatus struct {
	// UserID references users.id, one row per user
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	// AllSubscribed is true when the user belonged to every required channel
	AllSubscribed bool `gorm:"column:all_subscribed;not null"`
	// CheckedAt is when the verification pass finished
	CheckedAt time.Time `gorm:"column:checked_at;not null;index:idx_subscription_status_checked_at"`
}

// TableName specifies the table name for the SubscriptionStatus model
func (SubscriptionStatus) TableName() string {
	return "subscription_status"
}
