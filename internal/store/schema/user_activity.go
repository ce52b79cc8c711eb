package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityAction names a logged user action
type ActivityAction string

const (
	ActivityActionStart              ActivityAction = "start"
	ActivityActionTaskCompleted      ActivityAction = "task_completed"
	ActivityActionFolderSubscription ActivityAction = "folder_subscription"
	ActivityActionSubscriptionCheck  ActivityAction = "subscription_check"
	// ActivityActionGiveawayCompleted is written at most once per user
	ActivityActionGiveawayCompleted ActivityAction = "giveaway_completed"
)

// UserActivity represents the user_activity table - an append-only audit trail of user actions.
// It never feeds the ticket computation, only the task checklist.
type UserActivity struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID is the acting user, it must reference an existing user
	UserID int64 `gorm:"column:user_id;not null;index:idx_user_activity_user,priority:1"`
	// Action is what the user did
	Action ActivityAction `gorm:"column:action;not null;type:text"`
	// Details holds action specific data (task name, task number, ...)
	Details datatypes.JSON `gorm:"column:details;type:text"`
	// CreatedAt is when the action was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_user_activity_user,priority:2"`
}

// TableName specifies the table name for the UserActivity model
func (UserActivity) TableName() string {
	return "user_activity"
}
