package schema

import (
	"time"
)

// ReferralEdge represents the referral_edges table - an immutable record that the inviter
// brought in the invitee. At most one row exists per (inviter_id, invitee_id).
type ReferralEdge struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// InviterID references the user whose referral code was used
	InviterID int64 `gorm:"column:inviter_id;not null;uniqueIndex:idx_referral_edges_pair,priority:1"`
	// InviteeID references the user who joined through the code
	InviteeID int64 `gorm:"column:invitee_id;not null;uniqueIndex:idx_referral_edges_pair,priority:2;index:idx_referral_edges_invitee"`
	// CreatedAt is when the referral was credited
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName specifies the table name for the ReferralEdge model
func (ReferralEdge) TableName() string {
	return "referral_edges"
}
