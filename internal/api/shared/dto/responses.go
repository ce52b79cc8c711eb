package dto

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// UserResponse represents a registered user
type UserResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username,omitempty"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	ReferralCode string    `json:"referral_code"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterResponse represents the response for registering a user
type RegisterResponse struct {
	Success  bool         `json:"success"`
	User     UserResponse `json:"user"`
	Created  bool         `json:"created"`
	Credited bool         `json:"credited"`
	Tickets  int          `json:"tickets"`
}

// CheckSubscriptionResponse represents the response of a synchronous subscription check
type CheckSubscriptionResponse struct {
	Success    bool `json:"success"`
	Subscribed bool `json:"subscribed"`
	Tickets    int  `json:"tickets"`
}

// TasksResponse represents the giveaway checklist of a user
type TasksResponse struct {
	Task1Done         bool `json:"task1_done"`
	Task2Done         bool `json:"task2_done"`
	TasksDone         int  `json:"tasks_done"`
	GiveawayCompleted bool `json:"giveaway_completed"`
}

// TicketsResponse represents the ticket status of a user
type TicketsResponse struct {
	Success             bool          `json:"success"`
	Tickets             int           `json:"tickets"`
	Subscribed          bool          `json:"subscribed"`
	CheckedAt           *time.Time    `json:"checked_at,omitempty"`
	ReferralCode        string        `json:"referral_code"`
	CreditedInviteCount int64         `json:"credited_invite_count"`
	Username            string        `json:"username,omitempty"`
	Tasks               TasksResponse `json:"tasks"`
}

// ReferralResponse represents the referral summary of a user
type ReferralResponse struct {
	Success             bool   `json:"success"`
	ReferralCode        string `json:"referral_code"`
	ReferralLink        string `json:"referral_link"`
	CreditedInviteCount int64  `json:"credited_invite_count"`
	Tickets             int    `json:"tickets"`
}

// CreditReferralResponse represents the response for crediting a referral
type CreditReferralResponse struct {
	Success  bool `json:"success"`
	Credited bool `json:"credited"`
	Tickets  int  `json:"tickets"`
}

// UserStatsResponse represents the profile with its derived ledger values
type UserStatsResponse struct {
	Success             bool          `json:"success"`
	User                UserResponse  `json:"user"`
	Subscribed          bool          `json:"subscribed"`
	CreditedInviteCount int64         `json:"credited_invite_count"`
	Tickets             int           `json:"tickets"`
	Tasks               TasksResponse `json:"tasks"`
}

// PrizeResponse represents a prize of the catalog
type PrizeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       int64  `json:"value"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url,omitempty"`
}

// PrizesResponse represents the prize catalog
type PrizesResponse struct {
	Success    bool            `json:"success"`
	Prizes     []PrizeResponse `json:"prizes"`
	TotalValue int64           `json:"total_value"`
}

// MessageResponse represents a plain acknowledgement
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ActivityResponse acknowledges a logged task with the resulting checklist
type ActivityResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Tasks   TasksResponse `json:"tasks"`
}

// ReferralStatsResponse represents the referral statistics reported to the operator chat
type ReferralStatsResponse struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	CreditedInviteCount int64  `json:"credited_invite_count"`
	Tickets             int    `json:"tickets"`
}

// ReferrerResponse represents one row of the top referrers board
type ReferrerResponse struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	Invites   int64  `json:"invites"`
}

// AdminStatsResponse represents the campaign-wide statistics
type AdminStatsResponse struct {
	Success         bool               `json:"success"`
	TotalUsers      int64              `json:"total_users"`
	SubscribedUsers int64              `json:"subscribed_users"`
	TotalReferrals  int64              `json:"total_referrals"`
	ActiveUsers7d   int64              `json:"active_users_7d"`
	TopReferrers    []ReferrerResponse `json:"top_referrers"`
}
