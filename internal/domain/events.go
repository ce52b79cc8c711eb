package domain

import "time"

// EventType names a ledger event announced to operators
type EventType string

const (
	EventTypeBotStart           EventType = "bot_start"
	EventTypeUserRegistered     EventType = "user_registered"
	EventTypeReferralCredited   EventType = "referral_credited"
	EventTypeTaskCompleted      EventType = "task_completed"
	EventTypeFolderSubscription EventType = "folder_subscription"
	EventTypeSubscriptionCheck  EventType = "subscription_checked"
	EventTypeBotCommand         EventType = "bot_command"
	EventTypeGiveawayCompleted  EventType = "giveaway_completed"
	EventTypeReferralStats      EventType = "referral_stats"
)

// Event is a fire-and-forget notification about something the ledger recorded
type Event struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	UserID     int64             `json:"user_id"`
	Username   string            `json:"username,omitempty"`
	FirstName  string            `json:"first_name,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// Event attribute keys
const (
	EventAttrInviterID        = "inviter_id"
	EventAttrInviterName      = "inviter_name"
	EventAttrReferralCode     = "referral_code"
	EventAttrCredited         = "credited"
	EventAttrTaskName         = "task_name"
	EventAttrTaskNumber       = "task_number"
	EventAttrSubscribed       = "subscribed"
	EventAttrTickets          = "tickets"
	EventAttrVerificationWait = "verification_delay"
	EventAttrCommand          = "command"
	EventAttrTasksDone        = "tasks_done"
	EventAttrCreditedInvites  = "credited_invites"
)
