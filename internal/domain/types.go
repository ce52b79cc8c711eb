package domain

import (
	"fmt"
	"strings"
	"time"
)

// User is a campaign participant keyed by the Telegram user id
type User struct {
	ID           int64
	Username     string
	FirstName    string
	LastName     string
	ReferralCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName returns the best human-readable name for the user
func (u User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	switch {
	case name != "":
		return name
	case u.Username != "":
		return "@" + u.Username
	default:
		return fmt.Sprintf("id%d", u.ID)
	}
}

// ReferralEdge records that the inviter successfully brought in the invitee
type ReferralEdge struct {
	InviterID int64
	InviteeID int64
	CreatedAt time.Time
}

// SubscriptionStatus is the latest verification result for a user
type SubscriptionStatus struct {
	UserID        int64
	AllSubscribed bool
	CheckedAt     time.Time
}

// TicketTotal is the only ticket formula: one for being subscribed to every
// required channel plus one per credited referral.
func TicketTotal(subscribed bool, creditedInvites int64) int {
	total := int(creditedInvites)
	if subscribed {
		total++
	}
	return total
}

// TaskStatus is the campaign checklist of a user, derived from the activity log and the edges
type TaskStatus struct {
	// FolderSubscribed is set once a folder subscription was logged
	FolderSubscribed bool
	// InvitedFriend is set once the user has at least one credited invite
	InvitedFriend bool
}

// Done counts the finished tasks
func (t TaskStatus) Done() int {
	done := 0
	if t.FolderSubscribed {
		done++
	}
	if t.InvitedFriend {
		done++
	}
	return done
}

// Completed reports whether every task of the giveaway is finished
func (t TaskStatus) Completed() bool {
	return t.Done() == GIVEAWAY_TASK_COUNT
}

// TicketStatus is the read model behind the ticket endpoint
type TicketStatus struct {
	UserID              int64
	Username            string
	ReferralCode        string
	Subscribed          bool
	CheckedAt           *time.Time
	CreditedInviteCount int64
	Tickets             int
	Tasks               TaskStatus
}

// ReferralSummary is the display aggregate of a user's referral progress
type ReferralSummary struct {
	Code                string
	Link                string
	CreditedInviteCount int64
	Tickets             int
}

// UserStats combines the profile with its derived ledger values
type UserStats struct {
	User
	Subscribed          bool
	CreditedInviteCount int64
	Tickets             int
	Tasks               TaskStatus
}

// Prize is an entry of the static prize catalog
type Prize struct {
	ID          int64
	Name        string
	Description string
	Value       int64
	Category    string
	ImageURL    string
}

// PrizeCatalog is the ordered prize list with its combined value
type PrizeCatalog struct {
	Prizes     []Prize
	TotalValue int64
}

// GlobalStats holds campaign-wide counters
type GlobalStats struct {
	TotalUsers      int64
	SubscribedUsers int64
	TotalReferrals  int64
	ActiveUsers7d   int64
}

// ReferrerRank is one row of the top referrers board
type ReferrerRank struct {
	UserID    int64
	Username  string
	FirstName string
	Invites   int64
}

// ReferralLink builds the bot deep link carrying the referral code
func ReferralLink(botUsername, code string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%s", strings.TrimPrefix(botUsername, "@"), REFERRAL_PAYLOAD_PREFIX, code)
}

// ParseReferralPayload extracts the invite token from a /start payload.
// It returns false when the payload carries no referral token.
func ParseReferralPayload(payload string) (string, bool) {
	payload = strings.TrimSpace(payload)
	if !strings.HasPrefix(payload, REFERRAL_PAYLOAD_PREFIX) {
		return "", false
	}
	token := strings.TrimPrefix(payload, REFERRAL_PAYLOAD_PREFIX)
	// tolerate the "ref_" form used by older links
	token = strings.TrimPrefix(token, "_")
	if token == "" {
		return "", false
	}
	return token, true
}

// IsSubscribedMemberStatus reports whether a chat member status counts as subscribed
func IsSubscribedMemberStatus(status string) bool {
	switch status {
	case MEMBER_STATUS_MEMBER, MEMBER_STATUS_ADMINISTRATOR, MEMBER_STATUS_CREATOR:
		return true
	default:
		return false
	}
}
