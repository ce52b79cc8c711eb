package types

import (
	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/store/schema"
)

// UserToDomain converts a users row to the domain user
func UserToDomain(u schema.User) domain.User {
	return domain.User{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ReferralCode: u.ReferralCode,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// PrizeToDomain converts a prize_catalog row to the domain prize
func PrizeToDomain(p schema.Prize) domain.Prize {
	return domain.Prize{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Value:       p.Value,
		Category:    string(p.Category),
		ImageURL:    p.ImageURL,
	}
}

// EventTypeToActivityAction converts an event type to the action stored in the activity log
func EventTypeToActivityAction(eventType domain.EventType) schema.ActivityAction {
	switch eventType {
	case domain.EventTypeBotStart, domain.EventTypeUserRegistered:
		return schema.ActivityActionStart
	case domain.EventTypeTaskCompleted:
		return schema.ActivityActionTaskCompleted
	case domain.EventTypeFolderSubscription:
		return schema.ActivityActionFolderSubscription
	case domain.EventTypeSubscriptionCheck:
		return schema.ActivityActionSubscriptionCheck
	case domain.EventTypeGiveawayCompleted:
		return schema.ActivityActionGiveawayCompleted
	default:
		return schema.ActivityAction(eventType)
	}
}
