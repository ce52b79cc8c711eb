package dto

import "github.com/fhd3v0p/fsr-backend/internal/domain"

// MapUserToDTO maps a domain user to its response
func MapUserToDTO(u domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		ReferralCode: u.ReferralCode,
		CreatedAt:    u.CreatedAt,
	}
}

// MapTasksToDTO maps the giveaway checklist to its response
func MapTasksToDTO(t domain.TaskStatus) TasksResponse {
	return TasksResponse{
		Task1Done:         t.FolderSubscribed,
		Task2Done:         t.InvitedFriend,
		TasksDone:         t.Done(),
		GiveawayCompleted: t.Completed(),
	}
}

// MapPrizeCatalogToDTO maps the prize catalog to its response
func MapPrizeCatalogToDTO(catalog *domain.PrizeCatalog) PrizesResponse {
	prizes := make([]PrizeResponse, 0, len(catalog.Prizes))
	for _, p := range catalog.Prizes {
		prizes = append(prizes, PrizeResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Value:       p.Value,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
		})
	}
	return PrizesResponse{
		Success:    true,
		Prizes:     prizes,
		TotalValue: catalog.TotalValue,
	}
}

// MapAdminStatsToDTO maps the global counters and the top referrers board to its response
func MapAdminStatsToDTO(stats *domain.GlobalStats, top []domain.ReferrerRank) AdminStatsResponse {
	referrers := make([]ReferrerResponse, 0, len(top))
	for _, r := range top {
		referrers = append(referrers, ReferrerResponse{
			UserID:    r.UserID,
			Username:  r.Username,
			FirstName: r.FirstName,
			Invites:   r.Invites,
		})
	}
	return AdminStatsResponse{
		Success:         true,
		TotalUsers:      stats.TotalUsers,
		SubscribedUsers: stats.SubscribedUsers,
		TotalReferrals:  stats.TotalReferrals,
		ActiveUsers7d:   stats.ActiveUsers7d,
		TopReferrers:    referrers,
	}
}
