package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/store/schema"
)

// ErrReferralCodeTaken is returned by CreateUser when the referral code is already assigned
var ErrReferralCodeTaken = errors.New("referral code already taken")

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLiteStore creates a new SQLite store instance
func NewSQLiteStore(db *gorm.DB) Store {
	return &sqliteStore{db: db}
}

// isUniqueViolation reports whether err is a unique or primary key constraint failure
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a foreign key constraint failure
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// GetUser retrieves a user by id
func (s *sqliteStore) GetUser(ctx context.Context, userID int64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByReferralCode retrieves a user by referral code
func (s *sqliteStore) GetUserByReferralCode(ctx context.Context, code string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("referral_code = ?", code).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by referral code: %w", err)
	}
	return &user, nil
}

// ReferralCodeExists checks whether a referral code is already assigned
func (s *sqliteStore) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("referral_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check referral code: %w", err)
	}
	return count > 0, nil
}

// CreateUser inserts the user and credits the inviter atomically
func (s *sqliteStore) CreateUser(ctx context.Context, input CreateUserInput) (*CreateUserResult, error) {
	var result CreateUserResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := input.User

		// The id conflict is the idempotent path. A referral_code conflict still errors out.
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&user)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return ErrReferralCodeTaken
			}
			return fmt.Errorf("failed to create user: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			var existing schema.User
			if err := tx.Where("id = ?", input.User.ID).First(&existing).Error; err != nil {
				return fmt.Errorf("failed to get existing user: %w", err)
			}
			result.User = existing
			return nil
		}

		result.User = user
		result.Created = true

		if input.InviterID == nil || *input.InviterID == user.ID {
			return nil
		}

		credited, err := insertReferralEdge(tx, *input.InviterID, user.ID, user.CreatedAt)
		if err != nil {
			return err
		}
		result.Credited = credited
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateUserProfile refreshes the mutable profile fields
func (s *sqliteStore) UpdateUserProfile(ctx context.Context, input UpdateUserProfileInput) error {
	updates := map[string]interface{}{
		"updated_at": input.UpdatedAt,
	}
	if input.Username != "" {
		updates["username"] = input.Username
	}
	if input.FirstName != "" {
		updates["first_name"] = input.FirstName
	}
	if input.LastName != "" {
		updates["last_name"] = input.LastName
	}

	res := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("id = ?", input.UserID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update user profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", input.UserID, domain.ErrNotFound)
	}
	return nil
}

// CreateReferralEdge inserts the edge unless it already exists
func (s *sqliteStore) CreateReferralEdge(ctx context.Context, inviterID, inviteeID int64, createdAt time.Time) (bool, error) {
	var inserted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		inserted, err = insertReferralEdge(tx, inviterID, inviteeID, createdAt)
		return err
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// insertReferralEdge relies on the unique (inviter_id, invitee_id) index, so concurrent
// callers for the same pair end with exactly one row and the losers see no affected rows.
// The insert is the first statement so the transaction takes the write lock up front.
func insertReferralEdge(tx *gorm.DB, inviterID, inviteeID int64, createdAt time.Time) (bool, error) {
	if inviterID == inviteeID {
		return false, nil
	}

	edge := schema.ReferralEdge{
		InviterID: inviterID,
		InviteeID: inviteeID,
		CreatedAt: createdAt,
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "inviter_id"}, {Name: "invitee_id"}},
		DoNothing: true,
	}).Create(&edge)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return false, fmt.Errorf("referral participants %d/%d: %w", inviterID, inviteeID, domain.ErrNotFound)
		}
		return false, fmt.Errorf("failed to create referral edge: %w", res.Error)
	}

	return res.RowsAffected > 0, nil
}

// CountReferralEdges counts edges where the user is the inviter
func (s *sqliteStore) CountReferralEdges(ctx context.Context, inviterID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.ReferralEdge{}).
		Where("inviter_id = ?", inviterID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count referral edges: %w", err)
	}
	return count, nil
}

// UpsertSubscriptionStatus overwrites the status row of an existing user
func (s *sqliteStore) UpsertSubscriptionStatus(ctx context.Context, status schema.SubscriptionStatus) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"all_subscribed", "checked_at"}),
	}).Create(&status).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", status.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to upsert subscription status: %w", err)
	}
	return nil
}

// GetSubscriptionStatus retrieves the latest verification result
func (s *sqliteStore) GetSubscriptionStatus(ctx context.Context, userID int64) (*schema.SubscriptionStatus, error) {
	var status schema.SubscriptionStatus
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription status: %w", err)
	}
	return &status, nil
}

type ticketComponentsRow struct {
	ID               int64
	Username         string
	FirstName        string
	LastName         string
	ReferralCode     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	AllSubscribed    *bool
	CheckedAt        *time.Time
	CreditedInvites  int64
	FolderSubscribed bool
}

// GetTicketComponents reads the user, its status, its invite count and its task inputs in one statement
func (s *sqliteStore) GetTicketComponents(ctx context.Context, userID int64) (*TicketComponents, error) {
	var rows []ticketComponentsRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.id, u.username, u.first_name, u.last_name, u.referral_code, u.created_at, u.updated_at,
			s.all_subscribed, s.checked_at,
			(SELECT COUNT(*) FROM referral_edges e WHERE e.inviter_id = u.id) AS credited_invites,
			EXISTS (SELECT 1 FROM user_activity a WHERE a.user_id = u.id AND a.action = ?) AS folder_subscribed
		FROM users u
		LEFT JOIN subscription_status s ON s.user_id = u.id
		WHERE u.id = ?`, schema.ActivityActionFolderSubscription, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket components: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	components := &TicketComponents{
		User: schema.User{
			ID:           row.ID,
			Username:     row.Username,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			ReferralCode: row.ReferralCode,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		},
		CreditedInvites:  row.CreditedInvites,
		FolderSubscribed: row.FolderSubscribed,
	}
	if row.AllSubscribed != nil && row.CheckedAt != nil {
		components.Status = &schema.SubscriptionStatus{
			UserID:        row.ID,
			AllSubscribed: *row.AllSubscribed,
			CheckedAt:     *row.CheckedAt,
		}
	}

	return components, nil
}

// GetUserIDsDueForVerification returns users never verified or verified before checkedBefore
func (s *sqliteStore) GetUserIDsDueForVerification(ctx context.Context, checkedBefore time.Time, limit int) ([]int64, error) {
	if limit <= 0 {
		return []int64{}, nil
	}

	var ids []int64
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.id
		FROM users u
		LEFT JOIN subscription_status s ON s.user_id = u.id
		WHERE s.user_id IS NULL OR s.checked_at < ?
		ORDER BY s.checked_at IS NOT NULL, s.checked_at, u.id
		LIMIT ?`, checkedBefore, limit).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users due for verification: %w", err)
	}
	return ids, nil
}

// ListPrizes returns the prize catalog, highest value first
func (s *sqliteStore) ListPrizes(ctx context.Context) ([]schema.Prize, error) {
	var prizes []schema.Prize
	err := s.db.WithContext(ctx).Order("value DESC, id ASC").Find(&prizes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list prizes: %w", err)
	}
	return prizes, nil
}

// GetGlobalStats computes campaign-wide counters from a single read transaction
func (s *sqliteStore) GetGlobalStats(ctx context.Context, activeSince time.Time) (*GlobalStats, error) {
	var stats GlobalStats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&schema.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if err := tx.Model(&schema.SubscriptionStatus{}).
			Where("all_subscribed = ?", true).
			Count(&stats.SubscribedUsers).Error; err != nil {
			return fmt.Errorf("failed to count subscribed users: %w", err)
		}
		if err := tx.Model(&schema.ReferralEdge{}).Count(&stats.TotalReferrals).Error; err != nil {
			return fmt.Errorf("failed to count referral edges: %w", err)
		}
		if err := tx.Model(&schema.User{}).
			Where("updated_at >= ?", activeSince).
			Count(&stats.ActiveUsers).Error; err != nil {
			return fmt.Errorf("failed to count active users: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetTopReferrers returns users ordered by referral edge count
func (s *sqliteStore) GetTopReferrers(ctx context.Context, limit int) ([]ReferrerCount, error) {
	var referrers []ReferrerCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id, u.username, u.first_name, COUNT(e.id) AS invites
		FROM referral_edges e
		JOIN users u ON u.id = e.inviter_id
		GROUP BY u.id, u.username, u.first_name
		ORDER BY invites DESC, u.id ASC
		LIMIT ?`, limit).
		Scan(&referrers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get top referrers: %w", err)
	}
	return referrers, nil
}

// CreateUserActivity appends an entry to the activity log of an existing user
func (s *sqliteStore) CreateUserActivity(ctx context.Context, activity *schema.UserActivity) error {
	if err := s.db.WithContext(ctx).Create(activity).Error; err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", activity.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to create user activity: %w", err)
	}
	return nil
}

// MarkGiveawayCompleted writes the completion marker when both tasks are done.
// The partial unique index on (user_id) for the marker action keeps it to one row per user.
func (s *sqliteStore) MarkGiveawayCompleted(ctx context.Context, userID int64, completedAt time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Exec(`
		INSERT INTO user_activity (user_id, action, details, created_at)
		SELECT u.id, ?, NULL, ?
		FROM users u
		WHERE u.id = ?
			AND EXISTS (SELECT 1 FROM user_activity a WHERE a.user_id = u.id AND a.action = ?)
			AND EXISTS (SELECT 1 FROM referral_edges e WHERE e.inviter_id = u.id)
		ON CONFLICT DO NOTHING`,
		schema.ActivityActionGiveawayCompleted, completedAt, userID, schema.ActivityActionFolderSubscription)
	if res.Error != nil {
		return false, fmt.Errorf("failed to mark giveaway completed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Ping checks the database is reachable
func (s *sqliteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
