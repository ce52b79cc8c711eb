package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/mocks"
	"github.com/fhd3v0p/fsr-backend/internal/store"
	"github.com/fhd3v0p/fsr-backend/internal/store/schema"
)

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

// testLedgerMocks contains all the mocks needed for testing the ledger
type testLedgerMocks struct {
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	codes  *mocks.MockCodeGenerator
	clock  *mocks.MockClock
	ledger ledger.Ledger
}

// setupTestLedger creates all the mocks and the ledger under test
func setupTestLedger(t *testing.T) *testLedgerMocks {
	ctrl := gomock.NewController(t)

	tm := &testLedgerMocks{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
		codes: mocks.NewMockCodeGenerator(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(fixedNow).AnyTimes()
	tm.ledger = ledger.New(ledger.Config{BotUsername: "FSRUBOT"}, tm.store, tm.codes, tm.clock, zap.NewNop())

	return tm
}

// tearDownTestLedger cleans up the test mocks
func tearDownTestLedger(mocks *testLedgerMocks) {
	mocks.ctrl.Finish()
}

func components(id int64, code string, subscribed *bool, invites int64) *store.TicketComponents {
	c := &store.TicketComponents{
		User:            schema.User{ID: id, ReferralCode: code, Username: "u", CreatedAt: fixedNow, UpdatedAt: fixedNow},
		CreditedInvites: invites,
	}
	if subscribed != nil {
		c.Status = &schema.SubscriptionStatus{UserID: id, AllSubscribed: *subscribed, CheckedAt: fixedNow}
	}
	return c
}

func boolPtr(b bool) *bool {
	return &b
}

func TestGenerateReferralCode(t *testing.T) {
	t.Run("retries on existing code", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		gomock.InOrder(
			tm.codes.EXPECT().Generate().Return("FSRAAAAAA", nil),
			tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRAAAAAA").Return(true, nil),
			tm.codes.EXPECT().Generate().Return("FSRBBBBBB", nil),
			tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRBBBBBB").Return(false, nil),
		)

		code, err := tm.ledger.GenerateReferralCode(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "FSRBBBBBB", code)
	})

	t.Run("gives up after the attempt limit", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.codes.EXPECT().Generate().Return("FSRAAAAAA", nil).Times(domain.MAX_REFERRAL_CODE_ATTEMPTS)
		tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRAAAAAA").Return(true, nil).Times(domain.MAX_REFERRAL_CODE_ATTEMPTS)

		_, err := tm.ledger.GenerateReferralCode(context.Background())
		assert.ErrorIs(t, err, domain.ErrCodeSpaceExhausted)
	})

	t.Run("store failure is hidden", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.codes.EXPECT().Generate().Return("FSRAAAAAA", nil)
		tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRAAAAAA").Return(false, errors.New("database is locked"))

		_, err := tm.ledger.GenerateReferralCode(context.Background())
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.NotContains(t, err.Error(), "locked")
	})
}

func TestRegisterUser(t *testing.T) {
	t.Run("rejects non positive id", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		_, err := tm.ledger.RegisterUser(context.Background(), ledger.RegisterUserInput{ID: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("existing user is returned without refresh when nothing changed", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		existing := &schema.User{ID: 1001, Username: "u", ReferralCode: "FSRAAAAAA", CreatedAt: fixedNow}
		tm.store.EXPECT().GetUser(gomock.Any(), int64(1001)).Return(existing, nil)
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(1001)).Return(components(1001, "FSRAAAAAA", nil, 2), nil)

		result, err := tm.ledger.RegisterUser(context.Background(), ledger.RegisterUserInput{
			ID:                  1001,
			Username:            "u",
			InviterReferralCode: "FSRZZZZZZ",
		})
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.False(t, result.Credited)
		assert.Nil(t, result.Inviter)
		assert.Equal(t, "FSRAAAAAA", result.User.ReferralCode)
		assert.Equal(t, 2, result.Tickets)
	})

	t.Run("existing user profile is refreshed", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		existing := &schema.User{ID: 1001, Username: "old", FirstName: "Ann", ReferralCode: "FSRAAAAAA", CreatedAt: fixedNow}
		tm.store.EXPECT().GetUser(gomock.Any(), int64(1001)).Return(existing, nil)
		tm.store.EXPECT().UpdateUserProfile(gomock.Any(), store.UpdateUserProfileInput{
			UserID:    1001,
			Username:  "new",
			UpdatedAt: fixedNow,
		}).Return(nil)
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(1001)).Return(components(1001, "FSRAAAAAA", nil, 0), nil)

		result, err := tm.ledger.RegisterUser(context.Background(), ledger.RegisterUserInput{
			ID:        1001,
			Username:  "new",
			FirstName: "Ann",
		})
		require.NoError(t, err)
		assert.Equal(t, "new", result.User.Username)
		assert.Equal(t, "Ann", result.User.FirstName)
		assert.Equal(t, "FSRAAAAAA", result.User.ReferralCode)
	})

	t.Run("new user with valid inviter code", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		inviter := &schema.User{ID: 1001, ReferralCode: "FSRAAAAAA"}
		tm.store.EXPECT().GetUser(gomock.Any(), int64(2001)).Return(nil, nil)
		tm.store.EXPECT().GetUserByReferralCode(gomock.Any(), "FSRAAAAAA").Return(inviter, nil)
		tm.codes.EXPECT().Generate().Return("FSRBBBBBB", nil)
		tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRBBBBBB").Return(false, nil)
		tm.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, input store.CreateUserInput) (*store.CreateUserResult, error) {
				require.NotNil(t, input.InviterID)
				assert.Equal(t, int64(1001), *input.InviterID)
				assert.Equal(t, "FSRBBBBBB", input.User.ReferralCode)
				assert.Equal(t, fixedNow, input.User.CreatedAt)
				return &store.CreateUserResult{User: input.User, Created: true, Credited: true}, nil
			})
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(2001)).Return(components(2001, "FSRBBBBBB", nil, 0), nil)
		tm.store.EXPECT().MarkGiveawayCompleted(gomock.Any(), int64(1001), fixedNow).Return(true, nil)

		result, err := tm.ledger.RegisterUser(context.Background(), ledger.RegisterUserInput{
			ID:                  2001,
			InviterReferralCode: "FSRAAAAAA",
		})
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.True(t, result.Credited)
		require.NotNil(t, result.Inviter)
		assert.Equal(t, int64(1001), result.Inviter.ID)
		assert.Equal(t, 0, result.Tickets)
		assert.True(t, result.InviterCompletedGiveaway)
	})

	t.Run("unknown inviter code is ignored", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetUser(gomock.Any(), int64(2001)).Return(nil, nil)
		tm.store.EXPECT().GetUserByReferralCode(gomock.Any(), "FSRNOPE00").Return(nil, nil)
		tm.codes.EXPECT().Generate().Return("FSRBBBBBB", nil)
		tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRBBBBBB").Return(false, nil)
		tm.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, input store.CreateUserInput) (*store.CreateUserResult, error) {
				assert.Nil(t, input.InviterID)
				return &store.CreateUserResult{User: input.User, Created: true}, nil
			})
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(2001)).Return(components(2001, "FSRBBBBBB", nil, 0), nil)

		result, err := tm.ledger.RegisterUser(context.Background(), ledger.RegisterUserInput{
			ID:                  2001,
			InviterReferralCode: "FSRNOPE00",
		})
		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.False(t, result.Credited)
		assert.Nil(t, result.Inviter)
	})

	t.Run("own code is not credited", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetUser(gomock.Any(), int64(3001)).Return(nil, nil)
		// numeric token falls back to the legacy id lookup and resolves to the user itself
		tm.store.EXPECT().GetUserByReferralCode(gomock.Any(), "3001").Return(nil, nil)
		tm.store.EXPECT().GetUser(gomock.Any(), int64(3001)).Return(&schema.User{ID: 3001}, nil)
		tm.codes.EXPECT().Generate().Return("FSRCCCCCC", nil)
		tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRCCCCCC").Return(false, nil)
		tm.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, input store.CreateUserInput) (*store.CreateUserResult, error) {
				assert.Nil(t, input.InviterID)
				return &store.CreateUserResult{User: input.User, Created: true}, nil
			})
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(3001)).Return(components(3001, "FSRCCCCCC", nil, 0), nil)

		result, err := tm.ledger.RegisterUser(context.Background(), ledger.RegisterUserInput{
			ID:                  3001,
			InviterReferralCode: "3001",
		})
		require.NoError(t, err)
		assert.False(t, result.Credited)
		assert.Nil(t, result.Inviter)
	})

	t.Run("code taken on insert is retried", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetUser(gomock.Any(), int64(2001)).Return(nil, nil)
		tm.codes.EXPECT().Generate().Return("FSRAAAAAA", nil)
		tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRAAAAAA").Return(false, nil)
		tm.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, store.ErrReferralCodeTaken)
		tm.codes.EXPECT().Generate().Return("FSRBBBBBB", nil)
		tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRBBBBBB").Return(false, nil)
		tm.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, input store.CreateUserInput) (*store.CreateUserResult, error) {
				assert.Equal(t, "FSRBBBBBB", input.User.ReferralCode)
				return &store.CreateUserResult{User: input.User, Created: true}, nil
			})
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(2001)).Return(components(2001, "FSRBBBBBB", nil, 0), nil)

		result, err := tm.ledger.RegisterUser(context.Background(), ledger.RegisterUserInput{ID: 2001})
		require.NoError(t, err)
		assert.Equal(t, "FSRBBBBBB", result.User.ReferralCode)
	})

	t.Run("concurrent registration resolves to existing row", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		winner := schema.User{ID: 2001, ReferralCode: "FSRWINNER"}
		tm.store.EXPECT().GetUser(gomock.Any(), int64(2001)).Return(nil, nil)
		tm.codes.EXPECT().Generate().Return("FSRLOSER0", nil)
		tm.store.EXPECT().ReferralCodeExists(gomock.Any(), "FSRLOSER0").Return(false, nil)
		tm.store.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&store.CreateUserResult{User: winner, Created: false}, nil)
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(2001)).Return(components(2001, "FSRWINNER", nil, 0), nil)

		result, err := tm.ledger.RegisterUser(context.Background(), ledger.RegisterUserInput{ID: 2001})
		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, "FSRWINNER", result.User.ReferralCode)
	})
}

func TestCreditReferral(t *testing.T) {
	t.Run("self referral never touches the edges", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(1001)).Return(components(1001, "FSRAAAAAA", nil, 0), nil)

		result, err := tm.ledger.CreditReferral(context.Background(), 1001, 1001)
		require.NoError(t, err)
		assert.False(t, result.Credited)
		assert.Equal(t, 0, result.InviterTickets)
	})

	t.Run("unknown participant", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().CreateReferralEdge(gomock.Any(), int64(1001), int64(9), fixedNow).
			Return(false, domain.ErrNotFound)

		_, err := tm.ledger.CreditReferral(context.Background(), 1001, 9)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("new edge", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().CreateReferralEdge(gomock.Any(), int64(1001), int64(2001), fixedNow).Return(true, nil)
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(1001)).Return(components(1001, "FSRAAAAAA", boolPtr(true), 1), nil)
		tm.store.EXPECT().MarkGiveawayCompleted(gomock.Any(), int64(1001), fixedNow).Return(false, nil)

		result, err := tm.ledger.CreditReferral(context.Background(), 1001, 2001)
		require.NoError(t, err)
		assert.True(t, result.Credited)
		assert.Equal(t, 2, result.InviterTickets)
		assert.False(t, result.InviterCompletedGiveaway)
	})

	t.Run("existing edge does not re-check completion", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().CreateReferralEdge(gomock.Any(), int64(1001), int64(2001), fixedNow).Return(false, nil)
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(1001)).Return(components(1001, "FSRAAAAAA", boolPtr(true), 1), nil)

		result, err := tm.ledger.CreditReferral(context.Background(), 1001, 2001)
		require.NoError(t, err)
		assert.False(t, result.Credited)
		assert.False(t, result.InviterCompletedGiveaway)
	})

	t.Run("completion marker failure keeps the credit", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().CreateReferralEdge(gomock.Any(), int64(1001), int64(2001), fixedNow).Return(true, nil)
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(1001)).Return(components(1001, "FSRAAAAAA", nil, 1), nil)
		tm.store.EXPECT().MarkGiveawayCompleted(gomock.Any(), int64(1001), fixedNow).Return(false, errors.New("database is locked"))

		result, err := tm.ledger.CreditReferral(context.Background(), 1001, 2001)
		require.NoError(t, err)
		assert.True(t, result.Credited)
		assert.False(t, result.InviterCompletedGiveaway)
	})
}

func TestSetSubscriptionStatus(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	tm.store.EXPECT().UpsertSubscriptionStatus(gomock.Any(), schema.SubscriptionStatus{
		UserID: 1001, AllSubscribed: true, CheckedAt: fixedNow,
	}).Return(nil)
	tm.store.EXPECT().UpsertSubscriptionStatus(gomock.Any(), gomock.Any()).Return(domain.ErrNotFound)

	require.NoError(t, tm.ledger.SetSubscriptionStatus(context.Background(), 1001, true))
	assert.ErrorIs(t, tm.ledger.SetSubscriptionStatus(context.Background(), 5, true), domain.ErrNotFound)
}

func TestTicketReads(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(1001)).Return(components(1001, "FSRAAAAAA", boolPtr(true), 3), nil).Times(4)
	tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(404)).Return(nil, nil)
	tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(500)).Return(nil, errors.New("disk I/O error"))

	ctx := context.Background()

	total, err := tm.ledger.GetTicketTotal(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	summary, err := tm.ledger.GetReferralSummary(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, "FSRAAAAAA", summary.Code)
	assert.Equal(t, "https://t.me/FSRUBOT?start=refFSRAAAAAA", summary.Link)
	assert.Equal(t, int64(3), summary.CreditedInviteCount)
	assert.Equal(t, 4, summary.Tickets)

	status, err := tm.ledger.GetTicketStatus(ctx, 1001)
	require.NoError(t, err)
	assert.True(t, status.Subscribed)
	require.NotNil(t, status.CheckedAt)
	assert.Equal(t, fixedNow, *status.CheckedAt)
	assert.Equal(t, 4, status.Tickets)

	assert.Equal(t, domain.TaskStatus{InvitedFriend: true}, status.Tasks)

	stats, err := tm.ledger.GetUserStats(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), stats.ID)
	assert.Equal(t, 4, stats.Tickets)
	assert.True(t, stats.Tasks.InvitedFriend)
	assert.False(t, stats.Tasks.Completed())

	_, err = tm.ledger.GetTicketTotal(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = tm.ledger.GetTicketTotal(ctx, 500)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestResolveReferralCode(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	ctx := context.Background()
	tm.store.EXPECT().GetUserByReferralCode(gomock.Any(), "FSRAAAAAA").Return(&schema.User{ID: 1001, ReferralCode: "FSRAAAAAA"}, nil)
	tm.store.EXPECT().GetUserByReferralCode(gomock.Any(), "fsraaaaaa").Return(nil, nil)
	tm.store.EXPECT().GetUserByReferralCode(gomock.Any(), "1001").Return(nil, nil)
	tm.store.EXPECT().GetUser(gomock.Any(), int64(1001)).Return(&schema.User{ID: 1001, ReferralCode: "FSRAAAAAA"}, nil)

	user, err := tm.ledger.ResolveReferralCode(ctx, "FSRAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), user.ID)

	_, err = tm.ledger.ResolveReferralCode(ctx, "fsraaaaaa")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err = tm.ledger.ResolveReferralCode(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), user.ID)

	_, err = tm.ledger.ResolveReferralCode(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListPrizes(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	tm.store.EXPECT().ListPrizes(gomock.Any()).Return([]schema.Prize{
		{ID: 2, Name: "Beauty", Value: 100000, Category: schema.PrizeCategoryBeautyService},
		{ID: 1, Name: "Certificate", Value: 50000, Category: schema.PrizeCategoryCertificate},
	}, nil)

	catalog, err := tm.ledger.ListPrizes(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog.Prizes, 2)
	assert.Equal(t, int64(150000), catalog.TotalValue)
	assert.Equal(t, "beauty_service", catalog.Prizes[0].Category)
}

func TestGlobalStatsAndTopReferrers(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	tm.store.EXPECT().GetGlobalStats(gomock.Any(), fixedNow.Add(-7*24*time.Hour)).
		Return(&store.GlobalStats{TotalUsers: 10, SubscribedUsers: 4, TotalReferrals: 6, ActiveUsers: 3}, nil)
	tm.store.EXPECT().GetTopReferrers(gomock.Any(), 5).
		Return([]store.ReferrerCount{{UserID: 1, Username: "a", Invites: 4}}, nil)

	stats, err := tm.ledger.GetGlobalStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.ActiveUsers7d)

	top, err := tm.ledger.TopReferrers(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(4), top[0].Invites)

	_, err = tm.ledger.TopReferrers(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordActivity(t *testing.T) {
	t.Run("task completion checks the giveaway", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		done := components(7, "FSRACT007", nil, 1)
		done.FolderSubscribed = true

		tm.store.EXPECT().CreateUserActivity(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, activity *schema.UserActivity) error {
				assert.Equal(t, int64(7), activity.UserID)
				assert.Equal(t, schema.ActivityActionTaskCompleted, activity.Action)
				assert.JSONEq(t, `{"task_name":"subscribe","task_number":2}`, string(activity.Details))
				assert.Equal(t, fixedNow, activity.CreatedAt)
				return nil
			})
		tm.store.EXPECT().MarkGiveawayCompleted(gomock.Any(), int64(7), fixedNow).Return(true, nil)
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(7)).Return(done, nil)

		result, err := tm.ledger.RecordActivity(context.Background(), 7, domain.EventTypeTaskCompleted, map[string]interface{}{
			"task_name":   "subscribe",
			"task_number": 2,
		})
		require.NoError(t, err)
		assert.True(t, result.GiveawayCompleted)
		assert.True(t, result.Tasks.Completed())
		assert.Equal(t, 1, result.Tickets)
	})

	t.Run("other events leave the giveaway alone", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().CreateUserActivity(gomock.Any(), gomock.Any()).Return(nil)
		tm.store.EXPECT().GetTicketComponents(gomock.Any(), int64(7)).Return(components(7, "FSRACT007", nil, 0), nil)

		result, err := tm.ledger.RecordActivity(context.Background(), 7, domain.EventTypeBotStart, nil)
		require.NoError(t, err)
		assert.False(t, result.GiveawayCompleted)
		assert.Equal(t, 0, result.Tasks.Done())
	})

	t.Run("unknown user", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		tm.store.EXPECT().CreateUserActivity(gomock.Any(), gomock.Any()).Return(domain.ErrNotFound)

		_, err := tm.ledger.RecordActivity(context.Background(), 424242, domain.EventTypeFolderSubscription, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rejects non positive id", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		_, err := tm.ledger.RecordActivity(context.Background(), 0, domain.EventTypeTaskCompleted, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("completion marker cannot be written directly", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tearDownTestLedger(tm)

		_, err := tm.ledger.RecordActivity(context.Background(), 7, domain.EventTypeGiveawayCompleted, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUsersDueForVerification(t *testing.T) {
	tm := setupTestLedger(t)
	defer tearDownTestLedger(tm)

	tm.store.EXPECT().GetUserIDsDueForVerification(gomock.Any(), fixedNow.Add(-24*time.Hour), 50).Return([]int64{1, 2}, nil)

	ids, err := tm.ledger.UsersDueForVerification(context.Background(), 24*time.Hour, 50)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestCodeGenerator(t *testing.T) {
	gen := ledger.NewCodeGenerator()
	seen := make(map[string]struct{})
	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.True(t, ledger.IsReferralCode(code), code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)

	assert.False(t, ledger.IsReferralCode("FSRab12cd"))
	assert.False(t, ledger.IsReferralCode("XYZAB12CD"))
	assert.False(t, ledger.IsReferralCode("FSRAB12C"))
}
