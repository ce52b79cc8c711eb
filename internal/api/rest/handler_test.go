package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/api/middleware"
	"github.com/fhd3v0p/fsr-backend/internal/api/rest"
	"github.com/fhd3v0p/fsr-backend/internal/auth"
	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/mocks"
	"github.com/fhd3v0p/fsr-backend/internal/verification"
)

const (
	testAPIKey      = "test-admin-key"
	testTokenSecret = "test-token-secret"
	testAdminID     = int64(42)
)

var (
	fixedNow       = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	testAuthConfig = middleware.AuthConfig{
		TokenSecret: testTokenSecret,
		AdminIDs:    []int64{testAdminID},
		APIKeys:     []string{testAPIKey},
	}
)

// testHandlerMocks contains all the mocks needed for testing the handlers
type testHandlerMocks struct {
	ledger     *mocks.MockLedger
	scheduler  *mocks.MockScheduler
	dispatcher *mocks.MockDispatcher
	clock      *mocks.MockClock
	router     *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandlerMocks {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	tm := &testHandlerMocks{
		ledger:     mocks.NewMockLedger(ctrl),
		scheduler:  mocks.NewMockScheduler(ctrl),
		dispatcher: mocks.NewMockDispatcher(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(fixedNow).AnyTimes()

	handler := rest.NewHandler(
		rest.HandlerConfig{VerificationDelay: 30 * time.Second},
		tm.ledger,
		tm.scheduler,
		tm.dispatcher,
		tm.clock,
		zap.NewNop(),
	)

	tm.router = gin.New()
	rest.SetupRoutes(tm.router, handler, middleware.Auth(testAuthConfig, tm.clock, zap.NewNop()))
	return tm
}

func (tm *testHandlerMocks) do(t *testing.T, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	assert.Equal(t, false, body["success"])
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "error body missing")
	return errBody["code"].(string)
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestHandler(t)

	w, body := tm.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2025-07-01T12:00:00Z", body["timestamp"])
}

func TestRegister(t *testing.T) {
	t.Run("new user with inviter", func(t *testing.T) {
		tm := setupTestHandler(t)

		inviter := &domain.User{ID: 1001, FirstName: "Anna", ReferralCode: "FSRAAAAAA"}
		tm.ledger.EXPECT().RegisterUser(gomock.Any(), ledger.RegisterUserInput{
			ID:                  2001,
			Username:            "ivan",
			FirstName:           "Ivan",
			InviterReferralCode: "FSRAAAAAA",
		}).Return(&ledger.RegistrationResult{
			User:     domain.User{ID: 2001, Username: "ivan", FirstName: "Ivan", ReferralCode: "FSRBBBBBB", CreatedAt: fixedNow},
			Created:  true,
			Credited: true,
			Inviter:  inviter,
		}, nil)

		var types []domain.EventType
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(event domain.Event) error {
			types = append(types, event.Type)
			if event.Type == domain.EventTypeReferralCredited {
				assert.Equal(t, "1001", event.Attributes[domain.EventAttrInviterID])
				assert.Equal(t, "Anna", event.Attributes[domain.EventAttrInviterName])
			}
			if event.Type == domain.EventTypeGiveawayCompleted {
				assert.Equal(t, int64(1001), event.UserID)
				assert.Equal(t, "Anna", event.FirstName)
				assert.NotContains(t, event.Attributes, domain.EventAttrTickets)
			}
			return nil
		}).Times(3)

		w, body := tm.do(t, http.MethodPost, "/api/v1/register", map[string]interface{}{
			"user_id":               2001,
			"username":              "@ivan",
			"first_name":            "Ivan",
			"inviter_referral_code": "FSRAAAAAA",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, true, body["created"])
		assert.Equal(t, true, body["credited"])
		assert.Equal(t, float64(0), body["tickets"])
		assert.Equal(t, "FSRBBBBBB", body["user"].(map[string]interface{})["referral_code"])
		assert.Equal(t, []domain.EventType{
			domain.EventTypeUserRegistered,
			domain.EventTypeReferralCredited,
			domain.EventTypeGiveawayCompleted,
		}, types)
	})

	t.Run("known user is not announced", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(&ledger.RegistrationResult{
			User:    domain.User{ID: 2001, ReferralCode: "FSRBBBBBB"},
			Tickets: 3,
		}, nil)

		w, body := tm.do(t, http.MethodPost, "/api/v1/register", map[string]interface{}{"user_id": 2001})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, body["created"])
		assert.Equal(t, float64(3), body["tickets"])
	})

	t.Run("notification queue full does not fail the request", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(&ledger.RegistrationResult{
			User:    domain.User{ID: 2001, ReferralCode: "FSRBBBBBB"},
			Created: true,
		}, nil)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).Return(domain.ErrQueueFull)

		w, _ := tm.do(t, http.MethodPost, "/api/v1/register", map[string]interface{}{"user_id": 2001})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid user id", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, body := tm.do(t, http.MethodPost, "/api/v1/register", map[string]interface{}{"user_id": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_failed", errorCode(t, body))
	})

	t.Run("malformed body", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, body := tm.do(t, http.MethodPost, "/api/v1/register", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", errorCode(t, body))
	})

	t.Run("store failure does not leak", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(nil, domain.ErrStoreUnavailable)

		w, body := tm.do(t, http.MethodPost, "/api/v1/register", map[string]interface{}{"user_id": 2001})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "database_error", errorCode(t, body))
		assert.NotContains(t, w.Body.String(), "sqlite")
	})

	t.Run("code space exhausted", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(nil, domain.ErrCodeSpaceExhausted)

		w, body := tm.do(t, http.MethodPost, "/api/v1/register", map[string]interface{}{"user_id": 2001})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", errorCode(t, body))
	})
}

func TestCheckSubscription(t *testing.T) {
	t.Run("subscribed", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.scheduler.EXPECT().VerifyNow(gomock.Any(), int64(42)).Return(&verification.Outcome{UserID: 42, Subscribed: true, Tickets: 2}, nil)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(event domain.Event) error {
			assert.Equal(t, domain.EventTypeSubscriptionCheck, event.Type)
			assert.Equal(t, "true", event.Attributes[domain.EventAttrSubscribed])
			return nil
		})

		w, body := tm.do(t, http.MethodPost, "/api/v1/check-subscription", map[string]interface{}{"user_id": 42})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["subscribed"])
		assert.Equal(t, float64(2), body["tickets"])
	})

	t.Run("unknown user", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.scheduler.EXPECT().VerifyNow(gomock.Any(), int64(42)).Return(nil, domain.ErrNotFound)

		w, body := tm.do(t, http.MethodPost, "/api/v1/check-subscription", map[string]interface{}{"user_id": 42})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", errorCode(t, body))
	})
}

func TestReadEndpoints(t *testing.T) {
	t.Run("tickets", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().GetTicketStatus(gomock.Any(), int64(42)).Return(&domain.TicketStatus{
			UserID:              42,
			Username:            "ivan",
			ReferralCode:        "FSRAAAAAA",
			Subscribed:          true,
			CheckedAt:           &fixedNow,
			CreditedInviteCount: 2,
			Tickets:             3,
			Tasks:               domain.TaskStatus{InvitedFriend: true},
		}, nil)

		w, body := tm.do(t, http.MethodGet, "/api/v1/user/42/tickets", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(3), body["tickets"])
		assert.Equal(t, true, body["subscribed"])
		assert.Equal(t, float64(2), body["credited_invite_count"])
		assert.Equal(t, "ivan", body["username"])
		assert.Equal(t, map[string]interface{}{
			"task1_done":         false,
			"task2_done":         true,
			"tasks_done":         float64(1),
			"giveaway_completed": false,
		}, body["tasks"])
	})

	t.Run("invalid id", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, body := tm.do(t, http.MethodGet, "/api/v1/user/abc/tickets", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", errorCode(t, body))
	})

	t.Run("referral summary", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().GetReferralSummary(gomock.Any(), int64(42)).Return(&domain.ReferralSummary{
			Code:                "FSRAAAAAA",
			Link:                "https://t.me/FSRUBOT?start=refFSRAAAAAA",
			CreditedInviteCount: 1,
			Tickets:             1,
		}, nil)

		w, body := tm.do(t, http.MethodGet, "/api/v1/referral/42", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://t.me/FSRUBOT?start=refFSRAAAAAA", body["referral_link"])
	})

	t.Run("referral summary of unknown user", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().GetReferralSummary(gomock.Any(), int64(42)).Return(nil, domain.ErrNotFound)

		w, _ := tm.do(t, http.MethodGet, "/api/v1/referral/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("user stats", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().GetUserStats(gomock.Any(), int64(42)).Return(&domain.UserStats{
			User:                domain.User{ID: 42, FirstName: "Ivan", ReferralCode: "FSRAAAAAA"},
			CreditedInviteCount: 4,
			Tickets:             4,
			Tasks:               domain.TaskStatus{FolderSubscribed: true, InvitedFriend: true},
		}, nil)

		w, body := tm.do(t, http.MethodGet, "/api/v1/user/42/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(4), body["tickets"])
		assert.Equal(t, "Ivan", body["user"].(map[string]interface{})["first_name"])
		tasks := body["tasks"].(map[string]interface{})
		assert.Equal(t, true, tasks["task1_done"])
		assert.Equal(t, true, tasks["giveaway_completed"])
	})

	t.Run("prizes", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().ListPrizes(gomock.Any()).Return(&domain.PrizeCatalog{
			Prizes:     []domain.Prize{{ID: 1, Name: "Beauty", Value: 100000}, {ID: 2, Name: "Tattoo", Value: 50000}},
			TotalValue: 150000,
		}, nil)

		w, body := tm.do(t, http.MethodGet, "/api/v1/giveaway/prizes", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["prizes"], 2)
		assert.Equal(t, float64(150000), body["total_value"])
	})
}

func TestCreditReferral(t *testing.T) {
	t.Run("credited", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().CreditReferral(gomock.Any(), int64(1001), int64(2001)).Return(&ledger.CreditResult{Credited: true, InviterTickets: 1}, nil)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).Return(nil)

		w, body := tm.do(t, http.MethodPost, "/api/v1/add-ticket-for-referral", map[string]interface{}{"inviter_id": 1001, "invitee_id": 2001})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["credited"])
		assert.Equal(t, float64(1), body["tickets"])
	})

	t.Run("credit completing the inviter's giveaway", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().CreditReferral(gomock.Any(), int64(1001), int64(2001)).
			Return(&ledger.CreditResult{Credited: true, InviterTickets: 2, InviterCompletedGiveaway: true}, nil)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).Return(nil)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(event domain.Event) error {
			assert.Equal(t, domain.EventTypeGiveawayCompleted, event.Type)
			assert.Equal(t, int64(1001), event.UserID)
			assert.Equal(t, "2", event.Attributes[domain.EventAttrTickets])
			return nil
		})

		w, _ := tm.do(t, http.MethodPost, "/api/v1/add-ticket-for-referral", map[string]interface{}{"inviter_id": 1001, "invitee_id": 2001})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("repeat is a no-op", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().CreditReferral(gomock.Any(), int64(1001), int64(2001)).Return(&ledger.CreditResult{InviterTickets: 1}, nil)

		w, body := tm.do(t, http.MethodPost, "/api/v1/add-ticket-for-referral", map[string]interface{}{"inviter_id": 1001, "invitee_id": 2001})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, body["credited"])
	})

	t.Run("missing invitee", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, _ := tm.do(t, http.MethodPost, "/api/v1/add-ticket-for-referral", map[string]interface{}{"inviter_id": 1001})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogTaskCompletion(t *testing.T) {
	t.Run("recorded and announced", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RecordActivity(gomock.Any(), int64(42), domain.EventTypeTaskCompleted, map[string]interface{}{
			domain.EventAttrTaskName:   "subscribe",
			domain.EventAttrTaskNumber: 2,
		}).Return(&ledger.ActivityResult{Tasks: domain.TaskStatus{FolderSubscribed: true}}, nil)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(event domain.Event) error {
			assert.Equal(t, domain.EventTypeTaskCompleted, event.Type)
			assert.Equal(t, "2", event.Attributes[domain.EventAttrTaskNumber])
			assert.Equal(t, "1", event.Attributes[domain.EventAttrTasksDone])
			return nil
		})

		w, body := tm.do(t, http.MethodPost, "/api/v1/log-task-completion", map[string]interface{}{
			"user_id":     42,
			"task_name":   "subscribe",
			"task_number": 2,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, true, body["tasks"].(map[string]interface{})["task1_done"])
	})

	t.Run("last task completes the giveaway", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RecordActivity(gomock.Any(), int64(42), domain.EventTypeTaskCompleted, gomock.Any()).Return(&ledger.ActivityResult{
			Tasks:             domain.TaskStatus{FolderSubscribed: true, InvitedFriend: true},
			Tickets:           2,
			GiveawayCompleted: true,
		}, nil)
		var types []domain.EventType
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(event domain.Event) error {
			types = append(types, event.Type)
			return nil
		}).Times(2)

		w, body := tm.do(t, http.MethodPost, "/api/v1/log-task-completion", map[string]interface{}{"user_id": 42, "task_name": "invite"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["tasks"].(map[string]interface{})["giveaway_completed"])
		assert.Equal(t, []domain.EventType{domain.EventTypeTaskCompleted, domain.EventTypeGiveawayCompleted}, types)
	})

	t.Run("task number out of range", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, body := tm.do(t, http.MethodPost, "/api/v1/log-task-completion", map[string]interface{}{
			"user_id":     42,
			"task_name":   "subscribe",
			"task_number": 3,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_failed", errorCode(t, body))
	})

	t.Run("unknown user", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RecordActivity(gomock.Any(), int64(42), gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotFound)

		w, _ := tm.do(t, http.MethodPost, "/api/v1/log-task-completion", map[string]interface{}{"user_id": 42, "task_name": "subscribe"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLogFolderSubscription(t *testing.T) {
	t.Run("schedules the delayed check", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RecordActivity(gomock.Any(), int64(42), domain.EventTypeFolderSubscription, gomock.Any()).
			Return(&ledger.ActivityResult{Tasks: domain.TaskStatus{FolderSubscribed: true}}, nil)
		tm.scheduler.EXPECT().Schedule(int64(42), 30*time.Second).Return(nil)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).Return(nil)

		w, body := tm.do(t, http.MethodPost, "/api/v1/log-folder-subscription", map[string]interface{}{"user_id": 42})
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["tasks"].(map[string]interface{})["tasks_done"])
	})

	t.Run("full queue still accepts", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RecordActivity(gomock.Any(), int64(42), gomock.Any(), gomock.Any()).Return(&ledger.ActivityResult{}, nil)
		tm.scheduler.EXPECT().Schedule(int64(42), gomock.Any()).Return(domain.ErrQueueFull)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).Return(nil)

		w, _ := tm.do(t, http.MethodPost, "/api/v1/log-folder-subscription", map[string]interface{}{"user_id": 42})
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("completion is announced after the subscription", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RecordActivity(gomock.Any(), int64(42), gomock.Any(), gomock.Any()).Return(&ledger.ActivityResult{
			Tasks:             domain.TaskStatus{FolderSubscribed: true, InvitedFriend: true},
			Tickets:           1,
			GiveawayCompleted: true,
		}, nil)
		tm.scheduler.EXPECT().Schedule(int64(42), gomock.Any()).Return(nil)
		gomock.InOrder(
			tm.dispatcher.EXPECT().Dispatch(gomock.Any()).Return(nil),
			tm.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(event domain.Event) error {
				assert.Equal(t, domain.EventTypeGiveawayCompleted, event.Type)
				assert.Equal(t, "1", event.Attributes[domain.EventAttrTickets])
				return nil
			}),
		)

		w, _ := tm.do(t, http.MethodPost, "/api/v1/log-folder-subscription", map[string]interface{}{"user_id": 42})
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("unknown user is not scheduled", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().RecordActivity(gomock.Any(), int64(42), gomock.Any(), gomock.Any()).Return(nil, domain.ErrNotFound)

		w, _ := tm.do(t, http.MethodPost, "/api/v1/log-folder-subscription", map[string]interface{}{"user_id": 42})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLogReferralStats(t *testing.T) {
	t.Run("reported to the operator chat", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().GetUserStats(gomock.Any(), int64(42)).Return(&domain.UserStats{
			User:                domain.User{ID: 42, Username: "ivan", FirstName: "Ivan"},
			CreditedInviteCount: 3,
			Tickets:             4,
		}, nil)
		tm.dispatcher.EXPECT().Dispatch(gomock.Any()).DoAndReturn(func(event domain.Event) error {
			assert.Equal(t, domain.EventTypeReferralStats, event.Type)
			assert.Equal(t, "ivan", event.Username)
			assert.Equal(t, "3", event.Attributes[domain.EventAttrCreditedInvites])
			assert.Equal(t, "4", event.Attributes[domain.EventAttrTickets])
			return nil
		})

		w, body := tm.do(t, http.MethodPost, "/api/v1/log-referral-stats", map[string]interface{}{"user_id": 42})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(3), body["credited_invite_count"])
	})

	t.Run("unknown user", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().GetUserStats(gomock.Any(), int64(42)).Return(nil, domain.ErrNotFound)

		w, body := tm.do(t, http.MethodPost, "/api/v1/log-referral-stats", map[string]interface{}{"user_id": 42})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", errorCode(t, body))
	})

	t.Run("missing user id", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, _ := tm.do(t, http.MethodPost, "/api/v1/log-referral-stats", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetAdminStats(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, body := tm.do(t, http.MethodGet, "/api/v1/admin/stats", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", errorCode(t, body))
	})

	t.Run("rejects unknown api key", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, _ := tm.do(t, http.MethodGet, "/api/v1/admin/stats", nil, "Authorization", "ApiKey nope")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("global stats and top referrers", func(t *testing.T) {
		tm := setupTestHandler(t)

		tm.ledger.EXPECT().GetGlobalStats(gomock.Any()).Return(&domain.GlobalStats{
			TotalUsers:      10,
			SubscribedUsers: 4,
			TotalReferrals:  6,
			ActiveUsers7d:   9,
		}, nil)
		tm.ledger.EXPECT().TopReferrers(gomock.Any(), 5).Return([]domain.ReferrerRank{{UserID: 1, Username: "top", Invites: 6}}, nil)

		w, body := tm.do(t, http.MethodGet, "/api/v1/admin/stats", nil, "Authorization", "ApiKey "+testAPIKey)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(10), body["total_users"])
		assert.Equal(t, float64(9), body["active_users_7d"])
		assert.Len(t, body["top_referrers"], 1)
	})

	t.Run("admin token issued to a campaign admin", func(t *testing.T) {
		tm := setupTestHandler(t)

		token, err := auth.IssueAdminToken(testTokenSecret, testAdminID, time.Hour, fixedNow)
		require.NoError(t, err)
		tm.ledger.EXPECT().GetGlobalStats(gomock.Any()).Return(&domain.GlobalStats{TotalUsers: 1}, nil)
		tm.ledger.EXPECT().TopReferrers(gomock.Any(), 5).Return(nil, nil)

		w, body := tm.do(t, http.MethodGet, "/api/v1/admin/stats", nil, "Authorization", "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), body["total_users"])
	})

	t.Run("admin token of a non admin", func(t *testing.T) {
		tm := setupTestHandler(t)

		token, err := auth.IssueAdminToken(testTokenSecret, 7, time.Hour, fixedNow)
		require.NoError(t, err)

		w, _ := tm.do(t, http.MethodGet, "/api/v1/admin/stats", nil, "Authorization", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("limit out of range", func(t *testing.T) {
		tm := setupTestHandler(t)

		w, _ := tm.do(t, http.MethodGet, "/api/v1/admin/stats?limit=500", nil, "Authorization", "ApiKey "+testAPIKey)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
