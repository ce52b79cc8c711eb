package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/adapter"
	"github.com/fhd3v0p/fsr-backend/internal/api/shared/constants"
	"github.com/fhd3v0p/fsr-backend/internal/api/shared/dto"
	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/ledger"
	"github.com/fhd3v0p/fsr-backend/internal/notifier"
	"github.com/fhd3v0p/fsr-backend/internal/verification"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
type Handler interface {
	// Register creates the user on first contact and credits the inviter
	// POST /api/v1/register
	Register(c *gin.Context)

	// CheckSubscription verifies channel membership now and persists the result
	// POST /api/v1/check-subscription
	CheckSubscription(c *gin.Context)

	// GetTickets returns the ticket status of a user
	// GET /api/v1/user/:id/tickets
	GetTickets(c *gin.Context)

	// GetReferral returns the referral code, link and credited invites of a user
	// GET /api/v1/referral/:id
	GetReferral(c *gin.Context)

	// CreditReferral records a referral edge, at most once per pair
	// POST /api/v1/add-ticket-for-referral
	CreditReferral(c *gin.Context)

	// GetUserStats returns the profile with its derived ledger values
	// GET /api/v1/user/:id/stats
	GetUserStats(c *gin.Context)

	// ListPrizes returns the prize catalog
	// GET /api/v1/giveaway/prizes
	ListPrizes(c *gin.Context)

	// LogTaskCompletion records a completed campaign task
	// POST /api/v1/log-task-completion
	LogTaskCompletion(c *gin.Context)

	// LogFolderSubscription records a folder subscription and schedules a delayed re-check
	// POST /api/v1/log-folder-subscription
	LogFolderSubscription(c *gin.Context)

	// LogReferralStats reports the referral statistics of a user to the operator chat
	// POST /api/v1/log-referral-stats
	LogReferralStats(c *gin.Context)

	// GetAdminStats returns campaign-wide counters and the top referrers (requires authentication)
	// GET /api/v1/admin/stats?limit=<limit>
	GetAdminStats(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// HandlerConfig holds the handler settings
type HandlerConfig struct {
	// VerificationDelay is how long a folder subscription waits before it is verified
	VerificationDelay time.Duration
}

// handler implements the Handler interface
type handler struct {
	config     HandlerConfig
	ledger     ledger.Ledger
	scheduler  verification.Scheduler
	dispatcher notifier.Dispatcher
	clock      adapter.Clock
	logger     *zap.Logger
}

// NewHandler creates a new REST API handler
func NewHandler(
	cfg HandlerConfig,
	l ledger.Ledger,
	s verification.Scheduler,
	d notifier.Dispatcher,
	clock adapter.Clock,
	log *zap.Logger,
) Handler {
	return &handler{
		config:     cfg,
		ledger:     l,
		scheduler:  s,
		dispatcher: d,
		clock:      clock,
		logger:     log,
	}
}

// notify queues an operator notification, failures never fail the request
func (h *handler) notify(event domain.Event) {
	if err := h.dispatcher.Dispatch(event); err != nil {
		h.logger.Warn("Failed to queue notification",
			zap.String("type", string(event.Type)),
			zap.Int64("userID", event.UserID),
			zap.Error(err))
	}
}

// notifyGiveawayCompleted announces a finished checklist, the tickets line is omitted when unknown
func (h *handler) notifyGiveawayCompleted(user domain.User, tickets *int) {
	attrs := map[string]string{domain.EventAttrTasksDone: strconv.Itoa(domain.GIVEAWAY_TASK_COUNT)}
	if tickets != nil {
		attrs[domain.EventAttrTickets] = strconv.Itoa(*tickets)
	}
	h.notify(domain.Event{
		Type:       domain.EventTypeGiveawayCompleted,
		UserID:     user.ID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		Attributes: attrs,
	})
}

func (h *handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.ledger.RegisterUser(c.Request.Context(), ledger.RegisterUserInput{
		ID:                  req.UserID,
		Username:            req.Username,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		InviterReferralCode: req.InviterReferralCode,
	})
	if err != nil {
		h.respondDomainError(c, err, "Failed to register user", zap.Int64("userID", req.UserID))
		return
	}

	if result.Created {
		h.notify(domain.Event{
			Type:       domain.EventTypeUserRegistered,
			UserID:     result.User.ID,
			Username:   result.User.Username,
			FirstName:  result.User.FirstName,
			Attributes: map[string]string{domain.EventAttrReferralCode: result.User.ReferralCode},
		})
	}
	if result.Credited && result.Inviter != nil {
		h.notify(domain.Event{
			Type:      domain.EventTypeReferralCredited,
			UserID:    result.User.ID,
			Username:  result.User.Username,
			FirstName: result.User.FirstName,
			Attributes: map[string]string{
				domain.EventAttrInviterID:    strconv.FormatInt(result.Inviter.ID, 10),
				domain.EventAttrInviterName:  result.Inviter.DisplayName(),
				domain.EventAttrReferralCode: result.Inviter.ReferralCode,
			},
		})
		if result.InviterCompletedGiveaway {
			h.notifyGiveawayCompleted(*result.Inviter, nil)
		}
	}

	c.JSON(http.StatusOK, dto.RegisterResponse{
		Success:  true,
		User:     dto.MapUserToDTO(result.User),
		Created:  result.Created,
		Credited: result.Credited,
		Tickets:  result.Tickets,
	})
}

func (h *handler) CheckSubscription(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	outcome, err := h.scheduler.VerifyNow(c.Request.Context(), req.UserID)
	if err != nil {
		h.respondDomainError(c, err, "Failed to check subscription", zap.Int64("userID", req.UserID))
		return
	}

	h.notify(domain.Event{
		Type:   domain.EventTypeSubscriptionCheck,
		UserID: req.UserID,
		Attributes: map[string]string{
			domain.EventAttrSubscribed: strconv.FormatBool(outcome.Subscribed),
			domain.EventAttrTickets:    strconv.Itoa(outcome.Tickets),
		},
	})

	c.JSON(http.StatusOK, dto.CheckSubscriptionResponse{
		Success:    true,
		Subscribed: outcome.Subscribed,
		Tickets:    outcome.Tickets,
	})
}

func (h *handler) GetTickets(c *gin.Context) {
	userID, err := parseUserIDParam(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	status, err := h.ledger.GetTicketStatus(c.Request.Context(), userID)
	if err != nil {
		h.respondDomainError(c, err, "Failed to get tickets", zap.Int64("userID", userID))
		return
	}

	c.JSON(http.StatusOK, dto.TicketsResponse{
		Success:             true,
		Tickets:             status.Tickets,
		Subscribed:          status.Subscribed,
		CheckedAt:           status.CheckedAt,
		ReferralCode:        status.ReferralCode,
		CreditedInviteCount: status.CreditedInviteCount,
		Username:            status.Username,
		Tasks:               dto.MapTasksToDTO(status.Tasks),
	})
}

func (h *handler) GetReferral(c *gin.Context) {
	userID, err := parseUserIDParam(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	summary, err := h.ledger.GetReferralSummary(c.Request.Context(), userID)
	if err != nil {
		h.respondDomainError(c, err, "Failed to get referral summary", zap.Int64("userID", userID))
		return
	}

	c.JSON(http.StatusOK, dto.ReferralResponse{
		Success:             true,
		ReferralCode:        summary.Code,
		ReferralLink:        summary.Link,
		CreditedInviteCount: summary.CreditedInviteCount,
		Tickets:             summary.Tickets,
	})
}

func (h *handler) CreditReferral(c *gin.Context) {
	var req dto.CreditReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.ledger.CreditReferral(c.Request.Context(), req.InviterID, req.InviteeID)
	if err != nil {
		h.respondDomainError(c, err, "Failed to credit referral",
			zap.Int64("inviterID", req.InviterID),
			zap.Int64("inviteeID", req.InviteeID))
		return
	}

	if result.Credited {
		h.notify(domain.Event{
			Type:   domain.EventTypeReferralCredited,
			UserID: req.InviteeID,
			Attributes: map[string]string{
				domain.EventAttrInviterID: strconv.FormatInt(req.InviterID, 10),
			},
		})
	}
	if result.InviterCompletedGiveaway {
		h.notifyGiveawayCompleted(domain.User{ID: req.InviterID}, &result.InviterTickets)
	}

	c.JSON(http.StatusOK, dto.CreditReferralResponse{
		Success:  true,
		Credited: result.Credited,
		Tickets:  result.InviterTickets,
	})
}

func (h *handler) GetUserStats(c *gin.Context) {
	userID, err := parseUserIDParam(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	stats, err := h.ledger.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		h.respondDomainError(c, err, "Failed to get user stats", zap.Int64("userID", userID))
		return
	}

	c.JSON(http.StatusOK, dto.UserStatsResponse{
		Success:             true,
		User:                dto.MapUserToDTO(stats.User),
		Subscribed:          stats.Subscribed,
		CreditedInviteCount: stats.CreditedInviteCount,
		Tickets:             stats.Tickets,
		Tasks:               dto.MapTasksToDTO(stats.Tasks),
	})
}

func (h *handler) ListPrizes(c *gin.Context) {
	catalog, err := h.ledger.ListPrizes(c.Request.Context())
	if err != nil {
		h.respondDomainError(c, err, "Failed to list prizes")
		return
	}

	c.JSON(http.StatusOK, dto.MapPrizeCatalogToDTO(catalog))
}

func (h *handler) LogTaskCompletion(c *gin.Context) {
	var req dto.TaskCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	taskNumber := 1
	if req.TaskNumber != nil {
		taskNumber = *req.TaskNumber
	}

	result, err := h.ledger.RecordActivity(c.Request.Context(), req.UserID, domain.EventTypeTaskCompleted, map[string]interface{}{
		domain.EventAttrTaskName:   req.TaskName,
		domain.EventAttrTaskNumber: taskNumber,
	})
	if err != nil {
		h.respondDomainError(c, err, "Failed to log task completion", zap.Int64("userID", req.UserID))
		return
	}

	h.notify(domain.Event{
		Type:   domain.EventTypeTaskCompleted,
		UserID: req.UserID,
		Attributes: map[string]string{
			domain.EventAttrTaskName:   req.TaskName,
			domain.EventAttrTaskNumber: strconv.Itoa(taskNumber),
			domain.EventAttrTasksDone:  strconv.Itoa(result.Tasks.Done()),
		},
	})
	if result.GiveawayCompleted {
		h.notifyGiveawayCompleted(domain.User{ID: req.UserID}, &result.Tickets)
	}

	c.JSON(http.StatusOK, dto.ActivityResponse{
		Success: true,
		Message: "Task completion logged successfully",
		Tasks:   dto.MapTasksToDTO(result.Tasks),
	})
}

func (h *handler) LogFolderSubscription(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.ledger.RecordActivity(c.Request.Context(), req.UserID, domain.EventTypeFolderSubscription, map[string]interface{}{
		domain.EventAttrVerificationWait: h.config.VerificationDelay.String(),
	})
	if err != nil {
		h.respondDomainError(c, err, "Failed to log folder subscription", zap.Int64("userID", req.UserID))
		return
	}

	// the user may still be joining the channels, a full queue leaves the re-check to the reconciler
	if err := h.scheduler.Schedule(req.UserID, h.config.VerificationDelay); err != nil {
		if !errors.Is(err, domain.ErrQueueFull) {
			h.respondDomainError(c, err, "Failed to schedule verification", zap.Int64("userID", req.UserID))
			return
		}
		h.logger.Warn("Delayed verification not scheduled", zap.Int64("userID", req.UserID), zap.Error(err))
	}

	h.notify(domain.Event{
		Type:   domain.EventTypeFolderSubscription,
		UserID: req.UserID,
		Attributes: map[string]string{
			domain.EventAttrVerificationWait: h.config.VerificationDelay.String(),
			domain.EventAttrTasksDone:        strconv.Itoa(result.Tasks.Done()),
		},
	})
	if result.GiveawayCompleted {
		h.notifyGiveawayCompleted(domain.User{ID: req.UserID}, &result.Tickets)
	}

	c.JSON(http.StatusAccepted, dto.ActivityResponse{
		Success: true,
		Message: "Folder subscription logged successfully",
		Tasks:   dto.MapTasksToDTO(result.Tasks),
	})
}

func (h *handler) LogReferralStats(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	stats, err := h.ledger.GetUserStats(c.Request.Context(), req.UserID)
	if err != nil {
		h.respondDomainError(c, err, "Failed to get referral stats", zap.Int64("userID", req.UserID))
		return
	}

	h.notify(domain.Event{
		Type:      domain.EventTypeReferralStats,
		UserID:    stats.ID,
		Username:  stats.Username,
		FirstName: stats.FirstName,
		Attributes: map[string]string{
			domain.EventAttrCreditedInvites: strconv.FormatInt(stats.CreditedInviteCount, 10),
			domain.EventAttrTickets:         strconv.Itoa(stats.Tickets),
		},
	})

	c.JSON(http.StatusOK, dto.ReferralStatsResponse{
		Success:             true,
		Message:             "Referral stats logged successfully",
		CreditedInviteCount: stats.CreditedInviteCount,
		Tickets:             stats.Tickets,
	})
}

func (h *handler) GetAdminStats(c *gin.Context) {
	queryParams, err := ParseAdminStatsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	stats, err := h.ledger.GetGlobalStats(c.Request.Context())
	if err != nil {
		h.respondDomainError(c, err, "Failed to get global stats")
		return
	}

	top, err := h.ledger.TopReferrers(c.Request.Context(), queryParams.Limit)
	if err != nil {
		h.respondDomainError(c, err, "Failed to get top referrers")
		return
	}

	c.JSON(http.StatusOK, dto.MapAdminStatsToDTO(stats, top))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    constants.HEALTH_STATUS_OK,
		Timestamp: h.clock.Now(),
	})
}
