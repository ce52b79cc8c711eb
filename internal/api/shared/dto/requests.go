package dto

import (
	"fmt"
	"strings"

	"github.com/fhd3v0p/fsr-backend/internal/api/shared/constants"
)

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	UserID              int64  `json:"user_id"`
	Username            string `json:"username"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	InviterReferralCode string `json:"inviter_referral_code"`
}

// Validate validates the register request
func (r *RegisterRequest) Validate() error {
	if r.UserID <= 0 {
		return fmt.Errorf("user_id must be a positive integer")
	}
	r.Username = strings.TrimPrefix(strings.TrimSpace(r.Username), "@")
	r.InviterReferralCode = strings.TrimSpace(r.InviterReferralCode)
	return nil
}

// UserRequest represents a request body carrying only a user id
type UserRequest struct {
	UserID int64 `json:"user_id"`
}

// Validate validates the user request
func (r *UserRequest) Validate() error {
	if r.UserID <= 0 {
		return fmt.Errorf("user_id must be a positive integer")
	}
	return nil
}

// CreditReferralRequest represents the request body for crediting a referral
type CreditReferralRequest struct {
	InviterID int64 `json:"inviter_id"`
	InviteeID int64 `json:"invitee_id"`
}

// Validate validates the credit referral request
func (r *CreditReferralRequest) Validate() error {
	if r.InviterID <= 0 {
		return fmt.Errorf("inviter_id must be a positive integer")
	}
	if r.InviteeID <= 0 {
		return fmt.Errorf("invitee_id must be a positive integer")
	}
	return nil
}

// TaskCompletionRequest represents the request body for logging a completed task
type TaskCompletionRequest struct {
	UserID     int64  `json:"user_id"`
	TaskName   string `json:"task_name"`
	TaskNumber *int   `json:"task_number,omitempty"`
}

// Validate validates the task completion request
func (r *TaskCompletionRequest) Validate() error {
	if r.UserID <= 0 {
		return fmt.Errorf("user_id must be a positive integer")
	}
	r.TaskName = strings.TrimSpace(r.TaskName)
	if r.TaskName == "" {
		return fmt.Errorf("task_name is required")
	}
	if len(r.TaskName) > constants.MAX_TASK_NAME_LENGTH {
		return fmt.Errorf("task_name must be at most %d characters", constants.MAX_TASK_NAME_LENGTH)
	}
	if r.TaskNumber != nil && (*r.TaskNumber < 1 || *r.TaskNumber > constants.MAX_TASK_NUMBER) {
		return fmt.Errorf("task_number must be between 1 and %d", constants.MAX_TASK_NUMBER)
	}
	return nil
}
