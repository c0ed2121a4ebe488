package lifecycle

import (
	"time"

	"wfh-backend/internal/domain/wfhrequest"
)

type ApplyInput struct {
	StaffID   int64
	ManagerID int64
	Dates     []time.Time // one row per date; more than one makes it recurring
	IsAM      bool
	IsPM      bool
	Reason    string
}

type ApplyResult struct {
	RequestID   string
	Rows        int
	IsRecurring bool
	ApplyDate   time.Time
}

// DecideInput mirrors the manager decision payload.
type DecideInput struct {
	RequestID string
	Decision  wfhrequest.Status // Approved or Rejected
	Notes     string            // replaces request_reason on rejection; ignored on approval
	ManagerID int64             // 0 skips the ownership check
}

type TransitionResult struct {
	RequestID string
	Status    wfhrequest.Status
	Rows      int
}

// Transition names used for logging and metrics.
const (
	ActionApply      = "apply"
	ActionApprove    = "approve"
	ActionReject     = "reject"
	ActionWithdraw   = "withdraw"
	ActionCancel     = "cancel"
	ActionAutoReject = "auto_reject"
)
