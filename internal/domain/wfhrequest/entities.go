package wfhrequest

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusWithdrawn Status = "Withdrawn"
	StatusCancelled Status = "Cancelled"
)

// AutoRejectReason overwrites request_reason on rows cancelled by the expiry sweep.
const AutoRejectReason = "Auto-rejected by system"

// WFHRequest is one row per (requester, calendar date). Rows sharing RequestID form a
// recurring request and always share StaffID and ManagerID.
type WFHRequest struct {
	// Internal numeric PK, also the insertion order
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	RequestID    string    `gorm:"column:request_id;size:32;not null;index:idx_wfh_requests_request_id" json:"request_id"`
	StaffID      int64     `gorm:"column:staff_id;not null;index:idx_wfh_requests_staff_status" json:"staff_id"`
	ManagerID    int64     `gorm:"column:manager_id;not null" json:"manager_id"`
	SpecificDate time.Time `gorm:"column:specific_date;type:date;not null" json:"specific_date"`
	IsAM         bool      `gorm:"column:is_am;not null" json:"is_am"`
	IsPM         bool      `gorm:"column:is_pm;not null" json:"is_pm"`
	Status       Status    `gorm:"column:request_status;size:16;not null;default:Pending;index:idx_wfh_requests_staff_status;index:idx_wfh_requests_status_apply" json:"request_status"`
	ApplyDate    time.Time `gorm:"column:apply_date;type:date;not null;index:idx_wfh_requests_status_apply" json:"apply_date"`
	Reason       string    `gorm:"column:request_reason;type:text" json:"request_reason"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (WFHRequest) TableName() string { return "wfh_requests" }

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusWithdrawn, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusWithdrawn, StatusCancelled:
		return true
	}
	return false
}

// Approved is terminal for every action except post-approval cancellation.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusWithdrawn, StatusCancelled},
	StatusApproved: {StatusCancelled},
}

// CanTransition reports whether a row in status from may move to status to.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
