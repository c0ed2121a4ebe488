package requestlog

import (
	"time"

	"wfh-backend/internal/domain/wfhrequest"
)

// Entry is an immutable snapshot of a WFH request row taken at a status change.
// Table: wfh_request_logs
type Entry struct {
	LogID        uint64            `gorm:"column:log_id;primaryKey;autoIncrement" json:"log_id"`
	RowID        uint64            `gorm:"column:row_id;not null" json:"-"`
	RequestID    string            `gorm:"column:request_id;size:32;not null;index" json:"request_id"`
	StaffID      int64             `gorm:"column:staff_id;not null" json:"staff_id"`
	ManagerID    int64             `gorm:"column:manager_id;not null" json:"manager_id"`
	SpecificDate time.Time         `gorm:"column:specific_date;type:date;not null" json:"specific_date"`
	IsAM         bool              `gorm:"column:is_am;not null" json:"is_am"`
	IsPM         bool              `gorm:"column:is_pm;not null" json:"is_pm"`
	Status       wfhrequest.Status `gorm:"column:request_status;size:16;not null" json:"request_status"`
	ApplyDate    time.Time         `gorm:"column:apply_date;type:date;not null" json:"apply_date"`
	Reason       string            `gorm:"column:request_reason;type:text" json:"request_reason"`
	LoggedAt     time.Time         `gorm:"column:logged_at;not null" json:"logged_at"`
}

func (Entry) TableName() string { return "wfh_request_logs" }

// Snapshot copies every field of r as it is right now.
func Snapshot(r *wfhrequest.WFHRequest, at time.Time) *Entry {
	return &Entry{
		RowID:        r.ID,
		RequestID:    r.RequestID,
		StaffID:      r.StaffID,
		ManagerID:    r.ManagerID,
		SpecificDate: r.SpecificDate,
		IsAM:         r.IsAM,
		IsPM:         r.IsPM,
		Status:       r.Status,
		ApplyDate:    r.ApplyDate,
		Reason:       r.Reason,
		LoggedAt:     at.UTC(),
	}
}
