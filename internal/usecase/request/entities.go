package request

import (
	"wfh-backend/internal/domain/requestlog"
	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/pkg/dateutil"
)

// RequestView is the wire shape of one request row. Adding a field here is a
// contract change for every client.
type RequestView struct {
	RequestID     string            `json:"request_id"`
	StaffID       int64             `json:"staff_id"`
	ManagerID     int64             `json:"manager_id"`
	SpecificDate  string            `json:"specific_date"`
	IsAM          bool              `json:"is_am"`
	IsPM          bool              `json:"is_pm"`
	RequestStatus wfhrequest.Status `json:"request_status"`
	ApplyDate     string            `json:"apply_date"`
	RequestReason string            `json:"request_reason"`
}

func ToView(r *wfhrequest.WFHRequest) RequestView {
	return RequestView{
		RequestID:     r.RequestID,
		StaffID:       r.StaffID,
		ManagerID:     r.ManagerID,
		SpecificDate:  dateutil.Format(r.SpecificDate),
		IsAM:          r.IsAM,
		IsPM:          r.IsPM,
		RequestStatus: r.Status,
		ApplyDate:     dateutil.Format(r.ApplyDate),
		RequestReason: r.Reason,
	}
}

func ToViews(rows []*wfhrequest.WFHRequest) []RequestView {
	out := make([]RequestView, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToView(r))
	}
	return out
}

type DateSlot struct {
	SpecificDate string `json:"specific_date"`
	IsAM         bool   `json:"is_am"`
	IsPM         bool   `json:"is_pm"`
}

// AggregateView groups every row of one request id.
type AggregateView struct {
	Data        RequestView `json:"data"`
	IsRecurring bool        `json:"is_recurring"`
	AllDates    []DateSlot  `json:"all_dates"`
}

type ScheduleEntry struct {
	RequestID     string            `json:"request_id"`
	SpecificDate  string            `json:"specific_date"`
	IsAM          bool              `json:"is_am"`
	IsPM          bool              `json:"is_pm"`
	RequestStatus wfhrequest.Status `json:"request_status"`
}

// MemberSchedule keys ScheduleDetails the way the calendar front end reads it.
// ManagerView is one entry of the managers-by-department listing.
type ManagerView struct {
	StaffID   int64  `json:"staff_id"`
	FirstName string `json:"staff_fname"`
	LastName  string `json:"staff_lname"`
	Dept      string `json:"dept"`
	Position  string `json:"position"`
}

type MemberSchedule struct {
	StaffID         int64           `json:"staff_id"`
	FirstName       string          `json:"staff_fname"`
	LastName        string          `json:"staff_lname"`
	Dept            string          `json:"dept"`
	Position        string          `json:"position"`
	ScheduleDetails []ScheduleEntry `json:"ScheduleDetails"`
}

type TeamSchedule struct {
	ManagerID int64            `json:"manager_id"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Team      []MemberSchedule `json:"team"`
}

type LogView struct {
	LogID    uint64 `json:"log_id"`
	LoggedAt string `json:"logged_at"`
	RequestView
}

func ToLogView(e *requestlog.Entry) LogView {
	return LogView{
		LogID:    e.LogID,
		LoggedAt: e.LoggedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		RequestView: RequestView{
			RequestID:     e.RequestID,
			StaffID:       e.StaffID,
			ManagerID:     e.ManagerID,
			SpecificDate:  dateutil.Format(e.SpecificDate),
			IsAM:          e.IsAM,
			IsPM:          e.IsPM,
			RequestStatus: e.Status,
			ApplyDate:     dateutil.Format(e.ApplyDate),
			RequestReason: e.Reason,
		},
	}
}
