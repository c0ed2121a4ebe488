package request

import (
	"context"
	"sort"
	"time"

	"wfh-backend/internal/domain/employee"
	"wfh-backend/internal/domain/requestlog"
	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/pkg/dateutil"
)

// MaxScheduleDays caps the team schedule window.
const MaxScheduleDays = 92

type Usecase struct {
	requests  wfhrequest.Repository
	logs      requestlog.Repository
	directory employee.Directory
}

func NewUsecase(requests wfhrequest.Repository, logs requestlog.Repository, directory employee.Directory) *Usecase {
	return &Usecase{requests: requests, logs: logs, directory: directory}
}

// Get aggregates all rows of requestID. data is the first row by insertion
// order; all_dates is ordered by date and empty unless the request recurs.
func (u *Usecase) Get(ctx context.Context, requestID string) (*AggregateView, error) {
	rows, err := u.requests.ListByRequestID(ctx, requestID)
	if err != nil {
		return nil, wfhrequest.StorageError(err)
	}
	if len(rows) == 0 {
		return nil, wfhrequest.ErrNotFound
	}

	view := &AggregateView{
		Data:        ToView(rows[0]),
		IsRecurring: len(rows) > 1,
		AllDates:    []DateSlot{},
	}
	if view.IsRecurring {
		sorted := make([]*wfhrequest.WFHRequest, len(rows))
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].SpecificDate.Before(sorted[j].SpecificDate)
		})
		for _, r := range sorted {
			view.AllDates = append(view.AllDates, DateSlot{
				SpecificDate: dateutil.Format(r.SpecificDate),
				IsAM:         r.IsAM,
				IsPM:         r.IsPM,
			})
		}
	}
	return view, nil
}

// Pending lists a staff member's Pending rows in insertion order.
func (u *Usecase) Pending(ctx context.Context, staffID int64) ([]RequestView, error) {
	if err := u.requireStaff(ctx, staffID); err != nil {
		return nil, err
	}
	rows, err := u.requests.ListPendingByStaffID(ctx, staffID)
	if err != nil {
		return nil, wfhrequest.StorageError(err)
	}
	return ToViews(rows), nil
}

// TeamSchedule returns each direct report of managerID with their Approved and
// Pending WFH days in [from, to].
func (u *Usecase) TeamSchedule(ctx context.Context, managerID int64, from, to time.Time) (*TeamSchedule, error) {
	from, to = dateutil.Truncate(from), dateutil.Truncate(to)
	if to.Before(from) {
		return nil, wfhrequest.ValidationError("end_date must not be before start_date")
	}
	if to.Sub(from) > MaxScheduleDays*24*time.Hour {
		return nil, wfhrequest.ValidationError("date range too large")
	}
	if err := u.requireStaff(ctx, managerID); err != nil {
		return nil, err
	}

	team, err := u.directory.ListByManager(ctx, managerID)
	if err != nil {
		return nil, wfhrequest.StorageError(err)
	}
	out := &TeamSchedule{
		ManagerID: managerID,
		StartDate: dateutil.Format(from),
		EndDate:   dateutil.Format(to),
		Team:      make([]MemberSchedule, 0, len(team)),
	}
	if len(team) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(team))
	for _, e := range team {
		ids = append(ids, e.StaffID)
	}
	rows, err := u.requests.ListByStaffIDsInRange(ctx, ids, from, to,
		[]wfhrequest.Status{wfhrequest.StatusApproved, wfhrequest.StatusPending})
	if err != nil {
		return nil, wfhrequest.StorageError(err)
	}
	byStaff := make(map[int64][]ScheduleEntry, len(team))
	for _, r := range rows {
		byStaff[r.StaffID] = append(byStaff[r.StaffID], ScheduleEntry{
			RequestID:     r.RequestID,
			SpecificDate:  dateutil.Format(r.SpecificDate),
			IsAM:          r.IsAM,
			IsPM:          r.IsPM,
			RequestStatus: r.Status,
		})
	}
	for _, e := range team {
		details := byStaff[e.StaffID]
		if details == nil {
			details = []ScheduleEntry{}
		}
		out.Team = append(out.Team, MemberSchedule{
			StaffID:         e.StaffID,
			FirstName:       e.FirstName,
			LastName:        e.LastName,
			Dept:            e.Dept,
			Position:        e.Position,
			ScheduleDetails: details,
		})
	}
	return out, nil
}

// History returns the audit trail of a request, oldest first.
func (u *Usecase) History(ctx context.Context, requestID string) ([]LogView, error) {
	entries, err := u.logs.ListByRequestID(ctx, requestID)
	if err != nil {
		return nil, wfhrequest.StorageError(err)
	}
	if len(entries) == 0 {
		return nil, wfhrequest.ErrNotFound
	}
	out := make([]LogView, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToLogView(e))
	}
	return out, nil
}

func (u *Usecase) requireStaff(ctx context.Context, staffID int64) error {
	if staffID <= 0 {
		return wfhrequest.ErrStaffNotFound
	}
	ok, err := u.directory.Exists(ctx, staffID)
	if err != nil {
		return wfhrequest.StorageError(err)
	}
	if !ok {
		return wfhrequest.ErrStaffNotFound
	}
	return nil
}

// Managers groups every employee with direct reports by department.
func (u *Usecase) Managers(ctx context.Context) (map[string][]ManagerView, error) {
	managers, err := u.directory.ListManagers(ctx)
	if err != nil {
		return nil, wfhrequest.StorageError(err)
	}
	out := make(map[string][]ManagerView)
	for _, m := range managers {
		out[m.Dept] = append(out[m.Dept], ManagerView{
			StaffID:   m.StaffID,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Dept:      m.Dept,
			Position:  m.Position,
		})
	}
	return out, nil
}
