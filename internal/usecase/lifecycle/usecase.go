package lifecycle

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"wfh-backend/internal/domain/requestlog"
	"wfh-backend/internal/domain/uow"
	"wfh-backend/internal/domain/wfhrequest"
	"wfh-backend/internal/metrics"
	"wfh-backend/pkg/dateutil"
	"wfh-backend/pkg/id"
)

var errNoUnitOfWork = errors.New("lifecycle: no unit of work configured")

type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
	log logrus.FieldLogger
}

type Option func(*Usecase)

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithLogger(l logrus.FieldLogger) Option { return func(u *Usecase) { u.log = l } }

func NewUsecase(tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{uow: tx, now: time.Now, log: logrus.StandardLogger()}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Apply creates one Pending row per date, all sharing a fresh request id.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*ApplyResult, error) {
	if err := validateApply(in); err != nil {
		return nil, err
	}
	if u.uow == nil {
		return nil, wfhrequest.StorageError(errNoUnitOfWork)
	}

	now := u.now()
	applyDate := dateutil.Truncate(now)
	requestID := id.NewID32()

	dates := make([]time.Time, len(in.Dates))
	for i, d := range in.Dates {
		dates[i] = dateutil.Truncate(d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]*wfhrequest.WFHRequest, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, &wfhrequest.WFHRequest{
			RequestID:    requestID,
			StaffID:      in.StaffID,
			ManagerID:    in.ManagerID,
			SpecificDate: d,
			IsAM:         in.IsAM,
			IsPM:         in.IsPM,
			Status:       wfhrequest.StatusPending,
			ApplyDate:    applyDate,
			Reason:       strings.TrimSpace(in.Reason),
		})
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Requests.CreateBatch(ctx, rows); err != nil {
			return wfhrequest.StorageError(err)
		}
		return appendLogs(ctx, r, rows, now)
	})
	if err != nil {
		return nil, classify(err)
	}

	metrics.RecordTransition(ActionApply, len(rows))
	u.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"staff_id":   in.StaffID,
		"rows":       len(rows),
	}).Info("wfh request applied")

	return &ApplyResult{
		RequestID:   requestID,
		Rows:        len(rows),
		IsRecurring: len(rows) > 1,
		ApplyDate:   applyDate,
	}, nil
}

func validateApply(in ApplyInput) error {
	if len(in.Dates) == 0 {
		return wfhrequest.ValidationError("at least one date is required")
	}
	if !in.IsAM && !in.IsPM {
		return wfhrequest.ValidationError("is_am or is_pm must be set")
	}
	if in.StaffID <= 0 {
		return wfhrequest.ValidationError("staff_id must be positive")
	}
	if in.ManagerID <= 0 {
		return wfhrequest.ValidationError("manager_id must be positive")
	}
	seen := make(map[string]struct{}, len(in.Dates))
	for _, d := range in.Dates {
		if d.IsZero() {
			return wfhrequest.ValidationError("date must be set")
		}
		k := dateutil.Format(dateutil.Truncate(d))
		if _, dup := seen[k]; dup {
			return wfhrequest.ValidationError("duplicate date " + k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// Approve leaves every column but status untouched. Requests carry no notes
// field, so approval notes have nowhere to go.
func (u *Usecase) Approve(ctx context.Context, requestID string) (*TransitionResult, error) {
	return u.transition(ctx, requestID, wfhrequest.StatusApproved, ActionApprove, nil, nil)
}

// Reject replaces request_reason with reason when one is given.
func (u *Usecase) Reject(ctx context.Context, requestID, reason string) (*TransitionResult, error) {
	reason = strings.TrimSpace(reason)
	return u.transition(ctx, requestID, wfhrequest.StatusRejected, ActionReject, nil, func(row *wfhrequest.WFHRequest) {
		if reason != "" {
			row.Reason = reason
		}
	})
}

func (u *Usecase) Withdraw(ctx context.Context, requestID string) (*TransitionResult, error) {
	return u.transition(ctx, requestID, wfhrequest.StatusWithdrawn, ActionWithdraw, nil, nil)
}

// Cancel is allowed from Pending and from Approved.
func (u *Usecase) Cancel(ctx context.Context, requestID string) (*TransitionResult, error) {
	return u.transition(ctx, requestID, wfhrequest.StatusCancelled, ActionCancel, nil, nil)
}

// Decide applies a manager decision. A non-zero ManagerID must match the
// manager recorded on the request.
func (u *Usecase) Decide(ctx context.Context, in DecideInput) (*TransitionResult, error) {
	var guard func([]*wfhrequest.WFHRequest) error
	if in.ManagerID != 0 {
		guard = func(rows []*wfhrequest.WFHRequest) error {
			if rows[0].ManagerID != in.ManagerID {
				return wfhrequest.ValidationError("manager_id does not match the request's manager")
			}
			return nil
		}
	}

	switch in.Decision {
	case wfhrequest.StatusApproved:
		return u.transition(ctx, in.RequestID, wfhrequest.StatusApproved, ActionApprove, guard, nil)
	case wfhrequest.StatusRejected:
		notes := strings.TrimSpace(in.Notes)
		return u.transition(ctx, in.RequestID, wfhrequest.StatusRejected, ActionReject, guard, func(row *wfhrequest.WFHRequest) {
			if notes != "" {
				row.Reason = notes
			}
		})
	default:
		return nil, wfhrequest.ValidationError("decision_status must be Approved or Rejected")
	}
}

// transition moves every row of requestID to status to, atomically with its log
// entries. guard runs on the locked rows before any write.
func (u *Usecase) transition(
	ctx context.Context,
	requestID string,
	to wfhrequest.Status,
	action string,
	guard func([]*wfhrequest.WFHRequest) error,
	mutate func(*wfhrequest.WFHRequest),
) (*TransitionResult, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, wfhrequest.ValidationError("request_id is required")
	}
	if u.uow == nil {
		return nil, wfhrequest.StorageError(errNoUnitOfWork)
	}

	var n int
	err := u.uow.WithinRequestTx(ctx, requestID, func(r uow.Repos, rows []*wfhrequest.WFHRequest) error {
		if guard != nil {
			if err := guard(rows); err != nil {
				return err
			}
		}
		// check all rows before touching any
		for _, row := range rows {
			if !wfhrequest.CanTransition(row.Status, to) {
				return wfhrequest.TransitionError(requestID, row.Status, to)
			}
		}
		now := u.now()
		for _, row := range rows {
			row.Status = to
			if mutate != nil {
				mutate(row)
			}
			if err := r.Requests.Save(ctx, row); err != nil {
				return wfhrequest.StorageError(err)
			}
		}
		n = len(rows)
		return appendLogs(ctx, r, rows, now)
	})
	if err != nil {
		return nil, classify(err)
	}

	metrics.RecordTransition(action, n)
	u.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"status":     to,
		"rows":       n,
	}).Info("wfh request " + action)

	return &TransitionResult{RequestID: requestID, Status: to, Rows: n}, nil
}

// AutoReject cancels every Pending row applied strictly before cutoff, in one
// transaction, and returns the number of rows changed.
func (u *Usecase) AutoReject(ctx context.Context, cutoff time.Time) (int, error) {
	if u.uow == nil {
		return 0, wfhrequest.StorageError(errNoUnitOfWork)
	}
	cutoff = dateutil.Truncate(cutoff)

	var n int
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Requests.ListStalePendingForUpdate(ctx, cutoff)
		if err != nil {
			return wfhrequest.StorageError(err)
		}
		now := u.now()
		for _, row := range rows {
			// the query filters on Pending; anything else means the store changed under us
			if row.Status != wfhrequest.StatusPending {
				return wfhrequest.TransitionError(row.RequestID, row.Status, wfhrequest.StatusCancelled)
			}
			row.Status = wfhrequest.StatusCancelled
			row.Reason = wfhrequest.AutoRejectReason
			if err := r.Requests.Save(ctx, row); err != nil {
				return wfhrequest.StorageError(err)
			}
			if err := r.Logs.Append(ctx, requestlog.Snapshot(row, now)); err != nil {
				return wfhrequest.StorageError(err)
			}
			u.log.WithFields(logrus.Fields{
				"request_id": row.RequestID,
				"staff_id":   row.StaffID,
				"apply_date": dateutil.Format(row.ApplyDate),
			}).Info("auto-rejected stale wfh request")
		}
		n = len(rows)
		return nil
	})
	if err != nil {
		return 0, classify(err)
	}

	if n > 0 {
		metrics.RecordTransition(ActionAutoReject, n)
	}
	return n, nil
}

func appendLogs(ctx context.Context, r uow.Repos, rows []*wfhrequest.WFHRequest, at time.Time) error {
	for _, row := range rows {
		if err := r.Logs.Append(ctx, requestlog.Snapshot(row, at)); err != nil {
			return wfhrequest.StorageError(err)
		}
	}
	return nil
}

// classify keeps domain error kinds and tags everything else as storage failure.
func classify(err error) error {
	switch {
	case errors.Is(err, wfhrequest.ErrNotFound),
		errors.Is(err, wfhrequest.ErrValidation),
		errors.Is(err, wfhrequest.ErrInvalidTransition),
		errors.Is(err, wfhrequest.ErrStorage):
		return err
	default:
		return wfhrequest.StorageError(err)
	}
}
