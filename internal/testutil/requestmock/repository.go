package requestmock

import (
	"context"
	"time"

	domain "wfh-backend/internal/domain/wfhrequest"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes default to a no-op; reads default to context.Canceled.
type Repo struct {
	CreateBatchFn               func(ctx context.Context, rows []*domain.WFHRequest) error
	ListByRequestIDFn           func(ctx context.Context, requestID string) ([]*domain.WFHRequest, error)
	ListByRequestIDForUpdateFn  func(ctx context.Context, requestID string) ([]*domain.WFHRequest, error)
	ListPendingByStaffIDFn      func(ctx context.Context, staffID int64) ([]*domain.WFHRequest, error)
	ListStalePendingForUpdateFn func(ctx context.Context, cutoff time.Time) ([]*domain.WFHRequest, error)
	CountStalePendingFn         func(ctx context.Context, cutoff time.Time) (int64, error)
	ListByStaffIDsInRangeFn     func(ctx context.Context, staffIDs []int64, from, to time.Time, statuses []domain.Status) ([]*domain.WFHRequest, error)
	SaveFn                      func(ctx context.Context, r *domain.WFHRequest) error
}

func (m *Repo) CreateBatch(ctx context.Context, rows []*domain.WFHRequest) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, rows)
	}
	return nil
}

func (m *Repo) ListByRequestID(ctx context.Context, requestID string) ([]*domain.WFHRequest, error) {
	if m.ListByRequestIDFn != nil {
		return m.ListByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByRequestIDForUpdate(ctx context.Context, requestID string) ([]*domain.WFHRequest, error) {
	if m.ListByRequestIDForUpdateFn != nil {
		return m.ListByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListPendingByStaffID(ctx context.Context, staffID int64) ([]*domain.WFHRequest, error) {
	if m.ListPendingByStaffIDFn != nil {
		return m.ListPendingByStaffIDFn(ctx, staffID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListStalePendingForUpdate(ctx context.Context, cutoff time.Time) ([]*domain.WFHRequest, error) {
	if m.ListStalePendingForUpdateFn != nil {
		return m.ListStalePendingForUpdateFn(ctx, cutoff)
	}
	return nil, context.Canceled
}

func (m *Repo) CountStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.CountStalePendingFn != nil {
		return m.CountStalePendingFn(ctx, cutoff)
	}
	return 0, context.Canceled
}

func (m *Repo) ListByStaffIDsInRange(ctx context.Context, staffIDs []int64, from, to time.Time, statuses []domain.Status) ([]*domain.WFHRequest, error) {
	if m.ListByStaffIDsInRangeFn != nil {
		return m.ListByStaffIDsInRangeFn(ctx, staffIDs, from, to, statuses)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, r *domain.WFHRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
