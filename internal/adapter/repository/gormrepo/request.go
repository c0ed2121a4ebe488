package gormrepo

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wfh-backend/internal/domain/wfhrequest"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

func (r *RequestRepository) CreateBatch(ctx context.Context, rows []*wfhrequest.WFHRequest) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return gerrors.Wrap(err, "create wfh requests")
	}
	return nil
}

func (r *RequestRepository) Save(ctx context.Context, row *wfhrequest.WFHRequest) error {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return gerrors.Wrapf(err, "save wfh request row %d", row.ID)
	}
	return nil
}

func (r *RequestRepository) ListByRequestID(ctx context.Context, requestID string) ([]*wfhrequest.WFHRequest, error) {
	return r.listByRequestID(r.db.WithContext(ctx), requestID)
}

func (r *RequestRepository) ListByRequestIDForUpdate(ctx context.Context, requestID string) ([]*wfhrequest.WFHRequest, error) {
	return r.listByRequestID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), requestID)
}

func (r *RequestRepository) listByRequestID(q *gorm.DB, requestID string) ([]*wfhrequest.WFHRequest, error) {
	var out []*wfhrequest.WFHRequest
	if err := q.Where("request_id = ?", requestID).Order("id ASC").Find(&out).Error; err != nil {
		return nil, gerrors.Wrapf(err, "list wfh requests by request_id %s", requestID)
	}
	return out, nil
}

func (r *RequestRepository) ListPendingByStaffID(ctx context.Context, staffID int64) ([]*wfhrequest.WFHRequest, error) {
	var out []*wfhrequest.WFHRequest
	res := r.db.WithContext(ctx).
		Where("staff_id = ? AND request_status = ?", staffID, wfhrequest.StatusPending).
		Order("id ASC").
		Find(&out)
	if res.Error != nil {
		return nil, gerrors.Wrapf(res.Error, "list pending wfh requests of staff %d", staffID)
	}
	return out, nil
}

func (r *RequestRepository) ListStalePendingForUpdate(ctx context.Context, cutoff time.Time) ([]*wfhrequest.WFHRequest, error) {
	var out []*wfhrequest.WFHRequest
	res := r.stalePending(ctx, cutoff).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id ASC").
		Find(&out)
	if res.Error != nil {
		return nil, gerrors.Wrap(res.Error, "list stale pending wfh requests")
	}
	return out, nil
}

func (r *RequestRepository) CountStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	if err := r.stalePending(ctx, cutoff).Count(&n).Error; err != nil {
		return 0, gerrors.Wrap(err, "count stale pending wfh requests")
	}
	return n, nil
}

// stale = still Pending and applied strictly before cutoff
func (r *RequestRepository) stalePending(ctx context.Context, cutoff time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&wfhrequest.WFHRequest{}).
		Where("request_status = ? AND apply_date < ?", wfhrequest.StatusPending, cutoff.UTC())
}

func (r *RequestRepository) ListByStaffIDsInRange(ctx context.Context, staffIDs []int64, from, to time.Time, statuses []wfhrequest.Status) ([]*wfhrequest.WFHRequest, error) {
	var out []*wfhrequest.WFHRequest
	if len(staffIDs) == 0 {
		return out, nil
	}
	q := r.db.WithContext(ctx).
		Where("staff_id IN ?", staffIDs).
		Where("specific_date >= ? AND specific_date <= ?", from.UTC(), to.UTC())
	if len(statuses) > 0 {
		q = q.Where("request_status IN ?", statuses)
	}
	if err := q.Order("specific_date ASC, id ASC").Find(&out).Error; err != nil {
		return nil, gerrors.Wrap(err, "list wfh requests in range")
	}
	return out, nil
}
