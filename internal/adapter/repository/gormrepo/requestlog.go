package gormrepo

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"gorm.io/gorm"

	"wfh-backend/internal/domain/requestlog"
)

type RequestLogRepository struct{ db *gorm.DB }

func NewRequestLogRepository(db *gorm.DB) *RequestLogRepository {
	return &RequestLogRepository{db: db}
}

func (r *RequestLogRepository) Append(ctx context.Context, e *requestlog.Entry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return gerrors.Wrapf(err, "append log for request %s", e.RequestID)
	}
	return nil
}

func (r *RequestLogRepository) ListByRequestID(ctx context.Context, requestID string) ([]*requestlog.Entry, error) {
	var out []*requestlog.Entry
	res := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("log_id ASC").
		Find(&out)
	if res.Error != nil {
		return nil, gerrors.Wrapf(res.Error, "list logs for request %s", requestID)
	}
	return out, nil
}
