package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"wfh-backend/internal/domain/uow"
	"wfh-backend/internal/domain/wfhrequest"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

var _ uow.UnitOfWork = (*GormUoW)(nil)

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinRequestTx(ctx context.Context, requestID string, fn func(r uow.Repos, rows []*wfhrequest.WFHRequest) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock every row of the request up-front so concurrent transitions serialize
		rows, err := r.Requests.ListByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return wfhrequest.ErrNotFound
		}
		return fn(r, rows)
	})
}

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Requests: &RequestRepository{db: tx},
		Logs:     &RequestLogRepository{db: tx},
	}
}
