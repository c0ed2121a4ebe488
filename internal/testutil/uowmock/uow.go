package uowmock

import (
	"context"
	"errors"

	"wfh-backend/internal/domain/uow"
	"wfh-backend/internal/domain/wfhrequest"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinRequestTxFn func(ctx context.Context, requestID string, fn func(r uow.Repos, rows []*wfhrequest.WFHRequest) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinRequestTx(fn func(context.Context, string, func(uow.Repos, []*wfhrequest.WFHRequest) error) error) *UoW {
	m.WithinRequestTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// ForRepos runs every transaction body directly against r. WithinRequestTx loads
// rows through r.Requests.ListByRequestIDForUpdate, like the real implementation.
func ForRepos(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinRequestTxFn: func(ctx context.Context, requestID string, fn func(uow.Repos, []*wfhrequest.WFHRequest) error) error {
			rows, err := r.Requests.ListByRequestIDForUpdate(ctx, requestID)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return wfhrequest.ErrNotFound
			}
			return fn(r, rows)
		},
	}
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinRequestTx(ctx context.Context, requestID string, fn func(r uow.Repos, rows []*wfhrequest.WFHRequest) error) error {
	if m.WithinRequestTxFn != nil {
		return m.WithinRequestTxFn(ctx, requestID, fn)
	}
	return errUnimplemented
}
