package employeemock

import (
	"context"

	domain "wfh-backend/internal/domain/employee"
)

var _ domain.Directory = (*Directory)(nil)

// Directory is a function-backed mock of domain.Directory.
type Directory struct {
	ExistsFn        func(ctx context.Context, staffID int64) (bool, error)
	ListByManagerFn func(ctx context.Context, managerID int64) ([]*domain.Employee, error)
	ListManagersFn  func(ctx context.Context) ([]*domain.Employee, error)
}

// Known answers Exists from a fixed set of staff ids.
func Known(ids ...int64) *Directory {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return &Directory{
		ExistsFn: func(_ context.Context, staffID int64) (bool, error) { return set[staffID], nil },
	}
}

func (m *Directory) Exists(ctx context.Context, staffID int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, staffID)
	}
	return false, context.Canceled
}

func (m *Directory) ListByManager(ctx context.Context, managerID int64) ([]*domain.Employee, error) {
	if m.ListByManagerFn != nil {
		return m.ListByManagerFn(ctx, managerID)
	}
	return nil, context.Canceled
}

func (m *Directory) ListManagers(ctx context.Context) ([]*domain.Employee, error) {
	if m.ListManagersFn != nil {
		return m.ListManagersFn(ctx)
	}
	return nil, context.Canceled
}
