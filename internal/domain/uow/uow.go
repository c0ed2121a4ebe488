package uow

import (
	"context"

	"wfh-backend/internal/domain/requestlog"
	"wfh-backend/internal/domain/wfhrequest"
)

// Repos are bound to one transaction; nothing written through them is visible to
// other transactions until the surrounding WithinTx returns nil.
type Repos struct {
	Requests wfhrequest.Repository
	Logs     requestlog.Repository
}

type UnitOfWork interface {
	// plain tx: commit when fn returns nil, roll back otherwise
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock every row of requestID first, then pass them in.
	// Returns wfhrequest.ErrNotFound without calling fn when no row matches.
	WithinRequestTx(ctx context.Context, requestID string, fn func(r Repos, rows []*wfhrequest.WFHRequest) error) error
}
