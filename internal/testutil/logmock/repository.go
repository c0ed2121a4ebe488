package logmock

import (
	"context"
	"sync"

	domain "wfh-backend/internal/domain/requestlog"
)

var _ domain.Repository = (*Repo)(nil)

// Repo records appended entries in memory unless AppendFn is set.
type Repo struct {
	AppendFn          func(ctx context.Context, e *domain.Entry) error
	ListByRequestIDFn func(ctx context.Context, requestID string) ([]*domain.Entry, error)

	mu      sync.Mutex
	entries []*domain.Entry
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *Repo) ListByRequestID(ctx context.Context, requestID string) ([]*domain.Entry, error) {
	if m.ListByRequestIDFn != nil {
		return m.ListByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}

// Entries returns what the default Append recorded.
func (m *Repo) Entries() []*domain.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}
