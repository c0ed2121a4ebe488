package requestlog

import "context"

// Repository is append-only: entries are never updated or deleted.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	ListByRequestID(ctx context.Context, requestID string) ([]*Entry, error)
}
