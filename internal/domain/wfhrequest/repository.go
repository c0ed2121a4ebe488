package wfhrequest

import (
	"context"
	"time"
)

type Repository interface {
	// Insert all rows of one logical request
	CreateBatch(ctx context.Context, rows []*WFHRequest) error

	// All rows sharing request_id, ordered by insertion
	ListByRequestID(ctx context.Context, requestID string) ([]*WFHRequest, error)

	// Same as ListByRequestID but row-locked for the rest of the transaction
	ListByRequestIDForUpdate(ctx context.Context, requestID string) ([]*WFHRequest, error)

	// Pending rows of one staff member, ordered by insertion
	ListPendingByStaffID(ctx context.Context, staffID int64) ([]*WFHRequest, error)

	// Pending rows applied strictly before cutoff, row-locked
	ListStalePendingForUpdate(ctx context.Context, cutoff time.Time) ([]*WFHRequest, error)

	// Number of rows ListStalePendingForUpdate would return, without locking
	CountStalePending(ctx context.Context, cutoff time.Time) (int64, error)

	// Rows of the given staff with specific_date in [from, to] and one of statuses
	ListByStaffIDsInRange(ctx context.Context, staffIDs []int64, from, to time.Time, statuses []Status) ([]*WFHRequest, error)

	Save(ctx context.Context, r *WFHRequest) error
}
